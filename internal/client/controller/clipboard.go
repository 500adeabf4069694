package controller

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/safetrace/internal/common"
)

// Clipboard receives values copied by the user.
type Clipboard interface {
	WriteAll(text string) error
}

var clipboardWrite = clipboard.WriteAll

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return common.ErrClipboardUnavailable
	}
	return clipboardWrite(text)
}

// CopyField hands value to the clipboard. Failure is reported as
// ErrClipboardUnavailable and has no other effect.
func (c *Controller) CopyField(value string) error {
	if err := c.clip.WriteAll(value); err != nil {
		return fmt.Errorf("%w: %v", common.ErrClipboardUnavailable, err)
	}
	return nil
}
