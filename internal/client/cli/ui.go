package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// formatter applies semantic styling to output. Without color support it
// falls back to plain prefixes.
type formatter struct {
	color  *color.Color
	prefix string
}

func (f formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text
	}
	return f.color.Sprint(text)
}

func (f formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	successText = formatter{color.New(color.FgGreen), "✓ "}
	errorText   = formatter{color.New(color.FgRed), "✗ "}
	warnText    = formatter{color.New(color.FgYellow), "! "}
	labelText   = formatter{color.New(color.FgCyan, color.Bold), ""}
	dimText     = formatter{color.New(color.Faint), ""}
)

const maskedValue = "••••••••"
