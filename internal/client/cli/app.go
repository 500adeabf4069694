package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/safetrace/internal/client/config"
	"github.com/dmitrijs2005/safetrace/internal/client/controller"
	"github.com/dmitrijs2005/safetrace/internal/client/models"
	"github.com/dmitrijs2005/safetrace/internal/client/store"
	"github.com/dmitrijs2005/safetrace/internal/logging"
)

// Mode describes how the configured backend is reachable.
type Mode string

const (
	ModeLocal   Mode = "local"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config       *config.Config
	backend      store.Backend
	closeBackend func() error
	log          logging.Logger
	reader       *bufio.Reader
	out          io.Writer
	clipboard    controller.Clipboard

	modeMu sync.Mutex
	mode   Mode

	identity *models.Identity
	ctl      *controller.Controller
}

// NewApp opens the configured backend and prepares an App reading from
// stdin and writing to stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	backend, closeFn, err := openBackend(ctx, c, log)
	if err != nil {
		return nil, err
	}
	return newApp(c, backend, closeFn, bufio.NewReader(os.Stdin), os.Stdout, log), nil
}

func newApp(c *config.Config, backend store.Backend, closeFn func() error, reader *bufio.Reader, out io.Writer, log logging.Logger) *App {
	mode := ModeLocal
	if _, ok := backend.(pinger); ok {
		mode = ModeOffline
	}
	return &App{
		config:       c,
		backend:      backend,
		closeBackend: closeFn,
		log:          log,
		reader:       reader,
		out:          out,
		mode:         mode,
	}
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.ctl != nil {
			a.ctl.SignOut()
		}
		if err := a.closeBackend(); err != nil {
			a.log.Warn(ctx, "closing store", "err", err)
		}
	}()

	if p, ok := a.backend.(pinger); ok {
		go a.StartOnlineStatusWatcher(ctx, p, a.config.OnlineCheckInterval)
	}

	printlnFn("Welcome to SafeTrace (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) signedIn() bool {
	return a.ctl != nil
}

func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(ctx, "vault server reachability changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher pings the backend every interval and records
// whether it answered. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, p pinger, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := p.Ping(pctx); err != nil {
			a.setMode(ctx, ModeOffline)
			return
		}
		a.setMode(ctx, ModeOnline)
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	if a.identity == nil {
		return fmt.Sprintf("(%s)", a.Mode())
	}
	lock := "locked"
	if a.ctl.IsUnlocked() {
		lock = "unlocked"
	}
	return fmt.Sprintf("(%s %s %s)", a.identity.UserID, lock, a.Mode())
}
