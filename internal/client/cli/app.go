package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/client"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/config"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/services"
	"github.com/dmitrijs2005/ballotkeeper/internal/client/store"
	"github.com/dmitrijs2005/ballotkeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	// ModeLocal means the console was started without a backend (-o).
	ModeLocal Mode = "local"
)

// maxImageSize caps candidate photos uploaded from the console.
const maxImageSize = 5 << 20

type App struct {
	config  *config.Config
	log     logging.Logger
	auth    services.AuthService
	store   *store.Store
	gateway client.Client
	repos   *client.Repositories
	upload  *http.Client

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp opens the local database, builds the gateway (unless offline) and
// seeds the store.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	a := &App{
		config: c,
		log:    log,
		repos:  repos,
		upload: &http.Client{Timeout: c.RequestTimeout},
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		mode:   ModeLocal,
	}

	if !c.Offline {
		// The auth service is created below; the closure reads it lazily.
		tokens := client.TokenSourceFunc(func(ctx context.Context) (string, error) {
			return a.auth.Token(ctx)
		})
		hc, err := client.NewHTTPClient(client.HTTPOptions{
			BaseURL:    c.APIBaseURL,
			HealthAddr: c.HealthAddr,
			Timeout:    c.RequestTimeout,
			Tokens:     tokens,
		})
		if err != nil {
			_ = repos.Close()
			return nil, err
		}
		a.gateway = hc
		a.mode = ModeOffline
	}
	a.auth = services.NewAuthService(a.gateway, repos.DB)

	actor := c.ActorID
	if saved, err := a.auth.Actor(ctx); err == nil && saved != "" {
		actor = saved
	}

	st, err := store.New(ctx, store.Options{
		Gateway: a.gateway,
		State:   repos.State,
		Logger:  log.With("component", "store"),
		ActorID: actor,
	})
	if err != nil {
		_ = a.auth.Close(ctx)
		_ = repos.Close()
		return nil, err
	}
	a.store = st
	return a, nil
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.auth.Close(ctx)
		_ = a.repos.Close()
	}()

	fmt.Fprintln(a.out, "Election console (type 'help' for commands)")

	stopWatch := a.watchStore(ctx)
	defer stopWatch()

	if a.gateway != nil {
		if err := a.auth.Ping(ctx); err == nil {
			a.setMode(ctx, ModeOnline)
		}
		if err := a.store.Reload(ctx); err != nil {
			fmt.Fprintln(a.out, "Initial load failed:", err)
		}
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a.commands(), a.getStatus, bufio.NewScanner(a.reader), a.out)
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode between online and offline. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// watchStore reports load state transitions committed by the store. The
// returned func stops reporting.
func (a *App) watchStore(ctx context.Context) (cancel func()) {
	var mu sync.Mutex
	last := a.store.Status()

	return a.store.Subscribe(func(c store.Change) {
		if c != store.ChangeStatus {
			a.log.Debug(ctx, "store changed", "change", string(c))
			return
		}
		st := a.store.Status()

		mu.Lock()
		defer mu.Unlock()
		if st == last {
			return
		}
		last = st
		a.log.Info(ctx, "data state changed", "state", st.String())
		fmt.Fprintf(a.out, "Data is now %s\n", st)
	})
}

func (a *App) getStatus() string {
	s := string(a.Mode())
	switch a.store.Status() {
	case store.Loading:
		s += " loading"
	case store.Degraded:
		s += " degraded"
	case store.Failed:
		s += " failed"
	}
	return fmt.Sprintf("(%s)", s)
}
