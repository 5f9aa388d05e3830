package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/quizzer/internal/client/client"
	"github.com/dmitrijs2005/quizzer/internal/client/config"
	"github.com/dmitrijs2005/quizzer/internal/client/forms"
	"github.com/dmitrijs2005/quizzer/internal/client/notify"
	"github.com/dmitrijs2005/quizzer/internal/client/query"
	"github.com/dmitrijs2005/quizzer/internal/client/services"
	"github.com/dmitrijs2005/quizzer/internal/logging"
)

// Mode reflects whether the remote API answered the last list fetch.
type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	out       io.Writer
	reader    *bufio.Reader
	notifier  notify.Notifier
	auth      services.AuthService
	studySets services.StudySetService

	registerForm *forms.RegisterForm
	createDialog *forms.CreateDialog

	mu       sync.Mutex
	userName string
	mode     Mode
}

// NewApp wires the HTTP client, the query store and the services for c.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.BaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithRegisterPath(c.RegisterPath),
		client.WithLogger(logger.With("component", "http")),
	)
	if err != nil {
		return nil, err
	}

	store := query.NewStore(query.WithLogger(logger.With("component", "query")))
	n := notify.Multi{notify.NewConsole(os.Stdout), notify.NewLog(logger)}

	as := services.NewAuthService(apiClient, logger)
	ss := services.NewStudySetService(apiClient, store, n, logger)

	a := newApp(as, ss, n, bufio.NewReader(os.Stdin), os.Stdout, logger)
	a.config = c
	return a, nil
}

func newApp(as services.AuthService, ss services.StudySetService, n notify.Notifier, r *bufio.Reader, w io.Writer, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	return &App{
		logger:       logger,
		out:          w,
		reader:       r,
		notifier:     n,
		auth:         as,
		studySets:    ss,
		registerForm: forms.NewRegisterForm(as, n),
		createDialog: forms.NewCreateDialog(ss),
	}
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.auth.Close(ctx)

	go a.watchStudySets(ctx)

	fmt.Fprintln(a.out, "Welcome to quizzer (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "switched mode", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) isRegistered() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName != ""
}

// status is the prompt decoration, e.g. "(user@example.com online)".
func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.userName
	if a.mode != ModeUnknown {
		if s != "" {
			s += " "
		}
		s += string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// watchStudySets follows the shared study-sets entry and derives the
// connectivity mode from each settled snapshot.
func (a *App) watchStudySets(ctx context.Context) {
	ch, stop := a.studySets.Subscribe()
	defer stop()

	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return
			}
			a.logger.Debug(ctx, "study sets snapshot", "status", r.Status, "stale", r.Stale, "fetching", r.Fetching)
			switch {
			case r.Status == query.StatusSuccess:
				a.setMode(ModeOnline)
			case r.Status == query.StatusError && errors.Is(r.Err, client.ErrUnavailable):
				a.setMode(ModeOffline)
			}
		case <-ctx.Done():
			return
		}
	}
}
