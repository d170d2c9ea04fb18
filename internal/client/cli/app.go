package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/natman/internal/client/api"
	"github.com/dmitrijs2005/natman/internal/client/config"
	"github.com/dmitrijs2005/natman/internal/client/services"
	"github.com/dmitrijs2005/natman/internal/client/session"
	"github.com/dmitrijs2005/natman/internal/client/storage"
	"github.com/dmitrijs2005/natman/internal/common"
	"github.com/dmitrijs2005/natman/internal/logging"
)

var errBusy = errors.New("another request is still running")

type App struct {
	config      *config.Config
	log         logging.Logger
	store       storage.Store
	holder      *session.Holder
	gate        *session.Gate
	authService services.AuthService
	flow        *services.Flow
	resources   services.ResourceService
	recognition services.RecognitionService
	reader      *bufio.Reader
	out         io.Writer

	// busy is set while a submit is in flight.
	busy bool
}

// NewApp opens the session store and builds the services on top of one
// API client bound to c.ServerBaseURL.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	fallback, err := services.ParseFallback(c.RecognitionFallback)
	if err != nil {
		return nil, err
	}

	apiClient, err := api.NewClient(c.ServerBaseURL, api.WithLogger(log))
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, c.StorePath)
	if err != nil {
		log.Error(ctx, "error opening session store", "path", c.StorePath, "error", err)
		return nil, err
	}

	holder := session.NewHolder(store, log)
	auth := services.NewAuthService(apiClient, c.RequestTimeout, log)

	return &App{
		config:      c,
		log:         log,
		store:       store,
		holder:      holder,
		gate:        session.NewGate(holder, log),
		authService: auth,
		flow:        services.NewFlow(auth, holder, log),
		resources:   services.NewResourceService(apiClient, log),
		recognition: services.NewRecognitionService(apiClient, fallback, log),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run decides the starting area and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	unwatch := a.gate.Watch(func(s session.State) {
		a.log.Info(ctx, "session state changed", "state", s.String())
	})
	defer unwatch()

	fmt.Fprintln(a.out, "Лукоморье: NatMan CLI (type 'help' for commands)")
	if a.gate.Decide(ctx) == session.StateAuthenticated {
		a.greet()
	} else {
		fmt.Fprintln(a.out, "Please login or register.")
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// Close releases the store. It is safe to call more than once.
func (a *App) Close() error {
	if a.gate != nil {
		a.gate.Close()
	}
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.gate.State() == session.StateAuthenticated
}

func (a *App) status() string {
	if user, ok := a.holder.User(); ok && a.isLoggedIn() {
		return "(" + user.Username + ")"
	}
	return "(guest)"
}

func (a *App) greet() {
	if user, ok := a.holder.User(); ok {
		fmt.Fprintf(a.out, "Привет, %s!\n", user.DisplayName())
	}
}

// submit runs fn unless another submit is in flight. Ctrl-C during fn
// cancels its context instead of killing the process.
func (a *App) submit(ctx context.Context, fn func(ctx context.Context) error) error {
	if a.busy {
		fmt.Fprintln(a.out, "Please wait: "+errBusy.Error())
		return errBusy
	}
	a.busy = true
	defer func() { a.busy = false }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return fn(ctx)
}

// alert prints a title line and a body, the terminal form of a modal.
func (a *App) alert(title, body string) {
	fmt.Fprintf(a.out, "[%s]\n%s\n", title, body)
}

// alertErr shows err the way a user should see it and returns it.
func (a *App) alertErr(title string, err error) error {
	a.alert(title, common.UserMessage(err))
	return err
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}
