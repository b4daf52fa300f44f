package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/config"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/services"
	"github.com/dmitrijs2005/folio/internal/client/session"
	"github.com/dmitrijs2005/folio/internal/client/sessionstore"
	"github.com/dmitrijs2005/folio/internal/filex"
	"github.com/dmitrijs2005/folio/internal/logging"
)

// sessionView is the read side of the session the CLI renders from.
type sessionView interface {
	IsAuthenticated() bool
	User() (models.User, bool)
	Session() models.Session
}

type App struct {
	config         *config.Config
	authService    services.AuthService
	profileService services.ProfileService
	session        sessionView
	reader         *bufio.Reader
	out            io.Writer
	log            logging.Logger
	db             *sql.DB
}

// NewApp opens the session database, restores any saved session and wires
// the API client and services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.StorePath); err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, c.StorePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	opts := []sessionstore.Option{sessionstore.WithTTL(c.SessionTTL)}
	if c.StoreSecret != "" {
		opts = append(opts, sessionstore.WithSecret([]byte(c.StoreSecret)))
	}
	store, err := sessionstore.New(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	// the client reads the token from the manager, which is built after it
	var mgr *session.Manager
	api := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithPortfolioPath(c.PortfolioPath),
		client.WithLogger(log),
		client.WithTokenSource(client.TokenSourceFunc(func() string { return mgr.AccessToken() })),
	)
	mgr = session.NewManager(store, api, log)
	if err := mgr.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:         c,
		authService:    services.NewAuthService(api, mgr, log),
		profileService: services.NewProfileService(api, mgr, c.SiteURL, log),
		session:        mgr,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		log:            log,
		db:             db,
	}, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Folio CLI (type 'help' for commands)")
	if u, ok := a.session.User(); ok {
		fmt.Fprintf(a.out, "Welcome back, %s.\n", u.Username)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
	return a.Close()
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if u, ok := a.session.User(); ok && u.Username != "" {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}

// fail prints err for the user and hands it back to the REPL.
func (a *App) fail(ctx context.Context, err error) error {
	a.log.Debug(ctx, "command failed", "error", err)
	renderError(a.out, err)
	return err
}
