package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"memento/internal/client/api"
	"memento/internal/client/cache"
	"memento/internal/client/config"
	"memento/internal/client/journal"
	"memento/internal/client/localdb"
	"memento/internal/client/models"
	"memento/internal/client/repositories/metadata"
	"memento/internal/client/session"
	"memento/internal/logging"
)

// sessionManager is the slice of session.Manager the CLI needs.
// Tests provide a lightweight stub.
type sessionManager interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, username, password string) error
	Logout(ctx context.Context)
	IsAuthenticated() bool
	User() *models.User
}

// journalService is the slice of journal.Service the CLI needs.
type journalService interface {
	LoadAll(ctx context.Context) error
	Create(ctx context.Context, payload models.EntryPayload) (*models.JournalEntry, error)
	Update(ctx context.Context, id string, update models.EntryUpdate) (*models.JournalEntry, error)
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (*models.JournalEntry, error)
	Search(ctx context.Context, filter models.ListFilter) (*models.EntryList, error)
	Entries() []models.JournalEntry
	Get(id string) (models.JournalEntry, bool)
	Clear()
	Month(year int, month time.Month, loc *time.Location) journal.MonthSummary
	StatsAt(now time.Time) journal.Stats
}

type App struct {
	config  *config.Config
	session sessionManager
	journal journalService
	log     logging.Logger
	reader  *bufio.Reader
	db      *sql.DB
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, log)
	store := metadata.NewSQLiteRepository(db)
	sess := session.NewManager(apiClient, store, log)
	jr := journal.NewService(apiClient, sess, cache.New(), cfg.PageLimit, log)

	return &App{
		config:  cfg,
		session: sess,
		journal: jr,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		db:      db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run restores the session and enters the REPL. When restoration yields an
// authenticated session, the journal is loaded once before the first prompt.
func (a *App) Run(ctx context.Context) {
	a.session.Restore(ctx)
	if a.session.IsAuthenticated() {
		printlnFn(fmt.Sprintf("Welcome back, %s!", a.session.User().Username))
		a.onAuthenticated(ctx)
	} else {
		printlnFn("Welcome to memento (type 'help' for commands)")
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	if u := a.session.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return "(anonymous)"
}

// onAuthenticated is the explicit causal rule tying the two components
// together: when the session transitions to authenticated, load the journal
// exactly once.
func (a *App) onAuthenticated(ctx context.Context) {
	if err := a.journal.LoadAll(ctx); err != nil {
		a.reportError(ctx, err)
	}
}

// reportError prints a backend failure to the user. A rejected credential is
// session expiry: the session is torn down and the user told to log in again.
func (a *App) reportError(ctx context.Context, err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		if a.session.IsAuthenticated() {
			a.session.Logout(ctx)
			a.journal.Clear()
		}
		printlnFn("Your session has expired, please log in again.")
		return
	}
	if errors.Is(err, api.ErrUnavailable) {
		printlnFn("Server unavailable, try again later.")
		return
	}
	printlnFn("Error:", err.Error())
}
