// Package session owns the authentication lifecycle: restoring a persisted
// credential at startup, login/registration exchanges, and teardown on
// logout or credential rejection. It is the single source of truth for
// "who is logged in".
package session

import (
	"context"
	"errors"
	"fmt"

	"memento/internal/client/api"
	"memento/internal/client/models"
	"memento/internal/client/repositories/metadata"
	"memento/internal/logging"
)

// State is the visible session state. Restoring occurs only once, between
// process start and the completion of Restore; afterwards the session is
// always either authenticated or anonymous.
type State string

const (
	StateRestoring     State = "restoring"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// tokenKey is the fixed key the bearer token is persisted under. Its
// presence in the local store is the sole bootstrap signal for restoration.
const tokenKey = "access_token"

var (
	// ErrBusy is returned when a login or registration is already in
	// flight. The caller should drop the duplicate attempt.
	ErrBusy = errors.New("authentication already in progress")

	// ErrNotAuthenticated marks session-dependent calls made without an
	// authenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Manager drives session state. It is meant to be used from a single
// goroutine (the UI loop); the epoch counter is what protects the rest of
// the app from applying results of requests that outlived their session.
type Manager struct {
	client api.Client
	store  metadata.Repository
	log    logging.Logger

	state    State
	user     *models.User
	epoch    uint64
	inFlight bool
}

func NewManager(client api.Client, store metadata.Repository, log logging.Logger) *Manager {
	return &Manager{client: client, store: store, log: log, state: StateRestoring}
}

func (m *Manager) State() State { return m.state }

// User returns the profile of the authenticated user, or nil.
func (m *Manager) User() *models.User { return m.user }

func (m *Manager) IsAuthenticated() bool { return m.state == StateAuthenticated }

// Epoch identifies the current session incarnation. It changes on every
// state transition; callers snapshot it before a long-running fetch and
// discard the result if it no longer matches.
func (m *Manager) Epoch() uint64 { return m.epoch }

func (m *Manager) transition(state State, user *models.User) {
	m.state = state
	m.user = user
	m.epoch++
}

// Restore runs once at startup. A missing credential resolves to anonymous
// immediately; a present one is validated by fetching the profile. Any
// failure discards the stored credential. Restore never reports an error:
// it always resolves the session to a terminal state.
func (m *Manager) Restore(ctx context.Context) {
	token, err := m.store.Get(ctx, tokenKey)
	if err != nil {
		m.log.Warn(ctx, "reading stored credential failed", "error", err)
	}
	if len(token) == 0 {
		m.transition(StateAnonymous, nil)
		return
	}

	m.client.SetToken(string(token))
	user, err := m.client.GetMe(ctx)
	if err != nil {
		m.log.Warn(ctx, "stored credential rejected, starting anonymous", "error", err)
		m.discardCredential(ctx)
		m.transition(StateAnonymous, nil)
		return
	}

	m.log.Info(ctx, "session restored", "username", user.Username)
	m.transition(StateAuthenticated, user)
}

// Login exchanges credentials for a token, persists it, and loads the user
// profile. The two steps are a unit: if the profile fetch fails after a
// successful token exchange, the token is discarded and the session reset
// to anonymous. On failure of the exchange itself the prior state is kept.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if m.inFlight {
		return ErrBusy
	}
	m.inFlight = true
	defer func() { m.inFlight = false }()

	return m.login(ctx, email, password)
}

func (m *Manager) login(ctx context.Context, email, password string) error {
	token, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := m.store.Set(ctx, tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("persisting credential: %w", err)
	}
	m.client.SetToken(token)

	user, err := m.client.GetMe(ctx)
	if err != nil {
		// No partial state: a token without a user must not survive.
		m.discardCredential(ctx)
		m.transition(StateAnonymous, nil)
		return err
	}

	m.log.Info(ctx, "logged in", "username", user.Username)
	m.transition(StateAuthenticated, user)
	return nil
}

// Register creates a new account and then logs in with the same credentials
// as a continuation. Failure at either step leaves no persisted credential.
func (m *Manager) Register(ctx context.Context, email, username, password string) error {
	if m.inFlight {
		return ErrBusy
	}
	m.inFlight = true
	defer func() { m.inFlight = false }()

	if _, err := m.client.Register(ctx, email, username, password); err != nil {
		return err
	}

	return m.login(ctx, email, password)
}

// Logout is unconditional and never fails: the credential is discarded and
// the session reset to anonymous regardless of storage errors.
func (m *Manager) Logout(ctx context.Context) {
	m.discardCredential(ctx)
	m.transition(StateAnonymous, nil)
	m.log.Info(ctx, "logged out")
}

func (m *Manager) discardCredential(ctx context.Context) {
	if err := m.store.Delete(ctx, tokenKey); err != nil {
		m.log.Warn(ctx, "removing stored credential failed", "error", err)
	}
	m.client.ClearToken()
}
