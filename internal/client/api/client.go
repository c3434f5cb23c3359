// Package api implements the HTTP client for the journal backend.
package api

import (
	"context"

	"memento/internal/client/models"
)

// Client is the remote API surface the rest of the client depends on.
//
// Contract:
//   - Register/Login do not require a credential.
//   - All other calls attach the bearer token set via SetToken; calling them
//     without one yields ErrUnauthorized from the server.
//   - Errors are mapped to the package sentinels (ErrUnavailable,
//     ErrUnauthorized) or to *APIError carrying the server's detail message.
type Client interface {
	SetToken(token string)
	ClearToken()
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetMe(ctx context.Context) (*models.User, error)
	ListEntries(ctx context.Context, filter models.ListFilter) (*models.EntryList, error)
	CreateEntry(ctx context.Context, payload models.EntryPayload) (*models.JournalEntry, error)
	UpdateEntry(ctx context.Context, id string, update models.EntryUpdate) (*models.JournalEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (*models.JournalEntry, error)
}
