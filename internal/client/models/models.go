// Package models defines the journal data types exchanged with the backend.
package models

import (
	"errors"
	"net/url"
	"strconv"
	"time"
)

// User is the authenticated account profile. It is immutable for the
// lifetime of a session and refreshed only by re-authentication.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// JournalEntry is a single dated learning record owned by one user.
// The id and timestamps are always server-assigned; the client never
// fabricates them for a persisted entry.
type JournalEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   Category  `json:"category"`
	Phonetic   string    `json:"phonetic,omitempty"`
	Example    string    `json:"example,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EntryList is one page of entries as returned by the list endpoint.
type EntryList struct {
	Entries []JournalEntry `json:"entries"`
	Total   int            `json:"total"`
	Skip    int            `json:"skip"`
	Limit   int            `json:"limit"`
}

// EntryPayload carries the fields of a create request.
type EntryPayload struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Category   Category `json:"category"`
	Phonetic   string   `json:"phonetic,omitempty"`
	Example    string   `json:"example,omitempty"`
	IsFavorite bool     `json:"is_favorite,omitempty"`
}

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
)

// Validate checks the payload before it is sent to the server.
func (p EntryPayload) Validate() error {
	if p.Title == "" {
		return ErrTitleRequired
	}
	if p.Content == "" {
		return ErrContentRequired
	}
	if !p.Category.Valid() {
		return ErrUnknownCategory
	}
	return nil
}

// EntryUpdate is a partial update payload. Nil fields are omitted from the
// request body and left unchanged by the server.
type EntryUpdate struct {
	Title      *string   `json:"title,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Category   *Category `json:"category,omitempty"`
	Phonetic   *string   `json:"phonetic,omitempty"`
	Example    *string   `json:"example,omitempty"`
	IsFavorite *bool     `json:"is_favorite,omitempty"`
}

// Empty reports whether the update carries no changes.
func (u EntryUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Category == nil &&
		u.Phonetic == nil && u.Example == nil && u.IsFavorite == nil
}

// ListFilter describes the query parameters of the list endpoint.
// Zero values are omitted from the query string.
type ListFilter struct {
	Category   Category
	Search     string
	IsFavorite *bool
	Skip       int
	Limit      int
}

// Query renders the filter as URL query parameters.
func (f ListFilter) Query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.IsFavorite != nil {
		q.Set("is_favorite", strconv.FormatBool(*f.IsFavorite))
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}
