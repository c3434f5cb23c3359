// Package journal coordinates the entry cache with the remote API: every
// mutation is applied to the cache only after the server has confirmed it.
package journal

import (
	"context"
	"errors"

	"memento/internal/client/api"
	"memento/internal/client/cache"
	"memento/internal/client/models"
	"memento/internal/client/session"
	"memento/internal/logging"
)

// Service owns the Entry Cache for the current session. All operations
// require an authenticated session and report session.ErrNotAuthenticated
// otherwise. Like the session manager it is driven from a single goroutine.
type Service struct {
	client  api.Client
	session *session.Manager
	cache   *cache.Cache
	log     logging.Logger

	pageLimit int
	loading   bool
}

func NewService(client api.Client, sess *session.Manager, c *cache.Cache, pageLimit int, log logging.Logger) *Service {
	return &Service{client: client, session: sess, cache: c, log: log, pageLimit: pageLimit}
}

// Entries returns the cached entries, newest first.
func (s *Service) Entries() []models.JournalEntry {
	return s.cache.Entries()
}

// Get returns the cached entry with the given id, if present.
func (s *Service) Get(id string) (models.JournalEntry, bool) {
	return s.cache.Get(id)
}

// Clear empties the cache. Called when the session ends.
func (s *Service) Clear() {
	s.cache.Clear()
}

// LoadAll fetches the user's entries and replaces the cache contents,
// preserving server order. It is invoked once per new authenticated
// session. A call while a load is already in flight is dropped. When the
// session changes while the fetch is in flight (e.g. a logout), the
// response is discarded instead of being applied to a stale cache. A
// rejected credential triggers an implicit logout.
func (s *Service) LoadAll(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return session.ErrNotAuthenticated
	}
	if s.loading {
		return nil
	}
	s.loading = true
	defer func() { s.loading = false }()

	epoch := s.session.Epoch()

	var entries []models.JournalEntry
	for {
		list, err := s.client.ListEntries(ctx, models.ListFilter{Skip: len(entries), Limit: s.pageLimit})
		if err != nil {
			if errors.Is(err, api.ErrUnauthorized) {
				s.expire(ctx)
			}
			return err
		}
		entries = append(entries, list.Entries...)
		if len(entries) >= list.Total || len(list.Entries) == 0 {
			break
		}
	}

	if s.session.Epoch() != epoch {
		s.log.Debug(ctx, "session changed during load, discarding response")
		return nil
	}

	s.cache.ReplaceAll(entries)
	s.log.Info(ctx, "entries loaded", "count", len(entries))
	return nil
}

// Create sends a create request and, once the server returns the canonical
// stored record, prepends it to the cache.
func (s *Service) Create(ctx context.Context, payload models.EntryPayload) (*models.JournalEntry, error) {
	if !s.session.IsAuthenticated() {
		return nil, session.ErrNotAuthenticated
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	epoch := s.session.Epoch()
	created, err := s.client.CreateEntry(ctx, payload)
	if err != nil {
		return nil, err
	}

	if s.session.Epoch() == epoch {
		s.cache.InsertConfirmed(*created)
	}
	return created, nil
}

// Update sends a partial update and applies the confirmed record to the
// cache, preserving its position.
func (s *Service) Update(ctx context.Context, id string, update models.EntryUpdate) (*models.JournalEntry, error) {
	if !s.session.IsAuthenticated() {
		return nil, session.ErrNotAuthenticated
	}

	epoch := s.session.Epoch()
	updated, err := s.client.UpdateEntry(ctx, id, update)
	if err != nil {
		return nil, err
	}

	if s.session.Epoch() == epoch {
		s.cache.ApplyConfirmed(*updated)
	}
	return updated, nil
}

// Delete removes the entry on the server, then from the cache.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !s.session.IsAuthenticated() {
		return session.ErrNotAuthenticated
	}

	epoch := s.session.Epoch()
	if err := s.client.DeleteEntry(ctx, id); err != nil {
		return err
	}

	if s.session.Epoch() == epoch {
		s.cache.RemoveConfirmed(id)
	}
	return nil
}

// ToggleFavorite flips the favorite flag on the server and applies the
// confirmed record. A confirmation arriving after the entry was deleted
// finds no matching id and is silently ignored.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*models.JournalEntry, error) {
	if !s.session.IsAuthenticated() {
		return nil, session.ErrNotAuthenticated
	}

	epoch := s.session.Epoch()
	toggled, err := s.client.ToggleFavorite(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.session.Epoch() == epoch {
		s.cache.ApplyConfirmed(*toggled)
	}
	return toggled, nil
}

// Search queries the server with the given filter. It is a read-only
// operation and leaves the cache untouched.
func (s *Service) Search(ctx context.Context, filter models.ListFilter) (*models.EntryList, error) {
	if !s.session.IsAuthenticated() {
		return nil, session.ErrNotAuthenticated
	}
	if filter.Limit == 0 {
		filter.Limit = s.pageLimit
	}

	list, err := s.client.ListEntries(ctx, filter)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.expire(ctx)
		}
		return nil, err
	}
	return list, nil
}

// expire handles a rejected credential discovered during session-dependent
// work: the session is torn down and the cache cleared.
func (s *Service) expire(ctx context.Context) {
	s.log.Warn(ctx, "credential rejected, ending session")
	s.session.Logout(ctx)
	s.cache.Clear()
}
