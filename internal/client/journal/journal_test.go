package journal

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memento/internal/client/api"
	"memento/internal/client/cache"
	"memento/internal/client/models"
	"memento/internal/client/session"
	"memento/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// memStore is an in-memory metadata.Repository for session wiring.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) { return m.data[key], nil }
func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}
func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
func (m *memStore) Clear(_ context.Context) error {
	m.data = map[string][]byte{}
	return nil
}

// fakeClient serves canned journal responses. beforeReply, when set, runs
// after the request is "sent" but before the response is returned, which
// lets tests change the session mid-flight.
type fakeClient struct {
	api.Client

	list    *models.EntryList
	listErr error

	created   *models.JournalEntry
	createErr error

	updated   *models.JournalEntry
	updateErr error

	deleteErr error

	toggled   *models.JournalEntry
	toggleErr error

	beforeReply func()
}

func (f *fakeClient) SetToken(string) {}
func (f *fakeClient) ClearToken()     {}

func (f *fakeClient) Login(context.Context, string, string) (string, error) { return "tok", nil }
func (f *fakeClient) GetMe(context.Context) (*models.User, error) {
	return &models.User{ID: "u1", Username: "alice"}, nil
}

func (f *fakeClient) ListEntries(context.Context, models.ListFilter) (*models.EntryList, error) {
	if f.beforeReply != nil {
		f.beforeReply()
	}
	return f.list, f.listErr
}

func (f *fakeClient) CreateEntry(context.Context, models.EntryPayload) (*models.JournalEntry, error) {
	return f.created, f.createErr
}

func (f *fakeClient) UpdateEntry(context.Context, string, models.EntryUpdate) (*models.JournalEntry, error) {
	return f.updated, f.updateErr
}

func (f *fakeClient) DeleteEntry(context.Context, string) error {
	if f.beforeReply != nil {
		f.beforeReply()
	}
	return f.deleteErr
}

func (f *fakeClient) ToggleFavorite(context.Context, string) (*models.JournalEntry, error) {
	return f.toggled, f.toggleErr
}

func entry(id, title string) models.JournalEntry {
	return models.JournalEntry{ID: id, Title: title, Content: "c", Category: models.CategoryFact}
}

// newAuthenticated builds a service behind a logged-in session.
func newAuthenticated(t *testing.T, f *fakeClient) (*Service, *session.Manager, *cache.Cache) {
	t.Helper()
	sess := session.NewManager(f, newMemStore(), testLogger())
	sess.Restore(context.Background())
	require.NoError(t, sess.Login(context.Background(), "alice@example.org", "pw"))

	c := cache.New()
	return NewService(f, sess, c, 100, testLogger()), sess, c
}

func TestLoadAll_ReplacesCacheInServerOrder(t *testing.T) {
	f := &fakeClient{list: &models.EntryList{
		Entries: []models.JournalEntry{entry("a", "A"), entry("b", "B"), entry("c", "C")},
		Total:   3, Skip: 0, Limit: 100,
	}}
	svc, _, c := newAuthenticated(t, f)
	c.ReplaceAll([]models.JournalEntry{entry("stale", "Old")})

	require.NoError(t, svc.LoadAll(context.Background()))

	got := svc.Entries()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

// pagingClient serves the journal in fixed pages, recording the skip
// offsets it was asked for.
type pagingClient struct {
	fakeClient
	pages []*models.EntryList
	calls int
	skips []int
}

func (p *pagingClient) ListEntries(_ context.Context, f models.ListFilter) (*models.EntryList, error) {
	p.skips = append(p.skips, f.Skip)
	page := p.pages[p.calls]
	p.calls++
	return page, nil
}

func TestLoadAll_PagesThroughLargeJournals(t *testing.T) {
	p := &pagingClient{pages: []*models.EntryList{
		{Entries: []models.JournalEntry{entry("a", "A"), entry("b", "B")}, Total: 3, Limit: 2},
		{Entries: []models.JournalEntry{entry("c", "C")}, Total: 3, Skip: 2, Limit: 2},
	}}
	sess := session.NewManager(p, newMemStore(), testLogger())
	sess.Restore(context.Background())
	require.NoError(t, sess.Login(context.Background(), "alice@example.org", "pw"))

	c := cache.New()
	svc := NewService(p, sess, c, 2, testLogger())

	require.NoError(t, svc.LoadAll(context.Background()))

	assert.Equal(t, []int{0, 2}, p.skips)
	got := svc.Entries()
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestLoadAll_RequiresSession(t *testing.T) {
	f := &fakeClient{}
	sess := session.NewManager(f, newMemStore(), testLogger())
	sess.Restore(context.Background())

	svc := NewService(f, sess, cache.New(), 100, testLogger())
	assert.ErrorIs(t, svc.LoadAll(context.Background()), session.ErrNotAuthenticated)
}

func TestLoadAll_RejectedCredentialEndsSession(t *testing.T) {
	f := &fakeClient{listErr: &api.APIError{Status: 401, Detail: "Could not validate credentials"}}
	svc, sess, c := newAuthenticated(t, f)
	c.ReplaceAll([]models.JournalEntry{entry("a", "A")})

	err := svc.LoadAll(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, session.StateAnonymous, sess.State())
	assert.Equal(t, 0, c.Len())
}

func TestLoadAll_StaleResponseDiscardedAfterLogout(t *testing.T) {
	f := &fakeClient{list: &models.EntryList{Entries: []models.JournalEntry{entry("a", "A")}}}
	svc, sess, c := newAuthenticated(t, f)

	// Logout lands while the fetch is in flight.
	f.beforeReply = func() { sess.Logout(context.Background()); c.Clear() }

	require.NoError(t, svc.LoadAll(context.Background()))
	assert.Equal(t, 0, c.Len())
}

func TestCreate_ConfirmThenApply(t *testing.T) {
	created := entry("42", "Petrichor")
	f := &fakeClient{created: &created}
	svc, _, _ := newAuthenticated(t, f)

	got, err := svc.Create(context.Background(), models.EntryPayload{
		Title: "Petrichor", Content: "Smell of rain.", Category: models.CategoryWord,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)

	entries := svc.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "42", entries[0].ID)
}

func TestCreate_FailureLeavesCacheUnchanged(t *testing.T) {
	f := &fakeClient{createErr: &api.APIError{Status: 422, Detail: "Title too long"}}
	svc, _, c := newAuthenticated(t, f)
	c.ReplaceAll([]models.JournalEntry{entry("a", "A")})

	_, err := svc.Create(context.Background(), models.EntryPayload{
		Title: "X", Content: "Y", Category: models.CategoryFact,
	})
	require.Error(t, err)
	assert.Equal(t, "Title too long", err.Error())
	assert.Equal(t, 1, c.Len())
}

func TestCreate_ValidatesBeforeSending(t *testing.T) {
	svc, _, _ := newAuthenticated(t, &fakeClient{})

	_, err := svc.Create(context.Background(), models.EntryPayload{
		Title: "X", Content: "Y", Category: "Recipe",
	})
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
}

func TestUpdate_AppliesConfirmedRecordInPlace(t *testing.T) {
	updated := entry("1", "Photosynthesis")
	updated.IsFavorite = true
	f := &fakeClient{updated: &updated}
	svc, _, c := newAuthenticated(t, f)
	c.ReplaceAll([]models.JournalEntry{entry("2", "Petrichor"), entry("1", "Photosynthesis")})

	_, err := svc.Update(context.Background(), "1", models.EntryUpdate{})
	require.NoError(t, err)

	got := svc.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "1", got[1].ID)
	assert.True(t, got[1].IsFavorite)
}

func TestDelete_RemovesFromCache(t *testing.T) {
	f := &fakeClient{}
	svc, _, c := newAuthenticated(t, f)
	c.ReplaceAll([]models.JournalEntry{entry("1", "A"), entry("2", "B")})

	require.NoError(t, svc.Delete(context.Background(), "1"))
	assert.Equal(t, 1, c.Len())

	// A second confirmed delete for the same id is a no-op.
	require.NoError(t, svc.Delete(context.Background(), "1"))
	assert.Equal(t, 1, c.Len())
}

func TestToggleFavorite_AfterDeleteIsIgnored(t *testing.T) {
	toggled := entry("1", "A")
	toggled.IsFavorite = true
	f := &fakeClient{toggled: &toggled}
	svc, _, c := newAuthenticated(t, f)
	// The entry was already removed by a confirmed delete.
	c.ReplaceAll([]models.JournalEntry{entry("2", "B")})

	_, err := svc.ToggleFavorite(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("1")
	assert.False(t, ok)
}

func TestSearch_DoesNotTouchCache(t *testing.T) {
	f := &fakeClient{list: &models.EntryList{Entries: []models.JournalEntry{entry("x", "X")}, Total: 1}}
	svc, _, c := newAuthenticated(t, f)
	c.ReplaceAll([]models.JournalEntry{entry("a", "A")})

	list, err := svc.Search(context.Background(), models.ListFilter{Search: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	got := svc.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}
