package middlewares

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/brainworksstudio2-dev/brain-works/auth"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

// memIdempotencyStore is the test double for IdempotencyStore.
type memIdempotencyStore struct {
	mu   sync.Mutex
	recs map[string]*models.IdempotencyKey
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{recs: make(map[string]*models.IdempotencyKey)}
}

func (s *memIdempotencyStore) LookupOrCreate(ctx context.Context, rec *models.IdempotencyKey) (*models.IdempotencyKey, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.recs[rec.Key]; ok {
		clone := *existing
		return &clone, false, nil
	}
	clone := *rec
	s.recs[rec.Key] = &clone
	return rec, true, nil
}

func (s *memIdempotencyStore) StoreResponse(ctx context.Context, key string, status int, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.recs[key]; ok {
		rec.ResponseStatus = status
		rec.ResponseBody = body
	}
	return nil
}

func (s *memIdempotencyStore) seed(rec *models.IdempotencyKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *rec
	s.recs[rec.Key] = &clone
}

// newIdempotencyApp wires a signed-in admin session, the guard under test and
// a handler whose response changes on every invocation, so a replayed
// response is distinguishable from a re-run.
func newIdempotencyApp(store IdempotencyStore, calls *int) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		session := auth.NewSession()
		session.SignIn(&models.User{Id: "admin-1", Role: models.RoleAdmin})
		c.Locals(sessionKey, session)
		return c.Next()
	})
	app.Use(idempotencyWith(store))
	app.Post("/api/invoices", func(c *fiber.Ctx) error {
		*calls++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": *calls})
	})
	return app
}

func postWithKey(t *testing.T, app *fiber.App, key string, body []byte) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/invoices", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, got
}

func TestIdempotencyReplayDoesNotRerunHandler(t *testing.T) {
	store := newMemIdempotencyStore()
	calls := 0
	app := newIdempotencyApp(store, &calls)
	body := []byte(`{"client_name":"Jane"}`)

	status, first := postWithKey(t, app, "key-1", body)
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, 1, calls)

	// Resubmitting the identical request replays the stored response; the
	// handler must not run a second time, or it would mint a second number.
	status, second := postWithKey(t, app, "key-1", body)
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, 1, calls)
	require.Equal(t, first, second)
}

func TestIdempotencyReplaysSeededCompletedResponse(t *testing.T) {
	store := newMemIdempotencyStore()
	body := []byte(`{"client_name":"Jane"}`)
	stored := []byte(`{"number":"INV-0007"}`)
	store.seed(&models.IdempotencyKey{
		Key:            "key-7",
		RequestHash:    idempotencyHash(fiber.MethodPost, "/api/invoices", body, "admin-1"),
		Method:         fiber.MethodPost,
		Path:           "/api/invoices",
		UserID:         "admin-1",
		ResponseStatus: fiber.StatusCreated,
		ResponseBody:   stored,
	})
	calls := 0
	app := newIdempotencyApp(store, &calls)

	status, got := postWithKey(t, app, "key-7", body)
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, stored, got)
	require.Zero(t, calls, "a completed key must never reach the handler")
}

func TestIdempotencyKeyReuseWithDifferentBody(t *testing.T) {
	store := newMemIdempotencyStore()
	calls := 0
	app := newIdempotencyApp(store, &calls)

	status, _ := postWithKey(t, app, "key-2", []byte(`{"a":1}`))
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = postWithKey(t, app, "key-2", []byte(`{"a":2}`))
	require.Equal(t, fiber.StatusConflict, status)
	require.Equal(t, 1, calls)
}

func TestIdempotencyPendingKeyConflicts(t *testing.T) {
	store := newMemIdempotencyStore()
	body := []byte(`{"client_name":"Jane"}`)
	// A pending record has no stored response yet: the first attempt is
	// still in flight, so a duplicate must wait rather than run in parallel.
	store.seed(&models.IdempotencyKey{
		Key:         "key-3",
		RequestHash: idempotencyHash(fiber.MethodPost, "/api/invoices", body, "admin-1"),
		Method:      fiber.MethodPost,
		Path:        "/api/invoices",
		UserID:      "admin-1",
	})
	calls := 0
	app := newIdempotencyApp(store, &calls)

	status, _ := postWithKey(t, app, "key-3", body)
	require.Equal(t, fiber.StatusConflict, status)
	require.Zero(t, calls)
}

func TestIdempotencyWithoutKeyRunsEveryTime(t *testing.T) {
	store := newMemIdempotencyStore()
	calls := 0
	app := newIdempotencyApp(store, &calls)
	body := []byte(`{"client_name":"Jane"}`)

	for i := 0; i < 3; i++ {
		status, _ := postWithKey(t, app, "", body)
		require.Equal(t, fiber.StatusCreated, status)
	}
	require.Equal(t, 3, calls)
}
