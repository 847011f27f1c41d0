package middlewares

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"github.com/brainworksstudio2-dev/brain-works/database"
	"github.com/brainworksstudio2-dev/brain-works/models"
)

// IdempotencyStore persists idempotency records. LookupOrCreate atomically
// returns the record for a key, creating a pending one when absent; created
// reports whether this caller became the executor for the key.
type IdempotencyStore interface {
	LookupOrCreate(ctx context.Context, rec *models.IdempotencyKey) (existing *models.IdempotencyKey, created bool, err error)
	StoreResponse(ctx context.Context, key string, status int, body []byte) error
}

// Idempotency processes Idempotency-Key for mutating HTTP methods. Issuing a
// financial document spends a sequence number, so a double-submitted form
// must replay the stored response instead of minting a second document.
func Idempotency() fiber.Handler {
	return idempotencyWith(gormIdempotencyStore{})
}

func idempotencyWith(store IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch && method != fiber.MethodDelete {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get("Idempotency-Key"))
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Idempotency-Key too long"})
		}

		session := SessionFrom(c)
		if session == nil || session.Profile() == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "auth context missing"})
		}
		userID := session.Profile().Id

		path := c.OriginalURL() // includes query string
		reqHash := idempotencyHash(method, path, c.Body(), userID)

		rec := &models.IdempotencyKey{
			Key:         key,
			RequestHash: reqHash,
			Method:      method,
			Path:        path,
			UserID:      userID,
		}
		existing, created, err := store.LookupOrCreate(c.UserContext(), rec)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "idempotency lookup failed")
		}

		if existing.RequestHash != reqHash {
			return fiber.NewError(fiber.StatusConflict, "Idempotency-Key reuse with different request")
		}

		if !created {
			if existing.ResponseStatus != 0 && existing.ResponseBody != nil {
				// Completed: replay the stored response and stop here. The
				// handler must not run again — it would mint a second
				// document number.
				c.Status(existing.ResponseStatus)
				return c.Send(existing.ResponseBody)
			}
			// Another request holding the same key has not finished yet.
			// Refuse rather than run the handler twice; the client retries
			// once the first attempt completes.
			return fiber.NewError(fiber.StatusConflict, "request with this Idempotency-Key is still in progress")
		}

		// We own the pending record: run the handler exactly once.
		if err := c.Next(); err != nil {
			return err
		}

		// Store the response best-effort; a miss here only costs a replay.
		status := c.Response().StatusCode()
		resp := c.Response().Body()
		blob := make([]byte, len(resp))
		copy(blob, resp)
		_ = store.StoreResponse(c.UserContext(), key, status, blob)

		return nil
	}
}

// idempotencyHash builds the deterministic request hash: method|path|body|user.
func idempotencyHash(method, path string, body []byte, userID string) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{'\n'})
	h.Write([]byte(path))
	h.Write([]byte{'\n'})
	h.Write(body)
	h.Write([]byte{'\n'})
	h.Write([]byte(userID))
	return hex.EncodeToString(h.Sum(nil))
}

// gormIdempotencyStore keeps idempotency records in the idempotency_keys
// table. Creation races on the unique key index resolve by re-reading the
// winner, mirroring the profile store's create-if-absent.
type gormIdempotencyStore struct{}

func (gormIdempotencyStore) LookupOrCreate(ctx context.Context, rec *models.IdempotencyKey) (*models.IdempotencyKey, bool, error) {
	db := database.DB.WithContext(ctx)

	res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).Create(rec)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return rec, true, nil
	}

	var found models.IdempotencyKey
	if err := db.Where("key = ?", rec.Key).First(&found).Error; err != nil {
		return nil, false, err
	}
	return &found, false, nil
}

func (gormIdempotencyStore) StoreResponse(ctx context.Context, key string, status int, body []byte) error {
	now := time.Now().UTC()
	return database.DB.WithContext(ctx).Model(&models.IdempotencyKey{}).
		Where("key = ?", key).
		Updates(map[string]any{
			"response_status": status,
			"response_body":   body,
			"completed_at":    &now,
		}).Error
}
