package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/brainworksstudio2-dev/brain-works/errs"
)

// GormStore reserves numbers against the sequence_counters table.
//
// The reservation is a single upsert, so the increment is atomic even across
// processes: two concurrent transactions serialize on the row lock and each
// observes the other's committed value. A plain SELECT followed by UPDATE
// would let both read the same last_number and hand out duplicates.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps db, which may be a plain connection or an open
// transaction. Run inside the document writer's transaction so the counter
// advance commits or rolls back together with the record insert.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Reserve(ctx context.Context, kind string) (int64, error) {
	if kind == "" {
		return 0, errs.Validation("sequence kind is required")
	}

	var next int64
	err := s.db.WithContext(ctx).Raw(
		`INSERT INTO sequence_counters (kind, last_number)
		 VALUES (?, 1)
		 ON CONFLICT (kind) DO UPDATE
		 SET last_number = sequence_counters.last_number + 1
		 RETURNING last_number`,
		kind,
	).Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("reserve %s number: %w", kind, errs.ErrStoreUnavailable)
	}
	return next, nil
}
