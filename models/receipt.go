package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Receipt is an issued payment receipt. Like invoices, receipts are
// immutable once written and carry a unique sequential number.
type Receipt struct {
	Id            string  `json:"id" gorm:"primaryKey"`
	Number        string  `json:"number" gorm:"uniqueIndex;not null"`
	ClientName    string  `json:"client_name" gorm:"not null"`
	Amount        float64 `json:"amount" gorm:"type:numeric(12,2)"`
	PaymentMethod string  `json:"payment_method" gorm:"type:varchar(20)"`
	Description   string  `json:"description"`

	// Free-form extras (e.g. a linked booking code) recorded at issue time.
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`

	AuthorId  string    `json:"author_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (receipt *Receipt) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if receipt.Id == "" {
		receipt.Id = uuid.NewString()
	}
	return
}
