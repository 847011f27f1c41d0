package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice is an issued commercial document. Records are immutable after
// creation; the number reflects the counter value at creation time and is
// unique among invoices.
type Invoice struct {
	Id            string `json:"id" gorm:"primaryKey"`
	Number        string `json:"number" gorm:"uniqueIndex;not null"`
	InvoiceTo     string `json:"invoice_to" gorm:"not null"`
	ClientEmail   string `json:"client_email" gorm:"not null"`
	PaymentMethod string `json:"payment_method" gorm:"type:varchar(20)"`
	Status        string `json:"status" gorm:"type:varchar(10)"`

	Items      []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	TaxPercent float64       `json:"tax_percent"`
	Subtotal   float64       `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxAmount  float64       `json:"tax_amount" gorm:"type:numeric(12,2)"`
	Total      float64       `json:"total" gorm:"type:numeric(12,2)"`

	Notes string `json:"notes"`

	// Snapshot of the validated input at issue time, kept for audit.
	Snapshot datatypes.JSON `json:"-" gorm:"type:jsonb"`

	AuthorId  string    `json:"author_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (invoice *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if invoice.Id == "" {
		invoice.Id = uuid.NewString()
	}
	return
}

type InvoiceItem struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	InvoiceID   string  `json:"-" gorm:"index"`
	Description string  `json:"description" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	LineTotal   float64 `json:"line_total" gorm:"type:numeric(12,2)"`
}
