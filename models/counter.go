package models

// SequenceCounter holds the last issued number for one document kind.
// One row per kind ("invoices", "receipts"); created lazily on first
// reservation and only ever advanced, never reset or deleted.
type SequenceCounter struct {
	Kind       string `json:"kind" gorm:"primaryKey;size:32"`
	LastNumber int64  `json:"last_number" gorm:"not null;default:0"`
}
