package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
)

// Booking is a client session request. The code is the short identifier
// clients reference in messages and payments ("BW-XXXX").
type Booking struct {
	Id          string        `json:"id" gorm:"primaryKey"`
	Code        string        `json:"code" gorm:"uniqueIndex;not null"`
	ClientName  string        `json:"client_name" gorm:"not null"`
	Email       string        `json:"email" gorm:"not null"`
	PhoneNumber string        `json:"phone_number" gorm:"not null"`
	ServiceType string        `json:"service_type" gorm:"not null"`
	EventDate   string        `json:"event_date" gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Message     string        `json:"message"`
	Status      BookingStatus `json:"status" gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if booking.Id == "" {
		booking.Id = uuid.NewString()
	}
	if booking.Status == "" {
		booking.Status = BookingPending
	}
	return
}
