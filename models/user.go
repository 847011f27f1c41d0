package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role is a closed classification controlling which operations a
// principal may invoke. Anything else is rejected at the store boundary.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// User is the profile record for an authenticated principal. Exactly one
// exists per principal id; the role is immutable once set except through
// an explicit administrative action.
type User struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"unique;not null"`
	DisplayName string    `json:"display_name" gorm:"not null"`
	Password    []byte    `json:"-"`
	Role        Role      `json:"role" gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if user.Id == "" {
		user.Id = uuid.NewString()
	}
	return user.validateRole()
}

func (user *User) BeforeSave(tx *gorm.DB) (err error) {
	return user.validateRole()
}

func (user *User) validateRole() error {
	if !user.Role.Valid() {
		return fmt.Errorf("invalid role %q", user.Role)
	}
	return nil
}

func (user *User) SetPassword(password string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	user.Password = hashedPassword
}

func (user *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(user.Password, []byte(password))
}
