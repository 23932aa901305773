// Package domain contains the user store backing the agent directory.
package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Roles stored on users. Agents are the resellers whose codes appear on sale
// records.
const (
	RoleAdmin = 1
	RoleAgent = 2
)

// User is an operator or reseller account.
type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	RoleID       int    `gorm:"not null;default:2" json:"roleId"`
	UserName     string `gorm:"size:45;not null;uniqueIndex" json:"userName"`
	PasswordHash string `gorm:"size:200" json:"-"`
	Email        string `gorm:"size:45" json:"email"`
	Handphone    string `gorm:"size:45" json:"handphone"`
	AgenCode     string `gorm:"size:45" json:"agenCode"`
	IsActive     bool   `gorm:"not null;default:true" json:"isActive"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByUserName(ctx context.Context, db *gorm.DB, userName string) (*User, error)
	ListByRole(ctx context.Context, db *gorm.DB, roleID int) ([]User, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}

type Service interface {
	// List returns all agent accounts.
	List(ctx context.Context) ([]User, error)

	// AgentCodes returns the allowed agent-code snapshot: the non-empty codes
	// of active agent accounts.
	AgentCodes(ctx context.Context) ([]string, error)
}

var ErrInvalidUserName = errors.New("invalid_user_name")
