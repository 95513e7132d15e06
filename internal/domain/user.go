package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID         string         `gorm:"primaryKey;size:32" json:"id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Email      string         `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Role       string         `gorm:"size:16;not null;default:USER" json:"role"` // "USER"/"ADMIN"
	Phone      string         `gorm:"size:32" json:"phone"`
	Department string         `gorm:"size:64" json:"department"`
	Active     bool           `gorm:"not null;default:true" json:"active"`
	CreatedBy  string         `gorm:"size:32" json:"createdBy"`
	UpdatedBy  string         `gorm:"size:32" json:"updatedBy"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserRepository is the persistence contract. Implementations enforce email
// uniqueness atomically on Create/Update and surface ErrDuplicateEmail;
// FindByID/FindByEmail return (nil, nil) when no record exists.
type UserRepository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByRole(ctx context.Context, role string) ([]User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
