// Package models contains the domain entities for the Inkwell blogging API.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered author.
//
// Name is deliberately not declared unique; login resolves duplicate names
// to the oldest matching row.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null;index" json:"name"`
	HashedPassword string         `gorm:"not null" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// Principal is the authenticated identity attached to a request.
type Principal interface {
	PrincipalID() uint
}

// PrincipalID implements Principal.
func (u *User) PrincipalID() uint {
	return u.ID
}

type principalRef uint

func (p principalRef) PrincipalID() uint { return uint(p) }

// PrincipalFromID adapts a resolved user ID into a Principal without loading
// the full user row.
func PrincipalFromID(id uint) Principal {
	return principalRef(id)
}
