// Package user contains the user identity entity.
package user

import (
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/google/uuid"
)

// User is an identity holder. Immutable once created except the password hash.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Builder constructs User instances.
type Builder struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	createdAt    time.Time
}

// New creates a Builder with a fresh ID.
func New() *Builder {
	return &Builder{id: uuid.New(), createdAt: time.Now()}
}

// WithID sets the ID.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithName sets the display name.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithEmail sets the email address. Mandatory.
func (b *Builder) WithEmail(email string) *Builder {
	b.email = email
	return b
}

// WithPasswordHash sets the bcrypt hash of the password. Mandatory.
func (b *Builder) WithPasswordHash(hash string) *Builder {
	b.passwordHash = hash
	return b
}

// Build validates and returns the user.
func (b *Builder) Build() (*User, error) {
	if b.email == "" || b.passwordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return &User{
		ID:           b.id,
		Name:         b.name,
		Email:        b.email,
		PasswordHash: b.passwordHash,
		CreatedAt:    b.createdAt,
	}, nil
}
