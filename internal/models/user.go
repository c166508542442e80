package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Name           string
	Email          string
	HashedPassword string

	// Currently active refresh token, nil if the user has no session.
	// At most one refresh token is valid per user: login overwrites it,
	// logout clears it.
	RefreshToken *string
}
