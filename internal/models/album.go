package models

import (
	"time"

	"github.com/google/uuid"
)

type Album struct {
	ID        uuid.UUID
	Artist    string
	Title     string
	Year      int
	Genre     string
	Tracks    int
	UpdatedAt time.Time
}
