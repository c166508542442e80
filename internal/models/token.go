package models

import (
	"time"
)

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// Token pair issued on login: short-lived access token and
// longer-lived refresh token
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}
