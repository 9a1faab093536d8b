package models

import (
	"time"
)

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// Token pair issued by TokenManager on login, registration or refresh
// Both tokens are self contained: nothing is persisted server side
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}
