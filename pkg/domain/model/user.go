package model

import (
	"time"

	"github.com/scanbook/scanbook/pkg/domain/types"
)

// User is an authenticated identity. Only the scan services in this
// repository reference it; credential verification itself lives in usecase.
type User struct {
	ID           types.UserID `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-" masq:"secret"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
