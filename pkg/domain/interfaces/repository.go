package interfaces

import (
	"context"

	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
)

// ScanRepository persists scan records. Records are immutable after
// creation; there is no update or delete operation.
type ScanRepository interface {
	CreateScan(ctx context.Context, scan *model.Scan) error
	GetScan(ctx context.Context, id types.ScanID) (*model.Scan, error)

	// ListScans returns digests of the user's scans, newest CreatedAt first.
	// The report body is not loaded.
	ListScans(ctx context.Context, userID types.UserID) ([]*model.ScanDigest, error)
}

// UserRepository persists user identities.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id types.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}
