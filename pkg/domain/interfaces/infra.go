package interfaces

import (
	"context"

	"github.com/scanbook/scanbook/pkg/domain/types"
)

// WorkflowEngine is the external system that performs the actual scanning
// work. It is opaque to this service; only the request/response contract
// matters.
type WorkflowEngine interface {
	Invoke(ctx context.Context, input *InvokeScanInput) (*InvokeScanOutput, error)
}

type InvokeScanInput struct {
	Target   string
	ScanType types.ScanType
}

type InvokeScanOutput struct {
	MarkdownReport string
}

// TokenSource issues and verifies session tokens binding a user ID.
type TokenSource interface {
	Issue(userID types.UserID) (string, error)
	Verify(token string) (types.UserID, error)
}
