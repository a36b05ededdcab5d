package interfaces

import (
	"context"
	"io"

	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
)

type UseCase interface {
	TriggerScan(ctx context.Context, input *model.TriggerScanInput) (*model.Scan, error)
	ListScans(ctx context.Context, userID types.UserID) ([]*model.ScanDigest, error)
	GetScanReport(ctx context.Context, userID types.UserID, scanID types.ScanID) (*model.Scan, error)
	RenderReportPDF(scan *model.Scan, w io.Writer) error

	SignUp(ctx context.Context, email, password, name string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}
