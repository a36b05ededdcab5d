package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/repository"
)

// ListScans returns the caller's scan history, newest first, without report
// bodies.
func (x *UseCase) ListScans(ctx context.Context, userID types.UserID) ([]*model.ScanDigest, error) {
	if userID == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "user ID is empty")
	}

	return x.clients.ScanRepository().ListScans(ctx, userID)
}

// GetScanReport returns the full scan record with its report text. A record
// that does not exist and a record owned by another user both yield
// ErrScanNotFound: the existence of someone else's record must not be
// observable.
func (x *UseCase) GetScanReport(ctx context.Context, userID types.UserID, scanID types.ScanID) (*model.Scan, error) {
	if userID == "" {
		return nil, goerr.Wrap(types.ErrValidationFailed, "user ID is empty")
	}

	scan, err := x.clients.ScanRepository().GetScan(ctx, scanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, goerr.Wrap(types.ErrScanNotFound, "no such scan",
				goerr.V("scanID", scanID),
			)
		}
		return nil, err
	}

	if scan.UserID != userID {
		return nil, goerr.Wrap(types.ErrScanNotFound, "no such scan",
			goerr.V("scanID", scanID),
		)
	}

	return scan, nil
}
