package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/utils/logging"
)

// TriggerScan invokes the external workflow engine synchronously and
// persists the returned report as a new scan record. Exactly one record is
// created per successful invocation; an upstream failure creates none.
// There is no compensating action if the store write fails after a
// successful upstream call, but the result is logged first so it can be
// replayed manually.
func (x *UseCase) TriggerScan(ctx context.Context, input *model.TriggerScanInput) (*model.Scan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()

	out, err := x.clients.WorkflowEngine().Invoke(ctx, &interfaces.InvokeScanInput{
		Target:   input.Target,
		ScanType: input.ScanType,
	})
	if err != nil {
		return nil, err
	}

	// FinishedAt brackets the upstream call, not the persistence below.
	finishedAt := time.Now().UTC()

	logging.From(ctx).Info("scan finished",
		"target", input.Target,
		"scanType", input.ScanType,
		"elapsed", finishedAt.Sub(startedAt),
		"reportSize", len(out.MarkdownReport),
	)

	now := time.Now().UTC()
	scan := &model.Scan{
		ID:             types.NewScanID(),
		UserID:         input.UserID,
		ScanType:       input.ScanType,
		StartedAt:      startedAt,
		FinishedAt:     finishedAt,
		MarkdownReport: out.MarkdownReport,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := x.clients.ScanRepository().CreateScan(ctx, scan); err != nil {
		// The upstream result is gone if we drop it here; dump the report so
		// the record can be replayed manually.
		logging.From(ctx).Error("scan result lost: store write failed after successful upstream call",
			"scanID", scan.ID,
			"userID", scan.UserID,
			"scanType", scan.ScanType,
			"markdownReport", out.MarkdownReport,
		)
		return nil, goerr.Wrap(err, "failed to persist scan record",
			goerr.V("scanID", scan.ID),
		)
	}

	return scan, nil
}
