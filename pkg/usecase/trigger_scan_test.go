package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/infra"
	"github.com/scanbook/scanbook/pkg/repository/memory"
	"github.com/scanbook/scanbook/pkg/usecase"
)

type engineMock struct {
	InvokeFunc func(ctx context.Context, input *interfaces.InvokeScanInput) (*interfaces.InvokeScanOutput, error)
	calls      int
}

func (x *engineMock) Invoke(ctx context.Context, input *interfaces.InvokeScanInput) (*interfaces.InvokeScanOutput, error) {
	x.calls++
	return x.InvokeFunc(ctx, input)
}

func TestTriggerScan(t *testing.T) {
	ctx := context.Background()
	userID := types.NewUserID()

	t.Run("successful scan creates exactly one record", func(t *testing.T) {
		engine := &engineMock{
			InvokeFunc: func(ctx context.Context, input *interfaces.InvokeScanInput) (*interfaces.InvokeScanOutput, error) {
				gt.V(t, input.Target).Equal("10.0.0.5")
				gt.V(t, input.ScanType).Equal(types.ScanTypeNmap)
				return &interfaces.InvokeScanOutput{MarkdownReport: "# Findings\n- port 22"}, nil
			},
		}
		repo := memory.New()
		uc := usecase.New(infra.New(
			infra.WithWorkflowEngine(engine),
			infra.WithScanRepository(repo),
		))

		scan := gt.R1(uc.TriggerScan(ctx, &model.TriggerScanInput{
			UserID:   userID,
			Target:   "10.0.0.5",
			ScanType: types.ScanTypeNmap,
		})).NoError(t)

		gt.V(t, scan.UserID).Equal(userID)
		gt.V(t, scan.ScanType).Equal(types.ScanTypeNmap)
		gt.V(t, scan.MarkdownReport).Equal("# Findings\n- port 22")
		gt.True(t, !scan.FinishedAt.Before(scan.StartedAt))
		gt.V(t, engine.calls).Equal(1)

		digests := gt.R1(repo.ListScans(ctx, userID)).NoError(t)
		gt.A(t, digests).Length(1)
		gt.V(t, digests[0].ID).Equal(scan.ID)

		// Round trip keeps the report byte-for-byte
		stored := gt.R1(repo.GetScan(ctx, scan.ID)).NoError(t)
		gt.V(t, stored.MarkdownReport).Equal("# Findings\n- port 22")
	})

	t.Run("upstream failure creates zero records", func(t *testing.T) {
		engine := &engineMock{
			InvokeFunc: func(ctx context.Context, input *interfaces.InvokeScanInput) (*interfaces.InvokeScanOutput, error) {
				return nil, goerr.Wrap(types.ErrUpstreamFailed, "engine returned 500")
			},
		}
		repo := memory.New()
		uc := usecase.New(infra.New(
			infra.WithWorkflowEngine(engine),
			infra.WithScanRepository(repo),
		))

		_, err := uc.TriggerScan(ctx, &model.TriggerScanInput{
			UserID:   userID,
			Target:   "10.0.0.5",
			ScanType: types.ScanTypeNmap,
		})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrUpstreamFailed))

		digests := gt.R1(repo.ListScans(ctx, userID)).NoError(t)
		gt.A(t, digests).Length(0)
	})

	t.Run("invalid input never reaches the engine", func(t *testing.T) {
		engine := &engineMock{
			InvokeFunc: func(ctx context.Context, input *interfaces.InvokeScanInput) (*interfaces.InvokeScanOutput, error) {
				return &interfaces.InvokeScanOutput{}, nil
			},
		}
		uc := usecase.New(infra.New(infra.WithWorkflowEngine(engine)))

		_, err := uc.TriggerScan(ctx, &model.TriggerScanInput{
			UserID:   userID,
			Target:   "10.0.0.5",
			ScanType: "masscan",
		})
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
		gt.V(t, engine.calls).Equal(0)
	})

	t.Run("store failure is propagated", func(t *testing.T) {
		engine := &engineMock{
			InvokeFunc: func(ctx context.Context, input *interfaces.InvokeScanInput) (*interfaces.InvokeScanOutput, error) {
				return &interfaces.InvokeScanOutput{MarkdownReport: "# ok"}, nil
			},
		}
		uc := usecase.New(infra.New(
			infra.WithWorkflowEngine(engine),
			infra.WithScanRepository(&failingScanRepository{}),
		))

		_, err := uc.TriggerScan(ctx, &model.TriggerScanInput{
			UserID:   userID,
			Target:   "10.0.0.5",
			ScanType: types.ScanTypeNmap,
		})
		gt.Error(t, err)
	})
}

type failingScanRepository struct{}

func (x *failingScanRepository) CreateScan(ctx context.Context, scan *model.Scan) error {
	return goerr.New("disk on fire")
}

func (x *failingScanRepository) GetScan(ctx context.Context, id types.ScanID) (*model.Scan, error) {
	return nil, goerr.New("disk on fire")
}

func (x *failingScanRepository) ListScans(ctx context.Context, userID types.UserID) ([]*model.ScanDigest, error) {
	return nil, goerr.New("disk on fire")
}
