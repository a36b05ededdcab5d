package usecase_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/infra"
	"github.com/scanbook/scanbook/pkg/usecase"
)

func TestRenderReportPDF(t *testing.T) {
	uc := usecase.New(infra.New())

	t.Run("renders a PDF document", func(t *testing.T) {
		now := time.Now().UTC()
		scan := &model.Scan{
			ID:             types.NewScanID(),
			UserID:         types.NewUserID(),
			ScanType:       types.ScanTypeNessusWeb,
			StartedAt:      now.Add(-time.Minute),
			FinishedAt:     now,
			MarkdownReport: "# Findings\n\n- XSS on /login\n- outdated TLS",
		}

		var buf bytes.Buffer
		gt.NoError(t, uc.RenderReportPDF(scan, &buf))

		gt.True(t, buf.Len() > 0)
		gt.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	})

	t.Run("empty report still renders", func(t *testing.T) {
		scan := &model.Scan{
			ID:       types.NewScanID(),
			ScanType: types.ScanTypeNmap,
		}

		var buf bytes.Buffer
		gt.NoError(t, uc.RenderReportPDF(scan, &buf))
		gt.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	})

	t.Run("nil record is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		err := uc.RenderReportPDF(nil, &buf)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
		gt.V(t, buf.Len()).Equal(0)
	})
}
