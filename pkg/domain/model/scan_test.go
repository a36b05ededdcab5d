package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
)

func TestTriggerScanInputValidate(t *testing.T) {
	valid := model.TriggerScanInput{
		UserID:   types.NewUserID(),
		Target:   "10.0.0.5",
		ScanType: types.ScanTypeNmap,
	}

	t.Run("valid input passes", func(t *testing.T) {
		input := valid
		gt.NoError(t, input.Validate())
	})

	t.Run("every supported scan type passes", func(t *testing.T) {
		for _, st := range []types.ScanType{
			types.ScanTypeNmap,
			types.ScanTypeNessusBasic,
			types.ScanTypeNessusAdvanced,
			types.ScanTypeNessusWeb,
		} {
			input := valid
			input.ScanType = st
			gt.NoError(t, input.Validate())
		}
	})

	t.Run("empty user ID fails", func(t *testing.T) {
		input := valid
		input.UserID = ""
		err := input.Validate()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})

	t.Run("empty target fails", func(t *testing.T) {
		input := valid
		input.Target = ""
		gt.True(t, errors.Is(input.Validate(), types.ErrValidationFailed))
	})

	t.Run("unknown scan type fails", func(t *testing.T) {
		input := valid
		input.ScanType = "masscan"
		gt.True(t, errors.Is(input.Validate(), types.ErrValidationFailed))
	})
}

func TestScanDigestOmitsReport(t *testing.T) {
	scan := &model.Scan{
		ID:             types.NewScanID(),
		UserID:         types.NewUserID(),
		ScanType:       types.ScanTypeNessusWeb,
		MarkdownReport: "# secret findings",
	}

	digest := scan.Digest()
	gt.V(t, digest.ID).Equal(scan.ID)
	gt.V(t, digest.ScanType).Equal(scan.ScanType)
}
