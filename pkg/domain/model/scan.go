package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/types"
)

// Scan is a durable record of one invocation of the external workflow
// engine. Records are append-only: created once, never updated, and deleted
// only by retention processes outside this service.
type Scan struct {
	ID             types.ScanID   `json:"id"`
	UserID         types.UserID   `json:"userId"`
	ScanType       types.ScanType `json:"scanType"`
	StartedAt      time.Time      `json:"startTime"`
	FinishedAt     time.Time      `json:"endTime"`
	MarkdownReport string         `json:"markdownReport"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// ScanDigest is the listing projection of a Scan. The report body is
// excluded from listings on purpose.
type ScanDigest struct {
	ID         types.ScanID   `json:"id"`
	ScanType   types.ScanType `json:"scanType"`
	StartedAt  time.Time      `json:"startTime"`
	FinishedAt time.Time      `json:"endTime"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (x *Scan) Digest() *ScanDigest {
	return &ScanDigest{
		ID:         x.ID,
		ScanType:   x.ScanType,
		StartedAt:  x.StartedAt,
		FinishedAt: x.FinishedAt,
		CreatedAt:  x.CreatedAt,
	}
}

type TriggerScanInput struct {
	UserID   types.UserID
	Target   string
	ScanType types.ScanType
}

func (x *TriggerScanInput) Validate() error {
	if x.UserID == "" {
		return goerr.Wrap(types.ErrValidationFailed, "user ID is empty")
	}
	if x.Target == "" {
		return goerr.Wrap(types.ErrValidationFailed, "target is empty")
	}
	if !x.ScanType.IsValid() {
		return goerr.Wrap(types.ErrValidationFailed, "unsupported scan type",
			goerr.V("scanType", x.ScanType),
		)
	}
	return nil
}
