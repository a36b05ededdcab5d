package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/repository"
)

func (r *Repository) CreateScan(ctx context.Context, scan *model.Scan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := string(scan.ID)
	if _, exists := r.scans[id]; exists {
		return goerr.Wrap(repository.ErrAlreadyExists, "scan already exists",
			goerr.V("scanID", scan.ID),
		)
	}

	r.scans[id] = copyScan(scan)
	r.scanOrder = append(r.scanOrder, id)

	return nil
}

func (r *Repository) GetScan(ctx context.Context, id types.ScanID) (*model.Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scan, exists := r.scans[string(id)]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "scan not found",
			goerr.V("scanID", id),
		)
	}

	return copyScan(scan), nil
}

func (r *Repository) ListScans(ctx context.Context, userID types.UserID) ([]*model.ScanDigest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var digests []*model.ScanDigest
	for _, id := range r.scanOrder {
		if scan := r.scans[id]; scan.UserID == userID {
			digests = append(digests, scan.Digest())
		}
	}

	// Newest first. SliceStable keeps insertion order for equal timestamps.
	sort.SliceStable(digests, func(i, j int) bool {
		return digests[i].CreatedAt.After(digests[j].CreatedAt)
	})

	return digests, nil
}

func copyScan(scan *model.Scan) *model.Scan {
	if scan == nil {
		return nil
	}
	cpy := *scan
	return &cpy
}
