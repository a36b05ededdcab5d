package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/repository"
)

func (r *Repository) CreateScan(ctx context.Context, scan *model.Scan) error {
	const query = `
INSERT INTO scans (id, user_id, scan_type, started_at, finished_at, markdown_report, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.pool.Exec(ctx, query,
		string(scan.ID),
		string(scan.UserID),
		string(scan.ScanType),
		scan.StartedAt.UTC(),
		scan.FinishedAt.UTC(),
		scan.MarkdownReport,
		scan.CreatedAt.UTC(),
		scan.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return goerr.Wrap(repository.ErrAlreadyExists, "scan already exists",
				goerr.V("scanID", scan.ID),
			)
		}
		return goerr.Wrap(err, "failed to insert scan",
			goerr.V("scanID", scan.ID),
		)
	}

	return nil
}

func (r *Repository) GetScan(ctx context.Context, id types.ScanID) (*model.Scan, error) {
	const query = `
SELECT id, user_id, scan_type, started_at, finished_at, markdown_report, created_at, updated_at
FROM scans
WHERE id = $1
`
	var scan model.Scan
	err := r.pool.QueryRow(ctx, query, string(id)).Scan(
		&scan.ID,
		&scan.UserID,
		&scan.ScanType,
		&scan.StartedAt,
		&scan.FinishedAt,
		&scan.MarkdownReport,
		&scan.CreatedAt,
		&scan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(repository.ErrNotFound, "scan not found",
				goerr.V("scanID", id),
			)
		}
		return nil, goerr.Wrap(err, "failed to get scan",
			goerr.V("scanID", id),
		)
	}

	return &scan, nil
}

// ListScans selects digest columns only; the report body never leaves the
// database for listings.
func (r *Repository) ListScans(ctx context.Context, userID types.UserID) ([]*model.ScanDigest, error) {
	const query = `
SELECT id, scan_type, started_at, finished_at, created_at
FROM scans
WHERE user_id = $1
ORDER BY created_at DESC, id
`
	rows, err := r.pool.Query(ctx, query, string(userID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list scans",
			goerr.V("userID", userID),
		)
	}
	defer rows.Close()

	var digests []*model.ScanDigest
	for rows.Next() {
		var d model.ScanDigest
		if err := rows.Scan(&d.ID, &d.ScanType, &d.StartedAt, &d.FinishedAt, &d.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan digest row")
		}
		digests = append(digests, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate scan rows")
	}

	return digests, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
