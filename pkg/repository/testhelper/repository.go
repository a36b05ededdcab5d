package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/repository"
)

// Repository is the combined surface a backing store must provide.
type Repository interface {
	interfaces.ScanRepository
	interfaces.UserRepository
}

// TestAll runs the shared test cases against any Repository implementation.
// This is the main entry point for both the memory and postgres tests.
func TestAll(t *testing.T, repo Repository) {
	t.Run("ScanCreateAndGet", func(t *testing.T) {
		TestScanCreateAndGet(t, repo)
	})
	t.Run("ScanImmutable", func(t *testing.T) {
		TestScanImmutable(t, repo)
	})
	t.Run("ScanListOwnershipAndOrder", func(t *testing.T) {
		TestScanListOwnershipAndOrder(t, repo)
	})
	t.Run("UserCreateAndGet", func(t *testing.T) {
		TestUserCreateAndGet(t, repo)
	})
}

func newTestUser(t *testing.T, repo Repository) *model.User {
	t.Helper()

	now := time.Now().UTC()
	user := &model.User{
		ID:           types.NewUserID(),
		Email:        fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		Name:         "Test User",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	gt.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func newTestScan(user *model.User, createdAt time.Time) *model.Scan {
	return &model.Scan{
		ID:             types.NewScanID(),
		UserID:         user.ID,
		ScanType:       types.ScanTypeNmap,
		StartedAt:      createdAt.Add(-time.Minute),
		FinishedAt:     createdAt,
		MarkdownReport: "# Findings\n\nnothing to report",
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

// TestScanCreateAndGet verifies the write-then-read round trip, including
// byte-for-byte report text equality.
func TestScanCreateAndGet(t *testing.T, repo Repository) {
	ctx := context.Background()
	user := newTestUser(t, repo)

	scan := newTestScan(user, time.Now().UTC())
	scan.MarkdownReport = "# Findings\n\n- port 22 open\n- port 80 open\n"
	gt.NoError(t, repo.CreateScan(ctx, scan))

	got := gt.R1(repo.GetScan(ctx, scan.ID)).NoError(t)
	gt.V(t, got.ID).Equal(scan.ID)
	gt.V(t, got.UserID).Equal(user.ID)
	gt.V(t, got.ScanType).Equal(types.ScanTypeNmap)
	gt.V(t, got.MarkdownReport).Equal(scan.MarkdownReport)
	gt.True(t, !got.FinishedAt.Before(got.StartedAt))

	// Unknown ID maps to ErrNotFound
	_, err := repo.GetScan(ctx, types.NewScanID())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestScanImmutable verifies that a second create with the same ID is
// rejected instead of overwriting the stored record.
func TestScanImmutable(t *testing.T, repo Repository) {
	ctx := context.Background()
	user := newTestUser(t, repo)

	scan := newTestScan(user, time.Now().UTC())
	gt.NoError(t, repo.CreateScan(ctx, scan))

	dup := *scan
	dup.MarkdownReport = "overwritten"
	err := repo.CreateScan(ctx, &dup)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrAlreadyExists))

	got := gt.R1(repo.GetScan(ctx, scan.ID)).NoError(t)
	gt.V(t, got.MarkdownReport).Equal(scan.MarkdownReport)
}

// TestScanListOwnershipAndOrder verifies the strict ownership partition,
// the newest-first ordering, and that listings omit report text.
func TestScanListOwnershipAndOrder(t *testing.T, repo Repository) {
	ctx := context.Background()
	alice := newTestUser(t, repo)
	bob := newTestUser(t, repo)

	base := time.Now().UTC().Truncate(time.Second)

	s1 := newTestScan(alice, base.Add(1*time.Hour))
	s2 := newTestScan(alice, base.Add(2*time.Hour))
	s3 := newTestScan(alice, base.Add(3*time.Hour))
	other := newTestScan(bob, base.Add(90*time.Minute))

	for _, s := range []*model.Scan{s1, s2, s3, other} {
		gt.NoError(t, repo.CreateScan(ctx, s))
	}

	digests := gt.R1(repo.ListScans(ctx, alice.ID)).NoError(t)
	gt.A(t, digests).Length(3)
	gt.V(t, digests[0].ID).Equal(s3.ID)
	gt.V(t, digests[1].ID).Equal(s2.ID)
	gt.V(t, digests[2].ID).Equal(s1.ID)

	// Bob's record never leaks into Alice's listing
	for _, d := range digests {
		gt.V(t, d.ID).NotEqual(other.ID)
	}

	bobDigests := gt.R1(repo.ListScans(ctx, bob.ID)).NoError(t)
	gt.A(t, bobDigests).Length(1)
	gt.V(t, bobDigests[0].ID).Equal(other.ID)
}

// TestUserCreateAndGet verifies user persistence and the unique email rule.
func TestUserCreateAndGet(t *testing.T, repo Repository) {
	ctx := context.Background()
	user := newTestUser(t, repo)

	byID := gt.R1(repo.GetUser(ctx, user.ID)).NoError(t)
	gt.V(t, byID.Email).Equal(user.Email)

	byEmail := gt.R1(repo.GetUserByEmail(ctx, user.Email)).NoError(t)
	gt.V(t, byEmail.ID).Equal(user.ID)
	gt.V(t, byEmail.PasswordHash).Equal(user.PasswordHash)

	dup := *user
	dup.ID = types.NewUserID()
	err := repo.CreateUser(ctx, &dup)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrAlreadyExists))

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}
