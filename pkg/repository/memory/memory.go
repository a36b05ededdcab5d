package memory

import (
	"sync"

	"github.com/scanbook/scanbook/pkg/domain/model"
)

// New creates a new in-memory repository. It serves both scans and users,
// and is safe for concurrent use.
func New() *Repository {
	return &Repository{
		scans:        make(map[string]*model.Scan),
		usersByID:    make(map[string]*model.User),
		usersByEmail: make(map[string]*model.User),
	}
}

type Repository struct {
	mu sync.RWMutex

	scans map[string]*model.Scan
	// scanOrder keeps insertion order so that listings with equal creation
	// times stay stable.
	scanOrder []string

	usersByID    map[string]*model.User
	usersByEmail map[string]*model.User
}
