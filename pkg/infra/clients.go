package infra

import (
	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/repository/memory"
)

// Clients bundles the external collaborators the use cases depend on.
type Clients struct {
	workflowEngine interfaces.WorkflowEngine
	tokenSource    interfaces.TokenSource
	scanRepository interfaces.ScanRepository
	userRepository interfaces.UserRepository
}

type Option func(*Clients)

// New builds the client set. Repositories default to a shared in-memory
// store so that tests and local runs work without a database.
func New(options ...Option) *Clients {
	memRepo := memory.New()
	client := &Clients{
		scanRepository: memRepo,
		userRepository: memRepo,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) WorkflowEngine() interfaces.WorkflowEngine {
	return x.workflowEngine
}
func (x *Clients) TokenSource() interfaces.TokenSource {
	return x.tokenSource
}
func (x *Clients) ScanRepository() interfaces.ScanRepository {
	return x.scanRepository
}
func (x *Clients) UserRepository() interfaces.UserRepository {
	return x.userRepository
}

func WithWorkflowEngine(engine interfaces.WorkflowEngine) Option {
	return func(x *Clients) {
		x.workflowEngine = engine
	}
}

func WithTokenSource(source interfaces.TokenSource) Option {
	return func(x *Clients) {
		x.tokenSource = source
	}
}

func WithScanRepository(repo interfaces.ScanRepository) Option {
	return func(x *Clients) {
		x.scanRepository = repo
	}
}

func WithUserRepository(repo interfaces.UserRepository) Option {
	return func(x *Clients) {
		x.userRepository = repo
	}
}
