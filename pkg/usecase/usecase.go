package usecase

import (
	"github.com/scanbook/scanbook/pkg/infra"
)

type UseCase struct {
	clients *infra.Clients
}

func New(clients *infra.Clients) *UseCase {
	return &UseCase{
		clients: clients,
	}
}
