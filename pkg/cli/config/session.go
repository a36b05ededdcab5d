package config

import (
	"log/slog"
	"time"

	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/infra/session"
	"github.com/urfave/cli/v3"
)

type Session struct {
	secret string
	ttl    time.Duration
}

func (x *Session) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "session-secret",
			Usage:       "Secret for signing session tokens",
			Category:    "Session",
			Sources:     cli.EnvVars("SCANBOOK_SESSION_SECRET"),
			Destination: &x.secret,
			Required:    true,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Session token lifetime",
			Category:    "Session",
			Sources:     cli.EnvVars("SCANBOOK_SESSION_TTL"),
			Value:       24 * time.Hour,
			Destination: &x.ttl,
		},
	}
}

func (x *Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("secret", types.SessionSecret(x.secret)),
		slog.Duration("ttl", x.ttl),
	)
}

func (x *Session) NewTokenSource() (*session.TokenSource, error) {
	return session.New(types.SessionSecret(x.secret), session.WithTTL(x.ttl))
}
