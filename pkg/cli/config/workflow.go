package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/infra/workflow"
	"github.com/urfave/cli/v3"
)

type Workflow struct {
	url          string
	timeout      time.Duration
	retry        bool
	retryBackoff time.Duration
}

func (x *Workflow) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workflow-url",
			Usage:       "Webhook URL of the external workflow engine",
			Category:    "Workflow",
			Sources:     cli.EnvVars("SCANBOOK_WORKFLOW_URL"),
			Destination: &x.url,
		},
		&cli.DurationFlag{
			Name:        "workflow-timeout",
			Usage:       "Timeout per workflow engine call",
			Category:    "Workflow",
			Sources:     cli.EnvVars("SCANBOOK_WORKFLOW_TIMEOUT"),
			Value:       5 * time.Minute,
			Destination: &x.timeout,
		},
		&cli.BoolFlag{
			Name:        "workflow-retry",
			Usage:       "Retry a failed workflow engine call once",
			Category:    "Workflow",
			Sources:     cli.EnvVars("SCANBOOK_WORKFLOW_RETRY"),
			Destination: &x.retry,
		},
		&cli.DurationFlag{
			Name:        "workflow-retry-backoff",
			Usage:       "Wait before the retry attempt",
			Category:    "Workflow",
			Sources:     cli.EnvVars("SCANBOOK_WORKFLOW_RETRY_BACKOFF"),
			Value:       10 * time.Second,
			Destination: &x.retryBackoff,
		},
	}
}

func (x *Workflow) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", x.url),
		slog.Duration("timeout", x.timeout),
		slog.Bool("retry", x.retry),
	)
}

func (x *Workflow) NewClient() (*workflow.Client, error) {
	if x.url == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "workflow engine URL is required")
	}

	options := []workflow.Option{
		workflow.WithTimeout(x.timeout),
	}
	if x.retry {
		options = append(options, workflow.WithRetry(x.retryBackoff))
	}

	return workflow.New(x.url, options...), nil
}
