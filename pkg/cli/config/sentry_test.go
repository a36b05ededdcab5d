package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/scanbook/scanbook/pkg/cli/config"
)

func TestSentryConfigure(t *testing.T) {
	t.Run("empty DSN is accepted and disables sentry", func(t *testing.T) {
		var s config.Sentry
		gt.NoError(t, s.Configure(context.Background()))
	})
}
