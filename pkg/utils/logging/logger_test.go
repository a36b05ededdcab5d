package logging_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/scanbook/scanbook/pkg/utils/logging"
)

func TestConfigure(t *testing.T) {
	t.Run("valid combinations", func(t *testing.T) {
		gt.NoError(t, logging.Configure("text", "info", "stdout"))
		gt.NoError(t, logging.Configure("json", "debug", "stderr"))
		gt.NoError(t, logging.Configure("text", "warn", "-"))
	})

	t.Run("invalid level", func(t *testing.T) {
		gt.Error(t, logging.Configure("text", "verbose", "stdout"))
	})

	t.Run("invalid format", func(t *testing.T) {
		gt.Error(t, logging.Configure("xml", "info", "stdout"))
	})

	// Restore the default for other tests
	gt.NoError(t, logging.Configure("text", "info", "stdout"))
}

func TestDefault(t *testing.T) {
	gt.V(t, logging.Default() != nil).Equal(true)
}
