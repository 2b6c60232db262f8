package log

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
	})

	return &buf
}

func TestWithFields_DevelopmentFiltersIrrelevantFields(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf := captureOutput(t)

	L.WithFields(Fields{
		"dashboard_skipped": 2,
		"policy_index":      1,
		"user_agent":        "curl",
	}).Info("teste")

	out := buf.String()
	assert.Contains(t, out, "dashboard_skipped=2")
	assert.Contains(t, out, "policy_index=1")
	assert.NotContains(t, out, "user_agent")
}

func TestWithFields_ProductionKeepsAllFields(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureOutput(t)

	L.WithField("user_agent", "curl").Info("teste")

	assert.Contains(t, buf.String(), "user_agent=curl")
}

func TestForContext_CorrelationID(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf := captureOutput(t)

	ctx, correlationID := WithCorrelationID(context.Background())
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))

	ForContext(ctx).Info("com correlação")

	assert.Contains(t, buf.String(), "correlation_id="+correlationID)
}

func TestConfigure(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, Configure("warn"))
	assert.Equal(t, logrus.InfoLevel, Configure("barulhento"))
}
