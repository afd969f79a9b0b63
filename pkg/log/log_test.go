package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCorrelationID(t *testing.T) {
	incoming := uuid.New().String()

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{name: "reaproveita UUID recebido", incoming: incoming, reuse: true},
		{name: "gera novo quando ausente", incoming: ""},
		{name: "gera novo quando inválido", incoming: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, id := WithCorrelationID(context.Background(), tt.incoming)

			assert.Equal(t, id, GetCorrelationID(ctx))
			_, err := uuid.Parse(id)
			require.NoError(t, err)
			if tt.reuse {
				assert.Equal(t, tt.incoming, id)
			} else {
				assert.NotEqual(t, tt.incoming, id)
			}
		})
	}
}

func TestForContext_AddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	previous := logrus.StandardLogger().Out
	logrus.SetOutput(&buf)
	t.Cleanup(func() { logrus.SetOutput(previous) })
	Configure("debug")

	ctx, id := WithCorrelationID(context.Background(), "")
	ForContext(ctx).Info("teste")

	assert.Contains(t, buf.String(), id)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestConfigure_InvalidLevel(t *testing.T) {
	Configure("barulhento")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestGetCorrelationID_Empty(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
}
