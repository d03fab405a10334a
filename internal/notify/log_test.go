package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/account-auth/internal/logger"
)

func TestLogNotifier_SendCode(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(logger.NewWithWriter(&buf, 0))

	require.NoError(t, n.SendCode(context.Background(), "ada@example.com", "482913"))
	assert.Contains(t, buf.String(), "identity=ada@example.com")
	assert.Contains(t, buf.String(), "code=482913")
}
