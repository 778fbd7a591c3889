package job

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginEmail(t *testing.T) {
	j, err := NewLoginEmail("ada@example.com", "0b8e9f1c-token")
	require.NoError(t, err)

	assert.Equal(t, TypeEmail, j.Type)
	assert.Equal(t, PriorityLoginEmail, j.Priority)
	assert.Equal(t, StatusPending, j.Status)
	assert.JSONEq(t, `{"toEmail":"ada@example.com","token":"0b8e9f1c-token"}`, string(j.Payload))
}

func TestJob_Lifecycle(t *testing.T) {
	j, err := NewLoginEmail("ada@example.com", "tok-1234567890")
	require.NoError(t, err)
	now := time.Now()

	require.NoError(t, j.MarkRunning(now))
	assert.Equal(t, StatusRunning, j.Status)
	assert.NotNil(t, j.StartedAt)

	assert.ErrorIs(t, j.MarkRunning(now), ErrNotRunnable)

	require.NoError(t, j.MarkCompleted(now))
	assert.Equal(t, StatusCompleted, j.Status)
	assert.True(t, j.IsTerminal())
	assert.ErrorIs(t, j.MarkCompleted(now), ErrNotRunning)
}

func TestJob_RecordFailure(t *testing.T) {
	t.Run("default threshold retries once then fails", func(t *testing.T) {
		j, err := NewLoginEmail("ada@example.com", "tok-1234567890")
		require.NoError(t, err)

		j.RecordFailure("smtp down", DefaultMaxFailures)
		assert.Equal(t, StatusRetry, j.Status)
		assert.Equal(t, 1, j.FailureCount)

		j.RecordFailure("smtp still down", DefaultMaxFailures)
		assert.Equal(t, StatusFailed, j.Status)
		assert.Equal(t, 2, j.FailureCount)
		assert.Equal(t, "smtp still down", j.ErrorMessage)
	})

	t.Run("higher threshold allows more attempts", func(t *testing.T) {
		j, err := NewLoginEmail("ada@example.com", "tok-1234567890")
		require.NoError(t, err)

		for i := 0; i < 4; i++ {
			j.RecordFailure("boom", 5)
			assert.Equal(t, StatusRetry, j.Status)
		}
		j.RecordFailure("boom", 5)
		assert.Equal(t, StatusFailed, j.Status)
	})

	t.Run("threshold below one fails immediately", func(t *testing.T) {
		j, err := NewLoginEmail("ada@example.com", "tok-1234567890")
		require.NoError(t, err)
		j.RecordFailure("boom", 0)
		assert.Equal(t, StatusFailed, j.Status)
	})
}

func TestJob_Requeue(t *testing.T) {
	j, err := NewLoginEmail("ada@example.com", "tok-1234567890")
	require.NoError(t, err)

	assert.ErrorIs(t, j.Requeue(), ErrNotRequeueable)

	j.Fail("Invalid payload")
	require.NoError(t, j.Requeue())
	assert.Equal(t, StatusPending, j.Status)
	assert.Zero(t, j.FailureCount)
	assert.Empty(t, j.ErrorMessage)
}

func TestParseEmailPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"toEmail":"a@b.c","token":"t"}`, false},
		{"missing token", `{"toEmail":"a@b.c"}`, true},
		{"token not a string", `{"toEmail":"a@b.c","token":42}`, true},
		{"empty email", `{"toEmail":"","token":"t"}`, true},
		{"not an object", `[1,2]`, true},
		{"garbage", `{{`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseEmailPayload(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@b.c", p.ToEmail)
		})
	}
}
