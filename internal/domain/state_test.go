package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStateFilter(t *testing.T) {
	cases := map[string]StateFilter{
		"ALL":      StateAll,
		"CURRENT":  StateCurrent,
		"PAST":     StatePast,
		"FUTURE":   StateFuture,
		"WAITING":  StateWaiting,
		"REJECTED": StateRejected,
	}

	for token, want := range cases {
		got, err := ParseStateFilter(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got)
	}
}

func TestParseStateFilter_CaseInsensitive(t *testing.T) {
	for _, token := range []string{"current", "Current", "cUrReNt"} {
		got, err := ParseStateFilter(token)
		require.NoError(t, err, token)
		assert.Equal(t, StateCurrent, got)
	}
}

func TestParseStateFilter_UnknownToken(t *testing.T) {
	_, err := ParseStateFilter("PrEsEnT")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownState)
	// The message must echo the token exactly as the caller sent it.
	assert.Contains(t, err.Error(), "PrEsEnT")
	assert.NotContains(t, err.Error(), "PRESENT")
}

func TestStateFilter_String(t *testing.T) {
	assert.Equal(t, "REJECTED", StateRejected.String())
	assert.Equal(t, "StateFilter(42)", StateFilter(42).String())
}
