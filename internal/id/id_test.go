package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		kind   Kind
		prefix string
	}{
		{KindParticipant, "p_"},
		{KindTransaction, "tx_"},
	}
	for _, tt := range tests {
		got := New(tt.kind)
		assert.Regexp(t, "^"+tt.prefix+"[0-9a-f-]{36}$", got)
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := New(KindTransaction)
		require.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}

func TestParse(t *testing.T) {
	s := New(KindParticipant)
	kind, u, err := Parse(s)
	require.NoError(t, err)
	assert.Equal(t, KindParticipant, kind)
	assert.Equal(t, s, Format(kind, u.String()))
}

func TestParse_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"nounderscore",
		"zz_0b6f8c1e-6f1c-4e0a-9a55-6c2f3b1f7a10",
		"p_not-a-uuid",
	}
	for _, input := range badInputs {
		_, _, err := Parse(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestSequential(t *testing.T) {
	gen := Sequential()
	assert.Equal(t, "p_1", gen(KindParticipant))
	assert.Equal(t, "p_2", gen(KindParticipant))
	assert.Equal(t, "tx_3", gen(KindTransaction))
}
