package cli

import (
	"testing"

	"github.com/postit-dev/postit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPrefix(t *testing.T) {
	candidates := []string{"list", "log", "add", "done", "drop"}

	tests := []struct {
		name      string
		prefix    string
		want      string
		wantError bool
		errorMsg  string
	}{
		{name: "exact match", prefix: "list", want: "list"},
		{name: "exact match case insensitive", prefix: "LIST", want: "list"},
		{name: "unique prefix li matches list", prefix: "li", want: "list"},
		{name: "unique prefix ad matches add", prefix: "ad", want: "add"},
		{name: "surrounding space is ignored", prefix: " dr ", want: "drop"},
		{name: "ambiguous l", prefix: "l", wantError: true, errorMsg: "ambiguous command \"l\" matches: list, log"},
		{name: "ambiguous d", prefix: "d", wantError: true, errorMsg: "ambiguous"},
		{name: "no match", prefix: "xyz", wantError: true, errorMsg: "unknown command \"xyz\""},
		{name: "empty", prefix: "", wantError: true, errorMsg: "empty command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchPrefix(tt.prefix, candidates, "command")
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchPrefixNoCandidates(t *testing.T) {
	_, err := MatchPrefix("list", nil, "command")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	tests := map[string]model.Priority{
		"high":   model.PriorityHigh,
		"h":      model.PriorityHigh,
		"HIGH":   model.PriorityHigh,
		"m":      model.PriorityMed,
		"med":    model.PriorityMed,
		"medium": model.PriorityMed,
		"l":      model.PriorityLow,
		"low":    model.PriorityLow,
		"n":      model.PriorityNone,
		"none":   model.PriorityNone,
	}
	for arg, want := range tests {
		got, err := ParsePriority(arg)
		require.NoError(t, err, arg)
		assert.Equal(t, want, got, arg)
	}

	for _, arg := range []string{"", "urgent", "x"} {
		_, err := ParsePriority(arg)
		require.Error(t, err, arg)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, arg)
	}
}
