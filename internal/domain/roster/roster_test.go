package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MaximMukhametov/assign-bot/internal/domain/roster"
)

func TestParseUsernames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"spaces", "@alice @bob", []string{"@alice", "@bob"}},
		{"commas", "@alice, @bob,@carol", []string{"@alice", "@bob", "@carol"}},
		{"newlines", "@alice\n@bob\n", []string{"@alice", "@bob"}},
		{"missing at-sign normalized", "alice bob", []string{"@alice", "@bob"}},
		{"duplicates keep first occurrence", "@alice bob @alice @bob", []string{"@alice", "@bob"}},
		{"mixed separators", "@a,\n b  ,c", []string{"@a", "@b", "@c"}},
		{"empty", "   \n , ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roster.ParseUsernames(tt.raw))
		})
	}
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "—", roster.FormatList(nil))
	assert.Equal(t, "• @alice\n• @bob", roster.FormatList([]string{"@alice", "@bob"}))
}

func TestIntersect(t *testing.T) {
	got := roster.Intersect([]string{"@a", "@x", "@b"}, []string{"@b", "@a", "@c"})
	assert.Equal(t, []string{"@a", "@b"}, got, "order follows the first argument")

	assert.Empty(t, roster.Intersect([]string{"@x"}, []string{"@a"}))
	assert.Empty(t, roster.Intersect(nil, []string{"@a"}))
}
