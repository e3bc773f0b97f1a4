package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVerdict(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"True", VerdictTrue},
		{"  true ", VerdictTrue},
		{"CORRECT", VerdictTrue},
		{"False", VerdictFalse},
		{"inaccurate", VerdictFalse},
		{"Misleading", VerdictMisleading},
		{"half true", VerdictMisleading},
		{"partially true", VerdictMisleading},
		{"Unverified", VerdictUnverified},
		{"unknown", VerdictUnverified},
		{"", VerdictUnverified},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeVerdict(tc.in), "input %q", tc.in)
	}
}

func TestBand(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "Established fact"},
		{95, "Established fact"},
		{94, "Very likely"},
		{85, "Very likely"},
		{84, "Likely"},
		{70, "Likely"},
		{69, "Uncertain / Mixed"},
		{55, "Uncertain / Mixed"},
		{54, "Doubtful"},
		{35, "Doubtful"},
		{34, "Unlikely"},
		{15, "Unlikely"},
		{14, "False / Unsupported"},
		{0, "False / Unsupported"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Band(tc.score), "score %d", tc.score)
	}
}

func TestRatingSignal(t *testing.T) {
	cases := []struct {
		rating string
		want   int
	}{
		{"True", 1},
		{"Mostly true", 1},
		{"Accurate", 1},
		{"Confirmed", 1},
		{"False", -1},
		{"Pants on Fire", -1},
		{"Misleading", -1},
		{"No evidence", -1},
		{"Debunked", -1},
		{"Half True", 0},
		{"Mixture", 0},
		{"Mixed", 0},
		{"Two Pinocchios", 0},
		{"Three Pinocchios", -1},
		{"Four Pinocchios", -1},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RatingSignal(tc.rating), "rating %q", tc.rating)
	}
}
