package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePasswordStrength(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		wantStrong bool
		wantScore  int
		wantReason []string
	}{
		{
			name:       "empty",
			password:   "",
			wantScore:  0,
			wantReason: []string{ReasonEmpty},
		},
		{
			name:       "all classes, long enough",
			password:   "Abc123!@#xyz",
			wantStrong: true,
			wantScore:  5,
			wantReason: []string{ReasonStrong},
		},
		{
			name:       "blocklisted",
			password:   "password123",
			wantScore:  2,
			wantReason: []string{ReasonUpper, ReasonSymbol, ReasonBlocklist},
		},
		{
			name:       "score 5 but too short to be strong",
			password:   "Ab1!efgh",
			wantScore:  5,
			wantReason: []string{ReasonStrong},
		},
		{
			name:       "short lowercase only",
			password:   "abc",
			wantScore:  1,
			wantReason: []string{ReasonLength, ReasonUpper, ReasonDigit, ReasonSymbol},
		},
		{
			name:       "penalty floored at zero",
			password:   "123456",
			wantScore:  0,
			wantReason: []string{ReasonLength, ReasonUpper, ReasonLower, ReasonSymbol, ReasonBlocklist},
		},
		{
			name:       "blocklist is case insensitive",
			password:   "QWERTYuiop12!",
			wantStrong: true,
			wantScore:  4,
			wantReason: []string{ReasonBlocklist},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScorePasswordStrength(tt.password)
			assert.Equal(t, tt.wantStrong, got.IsStrong)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantReason, got.Reasons)
		})
	}
}
