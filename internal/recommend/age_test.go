package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateAge(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate string
		want      *int
	}{
		{
			name:      "ISO layout, birthday passed this year",
			birthDate: "1990-03-10",
			want:      intPtr(36),
		},
		{
			name:      "ISO layout, birthday not yet this year",
			birthDate: "1990-09-10",
			want:      intPtr(35),
		},
		{
			name:      "birthday today counts as passed",
			birthDate: "2000-06-15",
			want:      intPtr(26),
		},
		{
			name:      "day-month-year with dashes",
			birthDate: "10-03-1990",
			want:      intPtr(36),
		},
		{
			name:      "day-month-year with slashes",
			birthDate: "10/03/1990",
			want:      intPtr(36),
		},
		{
			name:      "year-month-day with slashes",
			birthDate: "1990/03/10",
			want:      intPtr(36),
		},
		{
			name:      "empty input",
			birthDate: "",
			want:      nil,
		},
		{
			name:      "unparseable input",
			birthDate: "next tuesday",
			want:      nil,
		},
		{
			name:      "future date",
			birthDate: "2030-01-01",
			want:      nil,
		},
		{
			name:      "implausibly old",
			birthDate: "1850-01-01",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateAge(tt.birthDate, now)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
