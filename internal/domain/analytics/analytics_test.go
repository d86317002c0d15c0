package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodStart(t *testing.T) {
	// 2026-03-31 20:00 UTC is already 1 April in Jakarta.
	now := time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		period Period
		want   time.Time
	}{
		{PeriodWeek, now.Add(-7 * 24 * time.Hour)},
		{PeriodQuarter, now.Add(-90 * 24 * time.Hour)},
		{PeriodMonth, time.Date(2026, 3, 31, 17, 0, 0, 0, time.UTC)},
		{"", time.Date(2026, 3, 31, 17, 0, 0, 0, time.UTC)},
		{PeriodYear, time.Date(2025, 12, 31, 17, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, err := tt.period.Start(now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}

	_, err := Period("decade").Start(now)
	assert.Error(t, err)
}
