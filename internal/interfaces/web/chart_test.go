package web

import (
	"testing"

	"github.com/orgdesk/backend/internal/application/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginChart(t *testing.T) {
	t.Run("scales to the busiest day", func(t *testing.T) {
		chart := NewLoginChart([]audit.DailyLogins{
			{Day: "2026-10-14", Count: 0},
			{Day: "2026-10-15", Count: 5},
			{Day: "2026-10-16", Count: 10},
		})

		require.Len(t, chart.Bars, 3)
		assert.EqualValues(t, 15, chart.Total)
		assert.Zero(t, chart.Bars[0].Height)
		assert.Equal(t, 90, chart.Bars[1].Height)
		assert.Equal(t, 180, chart.Bars[2].Height)
		assert.Zero(t, chart.Bars[2].Y)
		assert.Equal(t, "10/16", chart.Bars[2].Label)
		assert.Less(t, chart.Bars[0].X, chart.Bars[1].X)
	})

	t.Run("no logins draws flat bars", func(t *testing.T) {
		chart := NewLoginChart([]audit.DailyLogins{{Day: "2026-10-16"}})
		require.Len(t, chart.Bars, 1)
		assert.Zero(t, chart.Bars[0].Height)
	})

	t.Run("empty input", func(t *testing.T) {
		chart := NewLoginChart(nil)
		assert.Empty(t, chart.Bars)
		assert.Equal(t, chartWidth, chart.Width)
	})
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "1/2", dayLabel("2026-01-02"))
	assert.Equal(t, "garbage", dayLabel("garbage"))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", initials("ada lovelace"))
	assert.Equal(t, "GM", initials("Grace M Hopper"))
	assert.Equal(t, "", initials("  "))
}
