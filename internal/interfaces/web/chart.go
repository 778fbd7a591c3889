package web

import (
	"time"

	"github.com/orgdesk/backend/internal/application/audit"
)

// SVG geometry of the login chart
const (
	chartWidth  = 700
	chartHeight = 200
	chartBottom = 20
	barGap      = 8
)

// Bar is one day of the login chart in SVG coordinates
type Bar struct {
	X, Y, Width, Height int
	Label               string
	Count               int64
}

// Chart is a bar chart of daily logins
type Chart struct {
	Width, Height int
	Bars          []Bar
	Total         int64
}

// NewLoginChart lays out one bar per day, scaled to the busiest day
func NewLoginChart(days []audit.DailyLogins) Chart {
	chart := Chart{Width: chartWidth, Height: chartHeight}
	if len(days) == 0 {
		return chart
	}

	var peak int64
	for _, d := range days {
		chart.Total += d.Count
		if d.Count > peak {
			peak = d.Count
		}
	}

	slot := chartWidth / len(days)
	usable := chartHeight - chartBottom
	for i, d := range days {
		h := 0
		if peak > 0 {
			h = int(d.Count * int64(usable) / peak)
		}
		chart.Bars = append(chart.Bars, Bar{
			X:      i*slot + barGap/2,
			Y:      usable - h,
			Width:  slot - barGap,
			Height: h,
			Label:  dayLabel(d.Day),
			Count:  d.Count,
		})
	}
	return chart
}

// dayLabel shortens 2026-10-16 to 10/16
func dayLabel(day string) string {
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return day
	}
	return t.Format("1/2")
}
