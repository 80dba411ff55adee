package discord

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/WagerBot_Go/internal/domain"
)

var (
	printer    = message.NewPrinter(language.English)
	titleCaser = cases.Title(language.English)
	upperCaser = cases.Upper(language.English)
)

// formatNumber groups thousands: 1234567 -> 1,234,567
func formatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// plural appends "s" to noun unless n is exactly one
func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// regionName renders a region code the way players type it
func regionName(id string) string {
	return upperCaser.String(id)
}

// metricTitle renders a leaderboard metric for embed titles
func metricTitle(m domain.LeaderboardMetric) string {
	return titleCaser.String(string(m))
}

// placingLines numbers standings: "1. amy - **150**"
func placingLines(standings []domain.Standing, prefix string) string {
	if len(standings) == 0 {
		return "_Empty_."
	}
	lines := make([]string, len(standings))
	for i, st := range standings {
		lines[i] = fmt.Sprintf("%d. %s - **%s%s**", i+1, st.UserID, prefix, formatNumber(st.Value))
	}
	return strings.Join(lines, "\n")
}
