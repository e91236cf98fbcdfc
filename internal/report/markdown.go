// Package report renders scan and analysis results as Markdown files,
// terminal tables and Slack alerts.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wonny/tradekit/internal/market"
)

// ScanReport renders scanner results as a Markdown document.
func ScanReport(candidates []market.Candidate, title string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	fmt.Fprintf(&b, "*Generated: %s*\n\n", now.Format("2006-01-02 03:04 PM ET"))

	if len(candidates) == 0 {
		b.WriteString("No candidates found.\n")
		return b.String()
	}

	b.WriteString("| # | Ticker | Price | Gap% | PreMkt Vol | Avg Vol |\n")
	b.WriteString("|---|--------|------:|-----:|-----------:|--------:|\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "| %d | **%s** | $%.2f | %+.1f%% | %s | %s |\n",
			i+1, c.Ticker, c.PrePrice, c.GapPct, FmtVol(c.PreVolume), FmtVol(c.AvgVolume))
	}
	return b.String()
}

// AnalysisReport renders a single-ticker analysis section.
func AnalysisReport(ticker string, score market.Score, levels market.SRLevels, quote *market.Quote) string {
	var b strings.Builder
	name := ""
	if quote != nil {
		name = quote.Name
	}
	fmt.Fprintf(&b, "## %s — %s\n\n", ticker, name)

	if quote != nil {
		fmt.Fprintf(&b, "**Price:** $%.2f  \n", quote.Price)
		fmt.Fprintf(&b, "**Volume:** %s (avg: %s)\n\n", FmtVol(quote.Volume), FmtVol(quote.AvgVolume))
	}

	fmt.Fprintf(&b, "### Score: %.0f/100 (%s)\n", score.Total, score.Grade)
	fmt.Fprintf(&b, "- Momentum: %.0f\n", score.Momentum)
	fmt.Fprintf(&b, "- Trend: %.0f\n", score.Trend)
	fmt.Fprintf(&b, "- Volume: %.0f\n\n", score.Volume)

	if len(levels.Resistance) > 0 || len(levels.Support) > 0 {
		b.WriteString("### Key Levels\n")
		for _, r := range capLevels(levels.Resistance, 3) {
			fmt.Fprintf(&b, "- **R** $%.2f (strength: %d)\n", r.Price, r.Strength)
		}
		for _, s := range capLevels(levels.Support, 3) {
			fmt.Fprintf(&b, "- **S** $%.2f (strength: %d)\n", s.Price, s.Strength)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DailyReport combines scan and ranking results into a daily document.
func DailyReport(candidates []market.Candidate, ranked []market.RankedCandidate, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Trading Report — %s\n\n", now.Format("2006-01-02"))
	b.WriteString(ScanReport(candidates, "Pre-Market Candidates", now))
	b.WriteString("\n")

	if len(ranked) > 0 {
		b.WriteString("## Ranked by Score\n\n")
		b.WriteString("| # | Ticker | Score | Grade | Momentum | Trend | Volume |\n")
		b.WriteString("|---|--------|------:|:-----:|---------:|------:|-------:|\n")
		for i, r := range ranked {
			fmt.Fprintf(&b, "| %d | **%s** | %.0f | %s | %.0f | %.0f | %.0f |\n",
				i+1, r.Ticker, r.Score.Total, r.Score.Grade,
				r.Score.Momentum, r.Score.Trend, r.Score.Volume)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// SaveReport writes a Markdown report under outputDir, creating the
// directory if needed. An empty filename derives one from the timestamp.
func SaveReport(content, outputDir, filename string, now time.Time) (string, error) {
	if outputDir == "" {
		outputDir = filepath.Join("reports", "output")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	if filename == "" {
		filename = fmt.Sprintf("report_%s.md", now.Format("20060102_1504"))
	}

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// FmtVol renders share volumes compactly: 1.2M, 450K, 900. Zero is "-".
func FmtVol(vol int64) string {
	switch {
	case vol == 0:
		return "-"
	case vol >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(vol)/1_000_000)
	case vol >= 1_000:
		return fmt.Sprintf("%.0fK", float64(vol)/1_000)
	default:
		return fmt.Sprintf("%d", vol)
	}
}

func capLevels(levels []market.Level, n int) []market.Level {
	if len(levels) > n {
		return levels[:n]
	}
	return levels
}
