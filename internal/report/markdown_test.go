package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradekit/internal/market"
)

var reportTime = time.Date(2026, 8, 21, 8, 30, 0, 0, time.UTC)

func TestScanReport(t *testing.T) {
	candidates := []market.Candidate{
		{Ticker: "ABCD", PrePrice: 14.52, GapPct: 12.4, PreVolume: 5_120_000, AvgVolume: 2_000_000},
		{Ticker: "WXYZ", PrePrice: 3.85, GapPct: -8.2, PreVolume: 450_000},
	}

	out := ScanReport(candidates, "Pre-Market Scan", reportTime)

	assert.Contains(t, out, "# Pre-Market Scan")
	assert.Contains(t, out, "| 1 | **ABCD** | $14.52 | +12.4% | 5.1M | 2.0M |")
	assert.Contains(t, out, "| 2 | **WXYZ** | $3.85 | -8.2% | 450K | - |")
}

func TestScanReport_Empty(t *testing.T) {
	out := ScanReport(nil, "Pre-Market Scan", reportTime)
	assert.Contains(t, out, "No candidates found.")
}

func TestAnalysisReport(t *testing.T) {
	score := market.Score{Total: 72.5, Momentum: 80, Trend: 65, Volume: 70, Grade: "B"}
	levels := market.SRLevels{
		Resistance: []market.Level{{Price: 15.20, Strength: 3}},
		Support:    []market.Level{{Price: 13.80, Strength: 2}},
	}
	quote := &market.Quote{Name: "Alpha Beta Corp", Price: 14.52, Volume: 5_120_000, AvgVolume: 2_000_000}

	out := AnalysisReport("ABCD", score, levels, quote)

	assert.Contains(t, out, "## ABCD — Alpha Beta Corp")
	assert.Contains(t, out, "### Score: 72/100 (B)")
	assert.Contains(t, out, "- **R** $15.20 (strength: 3)")
	assert.Contains(t, out, "- **S** $13.80 (strength: 2)")
}

func TestDailyReport(t *testing.T) {
	candidates := []market.Candidate{
		{Ticker: "ABCD", PrePrice: 14.52, GapPct: 12.4, PreVolume: 5_120_000},
	}
	ranked := []market.RankedCandidate{
		{Rank: 1, Ticker: "ABCD", Score: market.Score{Total: 82, Momentum: 85, Trend: 80, Volume: 80, Grade: "A"}},
	}

	out := DailyReport(candidates, ranked, reportTime)

	assert.Contains(t, out, "# Daily Trading Report — 2026-08-21")
	assert.Contains(t, out, "## Ranked by Score")
	assert.Contains(t, out, "| 1 | **ABCD** | 82 | A | 85 | 80 | 80 |")
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveReport("# Test\n", dir, "", reportTime)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "report_20260821_0830.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Test\n", string(data))
}

func TestSaveReport_ExplicitFilename(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveReport("body", dir, "custom.md", reportTime)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "custom.md"))
}

func TestFmtVol(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "-"},
		{900, "900"},
		{450_000, "450K"},
		{5_120_000, "5.1M"},
		{1_000_000, "1.0M"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FmtVol(tc.in), "input %d", tc.in)
	}
}
