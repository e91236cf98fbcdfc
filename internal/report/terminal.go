package report

import (
	"fmt"
	"strings"

	"github.com/wonny/tradekit/internal/market"
)

// PrintScanResults prints scanner results as a fixed-width table.
func PrintScanResults(candidates []market.Candidate, title string) {
	if len(candidates) == 0 {
		fmt.Printf("%s: No results found.\n", title)
		return
	}

	fmt.Println()
	fmt.Printf("  %s\n", title)
	printSeparator(76)

	widths := []int{3, 8, 20, 9, 8, 10, 10}
	printTableHeader([]string{"#", "Ticker", "Name", "Price", "Gap%", "PreMktVol", "AvgVol"}, widths)

	for i, c := range candidates {
		name := c.Name
		if len(name) > 20 {
			name = name[:20]
		}
		printTableRow([]string{
			fmt.Sprintf("%d", i+1),
			c.Ticker,
			name,
			fmt.Sprintf("$%.2f", c.PrePrice),
			fmt.Sprintf("%+.1f%%", c.GapPct),
			FmtVol(c.PreVolume),
			FmtVol(c.AvgVolume),
		}, widths)
	}
	fmt.Println()
}

// PrintAnalysis prints a single-ticker analysis block.
func PrintAnalysis(ticker string, score market.Score, levels market.SRLevels, quote *market.Quote) {
	fmt.Println()
	fmt.Printf("═══ %s Analysis ═══\n", ticker)
	fmt.Println()

	if quote != nil {
		changePct := 0.0
		if quote.PrevClose != 0 {
			changePct = (quote.Price - quote.PrevClose) / quote.PrevClose * 100
		}
		fmt.Printf("  Price: $%.2f (%+.1f%%)\n", quote.Price, changePct)
		fmt.Printf("  Volume: %s  Avg: %s\n", FmtVol(quote.Volume), FmtVol(quote.AvgVolume))
		fmt.Println()
	}

	fmt.Printf("  Score: %.0f/100 (%s)\n", score.Total, score.Grade)
	fmt.Printf("    Momentum: %.0f  Trend: %.0f  Volume: %.0f\n",
		score.Momentum, score.Trend, score.Volume)
	fmt.Println()

	if len(levels.Resistance) > 0 {
		fmt.Printf("  Resistance: %s\n", levelLine(capLevels(levels.Resistance, 3)))
	}
	if len(levels.Support) > 0 {
		fmt.Printf("  Support:    %s\n", levelLine(capLevels(levels.Support, 3)))
	}
	fmt.Println()
}

// PrintRankedResults prints scored tickers as a fixed-width table.
func PrintRankedResults(ranked []market.RankedCandidate, title string) {
	if len(ranked) == 0 {
		fmt.Printf("%s: No results.\n", title)
		return
	}

	fmt.Println()
	fmt.Printf("  %s\n", title)
	printSeparator(58)

	widths := []int{3, 8, 9, 6, 5, 5, 5, 5}
	printTableHeader([]string{"#", "Ticker", "Price", "Score", "Grade", "Mom", "Trend", "Vol"}, widths)

	for _, r := range ranked {
		printTableRow([]string{
			fmt.Sprintf("%d", r.Rank),
			r.Ticker,
			fmt.Sprintf("$%.2f", r.Price),
			fmt.Sprintf("%.0f", r.Score.Total),
			r.Score.Grade,
			fmt.Sprintf("%.0f", r.Score.Momentum),
			fmt.Sprintf("%.0f", r.Score.Trend),
			fmt.Sprintf("%.0f", r.Score.Volume),
		}, widths)
	}
	fmt.Println()
}

// PrintPivots prints pivot point levels.
func PrintPivots(ticker string, p market.PivotPoints) {
	fmt.Println()
	fmt.Printf("  %s Pivot Points\n", ticker)
	printSeparator(28)
	fmt.Printf("  R3 : $%.2f\n", p.R3)
	fmt.Printf("  R2 : $%.2f\n", p.R2)
	fmt.Printf("  R1 : $%.2f\n", p.R1)
	fmt.Printf("  P  : $%.2f\n", p.Pivot)
	fmt.Printf("  S1 : $%.2f\n", p.S1)
	fmt.Printf("  S2 : $%.2f\n", p.S2)
	fmt.Printf("  S3 : $%.2f\n", p.S3)
	fmt.Println()
}

func levelLine(levels []market.Level) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprintf("$%.2f(%d)", l.Price, l.Strength)
	}
	return strings.Join(parts, "  ")
}

func printSeparator(width int) {
	fmt.Println(strings.Repeat("─", width))
}

func printTableHeader(columns []string, widths []int) {
	printTableRow(columns, widths)
	total := 0
	for i, w := range widths {
		total += w
		if i < len(widths)-1 {
			total += 2
		}
	}
	printSeparator(total)
}

func printTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}
