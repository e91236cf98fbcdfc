package commands

import (
	"fmt"
	"strings"
)

// Shared output helpers so every command prints the same way.

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println()
	fmt.Printf("⚠️  %s\n", message)
	fmt.Println()
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("ℹ️  %s\n", message)
}

// PrintHeader prints a section header
func PrintHeader(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("═", 59))
	fmt.Printf("  %s\n", title)
	fmt.Println(strings.Repeat("─", 59))
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println(strings.Repeat("─", 59))
}
