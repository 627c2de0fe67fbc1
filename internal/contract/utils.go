package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Lead-time label constants. The hour bins (24/72/168) follow the delivery
// categories the report consumers expect.
const (
	FastValue     = "Fast"     // merged within a day
	ModerateValue = "Moderate" // merged within three days
	SlowValue     = "Slow"     // merged within a week
	CriticalValue = "Critical" // a week or longer
)

// Color variables for console output.
var (
	FastColor     = color.New(color.FgCyan)                // fast is informational
	ModerateColor = color.New(color.FgYellow)              // moderate is standard caution, not bold
	SlowColor     = color.New(color.FgMagenta, color.Bold) // slow is a strong, distinct warning
	CriticalColor = color.New(color.FgRed, color.Bold)     // critical is standard danger
)

// GetPlainLabel returns a plain text label classifying a lead time in hours.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(hours float64) string {
	switch {
	case hours < 24:
		return FastValue
	case hours < 72:
		return ModerateValue
	case hours < 168:
		return SlowValue
	default:
		return CriticalValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(hours float64) string {
	text := GetPlainLabel(hours)

	switch text {
	case FastValue:
		return FastColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case SlowValue:
		return SlowColor.Sprint(text)
	default: // "Critical"
		return CriticalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateTitle shortens a PR title to fit the given width, appending an
// ellipsis when cut.
func TruncateTitle(title string, maxWidth int) string {
	if maxWidth <= 0 || len(title) <= maxWidth {
		return title
	}
	if maxWidth <= 3 {
		return title[:maxWidth]
	}
	return title[:maxWidth-3] + "..."
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}
