package report

import (
	"fmt"
	"strings"
)

// DefaultOutputPattern names the workbook; %s is replaced by the timestamp.
const DefaultOutputPattern = "BrokenLinks_Testing_Report_%s.xlsx"

// Entry pairs a CSV filename prefix with the sheet it becomes.
type Entry struct {
	Prefix string `toml:"prefix"`
	Sheet  string `toml:"sheet"`
}

// Set is an ordered list of report entries. Order is sheet order.
type Set []Entry

// Source is an Entry resolved against one timestamp.
type Source struct {
	File  string
	Sheet string
}

// DefaultSet returns the seven reports produced by the link-testing run.
func DefaultSet() Set {
	return Set{
		{Prefix: "00_Master_Import_Guide", Sheet: "Master Import Guide"},
		{Prefix: "01_Summary_Dashboard", Sheet: "Summary Dashboard"},
		{Prefix: "02_All_Links_Catalog", Sheet: "All Links Catalog"},
		{Prefix: "03_Menu_Navigation", Sheet: "Menu Navigation"},
		{Prefix: "04_Broken_Links_Details", Sheet: "Broken Links Details"},
		{Prefix: "05_Test_Results", Sheet: "Test Results"},
		{Prefix: "06_Recommendations", Sheet: "Recommendations"},
	}
}

// Resolve substitutes the timestamp into every entry's filename.
// The timestamp is used as given.
func (s Set) Resolve(timestamp string) []Source {
	sources := make([]Source, 0, len(s))
	for _, entry := range s {
		sources = append(sources, Source{
			File:  fmt.Sprintf("%s_%s.csv", entry.Prefix, timestamp),
			Sheet: entry.Sheet,
		})
	}
	return sources
}

// OutputName builds the workbook filename for a timestamp. Patterns without
// a %s verb get the timestamp appended before the extension.
func OutputName(pattern, timestamp string) string {
	if pattern == "" {
		pattern = DefaultOutputPattern
	}
	if strings.Contains(pattern, "%s") {
		return strings.Replace(pattern, "%s", timestamp, 1)
	}
	base := strings.TrimSuffix(pattern, ".xlsx")
	return base + "_" + timestamp + ".xlsx"
}
