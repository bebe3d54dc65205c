package main

// Default values for CLI commands.
const (
	DefaultSummaryDays = 7
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
)

// Valid output formats.
var validFormats = []string{formatText, formatJSON}
