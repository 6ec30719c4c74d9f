package main

// Default limits for CLI commands.
const (
	DefaultListLimit = 50
)

// Output formats.
var (
	validOutputFormats = []string{"text", "json"}
	validExportFormats = []string{"json", "yaml"}
	validImportFormats = []string{"auto", "json", "yaml", "csv"}
)

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
