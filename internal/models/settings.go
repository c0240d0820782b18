// Package models contains data structures used across handlers
package models

import "time"

// ConsoleSettings is the read-only configuration shown on the settings page
type ConsoleSettings struct {
	Backend    string
	ReportsDir string
	Endpoint   string
	Bucket     string
	Locale     string
	Timezone   string
	ToastDelay time.Duration
	LogLevel   string
}

// StorageLocation describes where reports live for the configured backend
func (s ConsoleSettings) StorageLocation() string {
	if s.Backend == "minio" {
		return s.Endpoint + "/" + s.Bucket
	}
	return s.ReportsDir
}

// SeverityOption is one entry of the test notification form
type SeverityOption struct {
	Value string
	Label string
}
