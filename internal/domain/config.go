package domain

import "time"

// Config mirrors ~/.opsctl/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	API                 APISettings     `yaml:"api"`
	History             HistorySettings `yaml:"history"`
	Monitor             MonitorSettings `yaml:"monitor"`
	Preferences         Preferences     `yaml:"preferences"`
}

// APISettings configures the backend connection and its timeout tiers.
// Metadata endpoints get a short deadline so a slow backend never stalls
// non-critical lookups; reasoning calls get a long one.
type APISettings struct {
	BaseURL                string `yaml:"base_url"`
	TimeoutSeconds         int    `yaml:"timeout"`
	MetadataTimeoutSeconds int    `yaml:"metadata_timeout"`
	AuthTimeoutSeconds     int    `yaml:"auth_timeout"`
	ForecastTimeoutSeconds int    `yaml:"forecast_timeout"`
	ExecuteTimeoutSeconds  int    `yaml:"execute_timeout"`
}

// Timeout returns the general request deadline.
func (a APISettings) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// MetadataTimeout returns the deadline for non-critical metadata calls.
func (a APISettings) MetadataTimeout() time.Duration {
	return time.Duration(a.MetadataTimeoutSeconds) * time.Second
}

// AuthTimeout returns the deadline for auth calls.
func (a APISettings) AuthTimeout() time.Duration {
	return time.Duration(a.AuthTimeoutSeconds) * time.Second
}

// ForecastTimeout returns the deadline for forecasting calls.
func (a APISettings) ForecastTimeout() time.Duration {
	return time.Duration(a.ForecastTimeoutSeconds) * time.Second
}

// ExecuteTimeout returns the deadline for tool and workflow execution.
func (a APISettings) ExecuteTimeout() time.Duration {
	return time.Duration(a.ExecuteTimeoutSeconds) * time.Second
}

// HistorySettings selects and bounds the execution-history backend.
type HistorySettings struct {
	Backend    string `yaml:"backend"`
	MaxEntries int    `yaml:"max_entries"`
}

// MonitorSettings controls document-status polling.
type MonitorSettings struct {
	PollIntervalSeconds int `yaml:"poll_interval"`
	WarnAfterSeconds    int `yaml:"warn_after"`
}

// PollInterval returns the cadence between status checks.
func (m MonitorSettings) PollInterval() time.Duration {
	return time.Duration(m.PollIntervalSeconds) * time.Second
}

// WarnAfter returns how long processing may run before the monitor flags it
// as taking longer than expected. Zero disables the warning.
func (m MonitorSettings) WarnAfter() time.Duration {
	return time.Duration(m.WarnAfterSeconds) * time.Second
}

// Preferences captures user-level toggles.
type Preferences struct {
	DefaultSessionID string `yaml:"default_session_id"`
	DefaultUser      string `yaml:"default_user"`
	DocumentType     string `yaml:"document_type"`
	Color            string `yaml:"color"`
}
