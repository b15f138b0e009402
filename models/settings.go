package models

// SettingsID is the fixed key of the single settings row. The store only
// ever upserts against this key, so a second row cannot appear.
const SettingsID = "default"

// AppSettings holds the optional issue-tracker credentials. At most one
// instance exists; reads return an empty shell when the row is absent.
type AppSettings struct {
	ID          string `json:"id" yaml:"id"`
	GitHubToken string `json:"githubToken,omitempty" yaml:"githubToken,omitempty"`
	GitHubOwner string `json:"githubOwner,omitempty" yaml:"githubOwner,omitempty"`
	GitHubRepo  string `json:"githubRepo,omitempty" yaml:"githubRepo,omitempty"`
}

// DefaultSettings returns the empty settings shell.
func DefaultSettings() AppSettings {
	return AppSettings{ID: SettingsID}
}

// HasGitHub reports whether all three tracker credentials are present.
func (s AppSettings) HasGitHub() bool {
	return s.GitHubToken != "" && s.GitHubOwner != "" && s.GitHubRepo != ""
}
