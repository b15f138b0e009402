package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	GitHub  GitHubConfig  `mapstructure:"github" validate:"omitempty"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir" validate:"required"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	// File is the SQLite database file name inside rootDir,
	// or ":memory:" for an ephemeral board.
	File string `mapstructure:"file" validate:"required"`
}

// GitHubConfig carries fallback tracker credentials. Values stored in the
// settings row win; config only fills the gaps.
type GitHubConfig struct {
	Token string `mapstructure:"token"`
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`
}
