// Package config loads csonar's settings from defaults, an optional
// .csonar/config.yaml and CSONAR_* environment variables.
package config

// Config is the complete csonar configuration.
type Config struct {
	Clang    ClangConfig  `yaml:"clang" mapstructure:"clang"`
	Frontend string       `yaml:"frontend" mapstructure:"frontend"` // "treesitter" or "astdump"
	Sonar    SonarConfig  `yaml:"sonar" mapstructure:"sonar"`
	Log      LogConfig    `yaml:"log" mapstructure:"log"`
	Output   OutputConfig `yaml:"output" mapstructure:"output"`
}

// ClangConfig locates the clang tools and the arguments passed to them.
type ClangConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	IndexTest string `yaml:"index_test" mapstructure:"index_test"`
	Args      string `yaml:"args" mapstructure:"args"` // shell-quoted
}

// SonarConfig selects the files and declarations that are scanned.
type SonarConfig struct {
	SystemHeaders bool     `yaml:"system_headers" mapstructure:"system_headers"`
	SystemDirs    []string `yaml:"system_dirs" mapstructure:"system_dirs"`
	Include       []string `yaml:"include" mapstructure:"include"` // glob patterns
	Exclude       []string `yaml:"exclude" mapstructure:"exclude"` // glob patterns
}

// LogConfig configures the commonlog backend.
type LogConfig struct {
	Verbosity int    `yaml:"verbosity" mapstructure:"verbosity"`
	File      string `yaml:"file" mapstructure:"file"`
}

// OutputConfig selects the default encoder.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "json", "line" or "markdown"
}

// Frontends and formats accepted by Validate.
var (
	Frontends = []string{"treesitter", "astdump"}
	Formats   = []string{"json", "line", "markdown"}
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Clang: ClangConfig{
			Path:      "clang",
			IndexTest: "c-index-test",
		},
		Frontend: "treesitter",
		Sonar: SonarConfig{
			SystemDirs: []string{"/usr/include", "/usr/local/include"},
			Include:    []string{"**/*.h", "**/*.c"},
			Exclude:    []string{"**/.git/**", "**/build/**"},
		},
		Output: OutputConfig{Format: "line"},
	}
}
