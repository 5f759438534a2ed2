package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Dir is the directory, relative to the project root, holding config.yaml.
const Dir = ".csonar"

// Loader loads configuration for one project root.
type Loader struct {
	root string
}

// NewLoader returns a Loader for rootDir.
func NewLoader(rootDir string) *Loader {
	return &Loader{root: rootDir}
}

// Load merges, lowest priority first, the defaults, .csonar/config.yaml and
// CSONAR_* environment variables, then validates the result.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(l.root, Dir))

	v.SetEnvPrefix("CSONAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("clang.path", d.Clang.Path)
	v.SetDefault("clang.index_test", d.Clang.IndexTest)
	v.SetDefault("clang.args", d.Clang.Args)
	v.SetDefault("frontend", d.Frontend)
	v.SetDefault("sonar.system_headers", d.Sonar.SystemHeaders)
	v.SetDefault("sonar.system_dirs", d.Sonar.SystemDirs)
	v.SetDefault("sonar.include", d.Sonar.Include)
	v.SetDefault("sonar.exclude", d.Sonar.Exclude)
	v.SetDefault("log.verbosity", d.Log.Verbosity)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("output.format", d.Output.Format)
}

// LoadConfig loads the configuration of the current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "get working directory")
	}
	return NewLoader(wd).Load()
}
