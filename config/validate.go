package config

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"

	"github.com/dhamidi/csonar/driver"
)

// ErrInvalidConfig marks every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks cfg and reports every problem in one error.
func Validate(cfg *Config) error {
	var problems []string
	if !slices.Contains(Frontends, cfg.Frontend) {
		problems = append(problems, "frontend must be one of "+strings.Join(Frontends, ", ")+", got "+quote(cfg.Frontend))
	}
	if !slices.Contains(Formats, cfg.Output.Format) {
		problems = append(problems, "output.format must be one of "+strings.Join(Formats, ", ")+", got "+quote(cfg.Output.Format))
	}
	if strings.TrimSpace(cfg.Clang.Path) == "" {
		problems = append(problems, "clang.path is required")
	}
	if strings.TrimSpace(cfg.Clang.IndexTest) == "" {
		problems = append(problems, "clang.index_test is required")
	}
	if _, err := driver.ParseArgs(cfg.Clang.Args); err != nil {
		problems = append(problems, "clang.args: "+err.Error())
	}
	for _, pattern := range append(slices.Clone(cfg.Sonar.Include), cfg.Sonar.Exclude...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			problems = append(problems, "bad glob "+quote(pattern)+": "+err.Error())
		}
	}
	if cfg.Log.Verbosity < 0 {
		problems = append(problems, "log.verbosity cannot be negative")
	}

	switch len(problems) {
	case 0:
		return nil
	case 1:
		return errors.Mark(errors.Newf("invalid configuration: %s", problems[0]), ErrInvalidConfig)
	default:
		return errors.Mark(errors.Newf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - ")), ErrInvalidConfig)
	}
}

func quote(s string) string {
	return "'" + s + "'"
}
