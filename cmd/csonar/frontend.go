package main

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/completion"
	"github.com/dhamidi/csonar/clang/treesitter"
	"github.com/dhamidi/csonar/config"
	"github.com/dhamidi/csonar/driver"
	"github.com/dhamidi/csonar/workspace"
)

// frontend reads C files into entities and completion results, either
// in-process with tree-sitter or through the clang tools.
type frontend struct {
	cfg    *config.Config
	parser *treesitter.Parser
	driver *driver.Driver
}

func newFrontend(cfg *config.Config) (*frontend, error) {
	f := &frontend{cfg: cfg}
	switch cfg.Frontend {
	case "astdump":
		d, err := driver.New(cfg.Clang.Path, cfg.Clang.IndexTest, cfg.Clang.Args)
		if err != nil {
			return nil, err
		}
		d.SystemDirs = cfg.Sonar.SystemDirs
		f.driver = d
	default:
		f.parser = newParser(cfg)
	}
	return f, nil
}

func newParser(cfg *config.Config) *treesitter.Parser {
	p := treesitter.NewParser()
	p.SystemDirs = cfg.Sonar.SystemDirs
	return p
}

func newDiscovery(cfg *config.Config, root string) (*workspace.Discovery, error) {
	return workspace.NewDiscovery(root, cfg.Sonar.Include, cfg.Sonar.Exclude)
}

// entities returns the top-level entities of file.
func (f *frontend) entities(ctx context.Context, file string) ([]clang.Entity, error) {
	if f.driver != nil {
		tu, err := f.driver.DumpAST(ctx, file)
		if err != nil {
			return nil, toolHint(err)
		}
		return tu.Entities(), nil
	}
	tu, err := f.parser.ParseFile(ctx, file)
	if err != nil {
		return nil, err
	}
	return tu.Entities(), nil
}

// complete runs code completion at file:line:column.
func (f *frontend) complete(ctx context.Context, file string, line, column int) (*completion.Results, error) {
	if f.driver != nil {
		results, err := f.driver.Complete(ctx, file, line, column)
		if err != nil {
			return nil, toolHint(err)
		}
		return completion.Decode(results), nil
	}
	tu, err := f.parser.ParseFile(ctx, file)
	if err != nil {
		return nil, err
	}
	return completion.Decode(tu.CompleteAt(line, column)), nil
}

func toolHint(err error) error {
	if errors.Is(err, driver.ErrNotFound) {
		return errors.WithHint(err, "install clang and c-index-test, set clang.path and clang.index_test, or use --frontend treesitter")
	}
	return err
}
