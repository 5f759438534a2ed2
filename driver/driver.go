// Package driver runs the external clang tools csonar reads from: clang for
// JSON AST dumps and c-index-test for code completion.
package driver

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/csonar/clang/astdump"
	"github.com/dhamidi/csonar/clang/ccomplete"
)

var log = commonlog.GetLogger("csonar.driver")

// ErrNotFound is returned when a tool binary cannot be located.
var ErrNotFound = errors.New("tool not found")

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 30 * time.Second

// Driver invokes clang and c-index-test with a shared set of compiler
// arguments.
type Driver struct {
	Clang      string
	IndexTest  string
	Args       []string
	SystemDirs []string
	Timeout    time.Duration
}

// New returns a Driver using the given binaries and compiler arguments,
// written as one shell-quoted string.
func New(clang, indexTest, args string) (*Driver, error) {
	split, err := ParseArgs(args)
	if err != nil {
		return nil, err
	}
	return &Driver{Clang: clang, IndexTest: indexTest, Args: split, Timeout: DefaultTimeout}, nil
}

// ParseArgs splits a shell-quoted argument string.
func ParseArgs(s string) ([]string, error) {
	args, err := shellquote.Split(s)
	if err != nil {
		return nil, errors.Wrapf(err, "parse compiler arguments %q", s)
	}
	return args, nil
}

// DumpArgs returns the clang arguments that dump the AST of file as JSON.
func (d *Driver) DumpArgs(file string) []string {
	args := []string{"-Xclang", "-ast-dump=json", "-fsyntax-only", "-fparse-all-comments"}
	args = append(args, d.Args...)
	return append(args, file)
}

// CompleteArgs returns the c-index-test arguments that complete at
// file:line:column.
func (d *Driver) CompleteArgs(file string, line, column int) []string {
	at := "-code-completion-at=" + file + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)
	args := []string{at, file}
	return append(args, d.Args...)
}

// DumpAST runs clang on file and decodes the dump.
func (d *Driver) DumpAST(ctx context.Context, file string) (*astdump.TranslationUnit, error) {
	stdout, stderr, err := d.run(ctx, d.Clang, d.DumpArgs(file), nil)
	if err != nil && len(stdout) == 0 {
		return nil, d.failure(err, d.Clang, stderr)
	}
	decoder := astdump.NewDecoder()
	if d.SystemDirs != nil {
		decoder.SystemDirs = d.SystemDirs
	}
	tu, decodeErr := decoder.Decode(bytes.NewReader(stdout))
	if decodeErr != nil {
		return nil, errors.Wrapf(decodeErr, "dump %s", file)
	}
	return tu, nil
}

// Complete runs c-index-test at file:line:column. Brief comments are
// requested from the tool.
func (d *Driver) Complete(ctx context.Context, file string, line, column int) (*ccomplete.Results, error) {
	env := []string{"CINDEXTEST_COMPLETION_BRIEF_COMMENTS=1"}
	stdout, stderr, err := d.run(ctx, d.IndexTest, d.CompleteArgs(file, line, column), env)
	if err != nil && len(stdout) == 0 {
		return nil, d.failure(err, d.IndexTest, stderr)
	}
	results, parseErr := ccomplete.Parse(bytes.NewReader(stdout), bytes.NewReader(stderr))
	if parseErr != nil {
		return nil, errors.Wrapf(parseErr, "complete %s:%d:%d", file, line, column)
	}
	return results, nil
}

func (d *Driver) run(ctx context.Context, bin string, args, env []string) ([]byte, []byte, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, nil, errors.Mark(errors.Wrapf(err, "look up %s", bin), ErrNotFound)
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	log.Debugf("ran %s %v in %s", path, args, time.Since(start))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, stderr.Bytes(), errors.Wrapf(ctxErr, "run %s", bin)
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

func (d *Driver) failure(err error, bin string, stderr []byte) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if msg := bytes.TrimSpace(stderr); len(msg) > 0 {
		return errors.Wrapf(err, "%s: %s", bin, msg)
	}
	return errors.Wrapf(err, "run %s", bin)
}
