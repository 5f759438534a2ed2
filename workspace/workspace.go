// Package workspace tracks the C files of a project as parsed translation
// units and serves them to editors over LSP.
package workspace

import (
	"context"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/comment"
	"github.com/dhamidi/csonar/clang/completion"
	"github.com/dhamidi/csonar/clang/sonar"
	"github.com/dhamidi/csonar/clang/treesitter"
)

var log = commonlog.GetLogger("csonar.workspace")

// ErrUnknownDocument is returned for paths the workspace does not track.
var ErrUnknownDocument = errors.New("unknown document")

// Workspace is a registry of parsed files keyed by path.
type Workspace struct {
	mu     sync.RWMutex
	root   string
	parser *treesitter.Parser
	units  map[string]*Unit
}

// Unit is one tracked file. Its translation unit is only reached through
// Use, which serializes access.
type Unit struct {
	mu      sync.Mutex
	path    string
	version int32
	content []byte
	tu      *treesitter.TranslationUnit
}

// New returns an empty workspace rooted at root. A nil parser means
// treesitter.NewParser().
func New(root string, parser *treesitter.Parser) *Workspace {
	if parser == nil {
		parser = treesitter.NewParser()
	}
	return &Workspace{
		root:   root,
		parser: parser,
		units:  make(map[string]*Unit),
	}
}

func (w *Workspace) Root() string {
	return w.root
}

// ScanAll parses every file d discovers. Files that fail to parse are
// logged and skipped; it returns the number of files tracked.
func (w *Workspace) ScanAll(ctx context.Context, d *Discovery) (int, error) {
	files, err := d.Discover()
	if err != nil {
		return 0, errors.Wrapf(err, "discover files under %s", d.Root())
	}
	n := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := w.ScanFile(ctx, path); err != nil {
			log.Warningf("skip %s: %s", path, err)
			continue
		}
		n++
	}
	log.Infof("scanned %d of %d files under %s", n, len(files), d.Root())
	return n, nil
}

// ScanFile reads path from disk and tracks it.
func (w *Workspace) ScanFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	return w.UpdateFile(ctx, path, content)
}

// UpdateFile parses content as path and replaces any earlier version. The
// unit keeps the document version of its last versioned update.
func (w *Workspace) UpdateFile(ctx context.Context, path string, content []byte) error {
	tu, err := w.parser.Parse(ctx, path, content)
	if err != nil {
		return err
	}
	w.store(path, content, tu, func(u *Unit) bool { return true })
	return nil
}

// UpdateVersion is UpdateFile for an editor document at version. Updates
// older than the unit's version are dropped, also when their parse finishes
// after a newer one; it reports whether content was stored.
func (w *Workspace) UpdateVersion(ctx context.Context, path string, version int32, content []byte) (bool, error) {
	if u, err := w.Unit(path); err == nil && u.Version() > version {
		return false, nil
	}
	tu, err := w.parser.Parse(ctx, path, content)
	if err != nil {
		return false, err
	}
	stored := w.store(path, content, tu, func(u *Unit) bool {
		if u.version > version {
			return false
		}
		u.version = version
		return true
	})
	if !stored {
		log.Debugf("drop stale version %d of %s", version, path)
	}
	return stored, nil
}

// ResetVersion forgets the document version of path, so the next versioned
// update is stored whatever its version.
func (w *Workspace) ResetVersion(path string) {
	if u, err := w.Unit(path); err == nil {
		u.mu.Lock()
		u.version = 0
		u.mu.Unlock()
	}
}

// store installs tu for path. accept is called with the unit locked and
// can only refuse units that are already tracked.
func (w *Workspace) store(path string, content []byte, tu *treesitter.TranslationUnit, accept func(*Unit) bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	u, ok := w.units[path]
	if !ok {
		u = &Unit{path: path}
		w.units[path] = u
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if !accept(u) && ok {
		return false
	}
	u.content, u.tu = content, tu
	return true
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.units, path)
}

// Paths returns the tracked paths in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.units))
	for p := range w.units {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Unit returns the tracked file at path.
func (w *Workspace) Unit(path string) (*Unit, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	u, ok := w.units[path]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDocument, "%s", path)
	}
	return u, nil
}

func (u *Unit) Path() string {
	return u.path
}

// Version returns the document version of the unit's last versioned update.
func (u *Unit) Version() int32 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.version
}

// Use calls fn with the unit's current translation unit while holding the
// unit's lock.
func (u *Unit) Use(fn func(tu *treesitter.TranslationUnit) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(u.tu)
}

// Content returns the source the unit was last parsed from.
func (u *Unit) Content() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.content
}

// Report scans the declarations of path. System-header entities are left
// out unless system is set.
func (w *Workspace) Report(path string, system bool) (sonar.Report, error) {
	u, err := w.Unit(path)
	if err != nil {
		return sonar.Report{}, err
	}
	var report sonar.Report
	err = u.Use(func(tu *treesitter.TranslationUnit) error {
		entities := tu.Entities()
		if !system {
			entities = sonar.UserEntities(entities)
		}
		report = sonar.Scan(entities)
		return nil
	})
	return report, err
}

// Diagnostics returns the syntax errors of path.
func (w *Workspace) Diagnostics(path string) ([]clang.Diagnostic, error) {
	u, err := w.Unit(path)
	if err != nil {
		return nil, err
	}
	var diags []clang.Diagnostic
	err = u.Use(func(tu *treesitter.TranslationUnit) error {
		diags = tu.Diagnostics()
		return nil
	})
	return diags, err
}

// Completions is the outcome of Complete.
type Completions struct {
	// Results is the decoded completion request.
	Results *completion.Results
	// Items holds the proposals matching Prefix, best first.
	Items  []completion.Result
	Prefix string
}

// Complete proposes completions at line:column (1-based, byte column) in
// path.
func (w *Workspace) Complete(path string, line, column int) (*Completions, error) {
	u, err := w.Unit(path)
	if err != nil {
		return nil, err
	}
	var out *Completions
	err = u.Use(func(tu *treesitter.TranslationUnit) error {
		c := tu.CompleteAt(line, column)
		results := completion.Decode(c)
		items := completion.Filter(slices.Clone(results.All()), c.Prefix())
		completion.Sort(items)
		out = &Completions{Results: results, Items: items, Prefix: c.Prefix()}
		return nil
	})
	return out, err
}

// Hover describes the entity named under a position.
type Hover struct {
	Name   string
	Entity clang.Entity
	Doc    *comment.Document
}

// Markdown renders the entity's type and documentation.
func (h *Hover) Markdown() string {
	md := "```c\n" + signature(h.Name, h.Entity) + "\n```"
	if h.Doc != nil {
		if body := comment.Markdown(h.Doc.Children); body != "" {
			md += "\n\n" + body
		}
	}
	return md
}

func signature(name string, e clang.Entity) string {
	switch e.Kind() {
	case clang.EntityMacroDefinition:
		// the first token is the macro name
		s := "#define"
		for _, t := range e.Tokens() {
			s += " " + t.Spelling()
		}
		return s
	case clang.EntityStructDecl:
		return "struct " + name
	case clang.EntityUnionDecl:
		return "union " + name
	case clang.EntityEnumDecl:
		return "enum " + name
	case clang.EntityTypedefDecl:
		if t := e.TypedefUnderlyingType(); t != nil {
			return "typedef " + t.Spelling() + " " + name
		}
	case clang.EntityFunctionDecl:
		if t := e.Type(); t != nil {
			sp := t.Spelling()
			if i := strings.Index(sp, "("); i >= 0 {
				return strings.TrimSpace(sp[:i]) + " " + name + sp[i:]
			}
		}
	}
	if t := e.Type(); t != nil {
		return t.Spelling() + " " + name
	}
	return name
}

// Hover finds the identifier at line:column in path and looks it up, first
// in path and then in every other tracked file. It returns nil when the
// position is not on an identifier or the identifier is not declared.
func (w *Workspace) Hover(path string, line, column int) (*Hover, error) {
	u, err := w.Unit(path)
	if err != nil {
		return nil, err
	}
	name := wordAt(u.Content(), line, column)
	if name == "" {
		return nil, nil
	}

	e := lookup(u, name)
	if e == nil {
		for _, p := range w.Paths() {
			if p == path {
				continue
			}
			other, err := w.Unit(p)
			if err != nil {
				continue
			}
			if e = lookup(other, name); e != nil {
				break
			}
		}
	}
	if e == nil {
		return nil, nil
	}
	doc, err := comment.ParseEntity(e)
	if err != nil {
		return nil, errors.Wrapf(err, "comment of %s", name)
	}
	return &Hover{Name: name, Entity: e, Doc: doc}, nil
}

// lookup finds a top-level entity, field or enumerator named name,
// preferring definitions.
func lookup(u *Unit, name string) clang.Entity {
	var found clang.Entity
	_ = u.Use(func(tu *treesitter.TranslationUnit) error {
		for _, e := range tu.Entities() {
			candidates := append([]clang.Entity{e}, e.Children()...)
			for _, c := range candidates {
				if c.Kind() == clang.EntityParmDecl {
					continue
				}
				if n, ok := c.Name(); ok && n == name {
					if found == nil || isDefinition(c) && !isDefinition(found) {
						found = c
					}
				}
			}
		}
		return nil
	})
	return found
}

func isDefinition(e clang.Entity) bool {
	d, ok := e.(interface{ IsDefinition() bool })
	return ok && d.IsDefinition()
}

// wordAt returns the identifier around the 1-based line and byte column.
func wordAt(src []byte, line, column int) string {
	start := 0
	for l := 1; l < line; l++ {
		i := slices.Index(src[start:], '\n')
		if i < 0 {
			return ""
		}
		start += i + 1
	}
	end := start
	for end < len(src) && src[end] != '\n' {
		end++
	}
	text := src[start:end]
	off := column - 1
	if off < 0 || off > len(text) {
		return ""
	}
	from, to := off, off
	for from > 0 && isIdent(text[from-1]) {
		from--
	}
	for to < len(text) && isIdent(text[to]) {
		to++
	}
	if from == to || text[from] >= '0' && text[from] <= '9' {
		return ""
	}
	return string(text[from:to])
}

func isIdent(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}
