package workspace

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/csonar/clang"
	"github.com/dhamidi/csonar/clang/completion"
	"github.com/dhamidi/csonar/clang/sonar"
	"github.com/dhamidi/csonar/clang/treesitter"
)

const lsName = "csonar"

// LSPServer answers completion, hover and document-symbol requests for the
// files of one workspace.
type LSPServer struct {
	ws       *Workspace
	newDisco func(root string) (*Discovery, error)
	handler  protocol.Handler
	server   *server.Server
	version  string
}

// NewLSPServer returns a server whose workspace is created on initialize.
// discovery selects the files scanned under the client's root; when nil,
// only opened documents are tracked.
func NewLSPServer(version string, parser *treesitter.Parser, discovery func(root string) (*Discovery, error)) *LSPServer {
	ls := &LSPServer{
		version:  version,
		newDisco: discovery,
		ws:       New(".", parser),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentCompletion:     ls.textDocumentCompletion,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

// Workspace returns the files the server currently tracks.
func (ls *LSPServer) Workspace() *Workspace {
	return ls.ws
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	if abs, err := filepath.Abs(rootDir); err == nil {
		rootDir = abs
	}

	ls.ws = New(rootDir, ls.ws.parser)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{".", ">"},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if ls.newDisco == nil {
		return nil
	}
	d, err := ls.newDisco(ls.ws.Root())
	if err != nil {
		log.Errorf("discovery: %s", err)
		return nil
	}
	go func() {
		if _, err := ls.ws.ScanAll(context.Background(), d); err != nil {
			log.Errorf("scan %s: %s", d.Root(), err)
		}
	}()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.ws.ResetVersion(path)
	ls.update(ctx, params.TextDocument.URI, path, int32(params.TextDocument.Version), []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}

	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, path, int32(params.TextDocument.Version), []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	if path, err := uriToPath(params.TextDocument.URI); err == nil {
		ls.ws.ResetVersion(path)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}

	if params.Text != nil {
		err := ls.ws.UpdateFile(context.Background(), path, []byte(*params.Text))
		ls.publish(ctx, params.TextDocument.URI, path, err)
	} else if err := ls.ws.ScanFile(context.Background(), path); err != nil {
		log.Warningf("rescan %s: %s", path, err)
	}
	return nil
}

// update reparses version of a document and publishes its syntax errors.
// Stale versions are dropped without publishing.
func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, path string, version int32, content []byte) {
	stored, err := ls.ws.UpdateVersion(context.Background(), path, version, content)
	if !stored && err == nil {
		return
	}
	ls.publish(ctx, uri, path, err)
}

// publish sends the diagnostics of path unless parsing it failed with err.
func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, path string, err error) {
	if err != nil {
		log.Warningf("parse %s: %s", path, err)
		return
	}
	diags, err := ls.ws.Diagnostics(path)
	if err != nil || ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toProtocolDiagnostics(diags),
	})
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	col := int(params.Position.Character) + 1
	c, err := ls.ws.Complete(path, line, col)
	if err != nil {
		log.Debugf("completion: %s", err)
		return nil, nil
	}
	return completionItems(c.Items), nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	h, err := ls.ws.Hover(path, int(params.Position.Line)+1, int(params.Position.Character)+1)
	if err != nil {
		log.Debugf("hover: %s", err)
		return nil, nil
	}
	if h == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: h.Markdown(),
		},
	}, nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	report, err := ls.ws.Report(path, true)
	if err != nil {
		log.Debugf("document symbols: %s", err)
		return []protocol.DocumentSymbol{}, nil
	}
	return documentSymbols(report), nil
}

func completionItems(results []completion.Result) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(results))
	for i, r := range results {
		s := r.String
		chunks, err := s.Chunks()
		if err != nil {
			log.Debugf("skip completion %q: %s", s.Label(), err)
			continue
		}
		kind := toProtocolKind(r.Kind)
		detail := resultType(chunks)
		insertText := snippet(chunks)
		format := protocol.InsertTextFormatSnippet
		sortText := fmt.Sprintf("%05d", i)
		item := protocol.CompletionItem{
			Label:            s.Label(),
			Kind:             &kind,
			InsertText:       &insertText,
			InsertTextFormat: &format,
			SortText:         &sortText,
		}
		if detail != "" {
			item.Detail = &detail
		}
		if brief, ok := s.BriefComment(); ok {
			item.Documentation = brief
		}
		if s.Availability() == clang.Deprecated {
			item.Tags = []protocol.CompletionItemTag{protocol.CompletionItemTagDeprecated}
		}
		items = append(items, item)
	}
	return items
}

func resultType(chunks []completion.Chunk) string {
	for _, c := range chunks {
		if c.Kind == clang.ChunkResultType {
			return c.Text
		}
	}
	return ""
}

// snippet renders chunks as an LSP snippet with one tab stop per
// placeholder. Optional chunks are left out.
func snippet(chunks []completion.Chunk) string {
	var sb strings.Builder
	stop := 0
	for _, c := range chunks {
		switch c.Kind {
		case clang.ChunkInformative, clang.ChunkResultType, clang.ChunkOptional:
		case clang.ChunkPlaceholder, clang.ChunkCurrentParameter:
			stop++
			fmt.Fprintf(&sb, "${%d:%s}", stop, escapeSnippet(c.Text))
		case clang.ChunkHorizontalSpace:
			sb.WriteString(" ")
		case clang.ChunkVerticalSpace:
			sb.WriteString("\n")
		default:
			sb.WriteString(escapeSnippet(c.Text))
		}
	}
	return sb.String()
}

var snippetEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

func escapeSnippet(s string) string {
	return snippetEscaper.Replace(s)
}

func toProtocolKind(kind clang.EntityKind) protocol.CompletionItemKind {
	switch kind {
	case clang.EntityFunctionDecl:
		return protocol.CompletionItemKindFunction
	case clang.EntityFieldDecl:
		return protocol.CompletionItemKindField
	case clang.EntityVarDecl, clang.EntityParmDecl:
		return protocol.CompletionItemKindVariable
	case clang.EntityEnumConstantDecl:
		return protocol.CompletionItemKindEnumMember
	case clang.EntityStructDecl, clang.EntityUnionDecl:
		return protocol.CompletionItemKindStruct
	case clang.EntityEnumDecl:
		return protocol.CompletionItemKindEnum
	case clang.EntityTypedefDecl:
		return protocol.CompletionItemKindClass
	case clang.EntityMacroDefinition:
		return protocol.CompletionItemKindConstant
	default:
		return protocol.CompletionItemKindText
	}
}

func documentSymbols(r sonar.Report) []protocol.DocumentSymbol {
	symbols := make([]protocol.DocumentSymbol, 0, r.Len())
	for _, d := range r.Definitions {
		value := d.Value.String()
		sym := entitySymbol(d.Name, protocol.SymbolKindConstant, d.Entity)
		sym.Detail = &value
		symbols = append(symbols, sym)
	}
	families := []struct {
		kind  protocol.SymbolKind
		decls []sonar.Declaration
	}{
		{protocol.SymbolKindEnum, r.Enums},
		{protocol.SymbolKindStruct, r.Structs},
		{protocol.SymbolKindStruct, r.Unions},
		{protocol.SymbolKindFunction, r.Functions},
		{protocol.SymbolKindClass, r.Typedefs},
	}
	for _, f := range families {
		for _, d := range f.decls {
			sym := entitySymbol(d.Name, f.kind, d.Entity)
			if t := d.Entity.Type(); t != nil && f.kind == protocol.SymbolKindFunction {
				detail := t.Spelling()
				sym.Detail = &detail
			}
			sym.Children = memberSymbols(d.Entity)
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func memberSymbols(e clang.Entity) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, c := range e.Children() {
		name, ok := c.Name()
		if !ok {
			continue
		}
		switch c.Kind() {
		case clang.EntityFieldDecl:
			out = append(out, entitySymbol(name, protocol.SymbolKindField, c))
		case clang.EntityEnumConstantDecl:
			out = append(out, entitySymbol(name, protocol.SymbolKindEnumMember, c))
		}
	}
	return out
}

// entitySymbol ranges over the entity's name at its location.
func entitySymbol(name string, kind protocol.SymbolKind, e clang.Entity) protocol.DocumentSymbol {
	loc := e.Location()
	start := protocol.Position{
		Line:      uint32(max(loc.Line-1, 0)),
		Character: uint32(max(loc.Column-1, 0)),
	}
	end := start
	end.Character += uint32(len(name))
	rng := protocol.Range{Start: start, End: end}
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          rng,
		SelectionRange: rng,
	}
}

func toProtocolDiagnostics(diags []clang.Diagnostic) []protocol.Diagnostic {
	source := lsName
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := toProtocolSeverity(d.Severity)
		pos := protocol.Position{
			Line:      uint32(max(d.Location.Line-1, 0)),
			Character: uint32(max(d.Location.Column-1, 0)),
		}
		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

func toProtocolSeverity(s clang.Severity) protocol.DiagnosticSeverity {
	switch s {
	case clang.SeverityError, clang.SeverityFatal:
		return protocol.DiagnosticSeverityError
	case clang.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
