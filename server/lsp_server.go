// Package server exposes outlines to editors over the language server
// protocol: textDocument/documentSymbol for the structured tree view,
// workspace/symbol backed by the index, and a custom outlinify/outline
// request for the legacy flat format.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/lexcodex/outlinify/index"
	"github.com/lexcodex/outlinify/outline"
	"github.com/lexcodex/outlinify/pos"
)

// Server implements the subset of LSP needed for outline features.
type Server struct {
	mu            sync.RWMutex
	openDocuments map[protocol.DocumentURI]*Document
	store         *index.Store
	logger        *log.Logger
	shutdown      bool
}

// Document tracks one open file from the editor.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Text    string
}

// NewServer builds a server. store may be nil, which disables
// workspace/symbol.
func NewServer(store *index.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "outlinify-lsp ", log.LstdFlags)
	}
	return &Server{
		openDocuments: make(map[protocol.DocumentURI]*Document),
		store:         store,
		logger:        logger,
	}
}

// LegacyOutlineParams is the request payload for outlinify/outline.
type LegacyOutlineParams struct {
	URI protocol.DocumentURI `json:"uri"`
}

// Handler adapts the server to a jsonrpc2 connection.
func (s *Server) Handler() jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(s.handle)
}

func (s *Server) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	s.mu.RLock()
	down := s.shutdown
	s.mu.RUnlock()
	if down && req.Method != "exit" {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: "server is shutting down"}
	}
	switch req.Method {
	case "initialize":
		return s.initialize()
	case "initialized":
		return nil, nil
	case "shutdown":
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		return nil, nil
	case "exit":
		_ = conn.Close()
		return nil, nil
	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		s.didOpen(params)
		return nil, nil
	case "textDocument/didChange":
		var params protocol.DidChangeTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		s.didChange(params)
		return nil, nil
	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		s.didClose(params)
		return nil, nil
	case "textDocument/documentSymbol":
		var params protocol.DocumentSymbolParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return s.documentSymbols(params.TextDocument.URI)
	case "workspace/symbol":
		var params protocol.WorkspaceSymbolParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return s.workspaceSymbols(params.Query)
	case "outlinify/outline":
		var params LegacyOutlineParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return s.legacyOutline(params.URI)
	default:
		if req.Notif {
			return nil, nil
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not supported: %s", req.Method)}
	}
}

func unmarshalParams(req *jsonrpc2.Request, out interface{}) error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "missing params"}
	}
	return json.Unmarshal(*req.Params, out)
}

func (s *Server) initialize() (*protocol.InitializeResult, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync:        protocol.TextDocumentSyncKindFull,
			DocumentSymbolProvider:  true,
			WorkspaceSymbolProvider: s.store != nil,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "outlinify",
			Version: "0.1.0",
		},
	}, nil
}

func (s *Server) didOpen(params protocol.DidOpenTextDocumentParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := params.TextDocument
	s.openDocuments[item.URI] = &Document{
		URI:     item.URI,
		Version: item.Version,
		Text:    item.Text,
	}
}

func (s *Server) didChange(params protocol.DidChangeTextDocumentParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.openDocuments[params.TextDocument.URI]
	if !ok {
		s.logger.Printf("didChange for untracked document %s", params.TextDocument.URI)
		return
	}
	// full sync: the last change carries the whole document
	for _, change := range params.ContentChanges {
		doc.Text = change.Text
	}
	doc.Version = params.TextDocument.Version
}

func (s *Server) didClose(params protocol.DidCloseTextDocumentParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.openDocuments, params.TextDocument.URI)
}

func (s *Server) documentText(uri protocol.DocumentURI) (string, error) {
	s.mu.RLock()
	if doc, ok := s.openDocuments[uri]; ok {
		s.mu.RUnlock()
		return doc.Text, nil
	}
	s.mu.RUnlock()
	data, err := os.ReadFile(pathFromURI(uri))
	if err != nil {
		return "", fmt.Errorf("document %s not open and not readable: %w", uri, err)
	}
	return string(data), nil
}

func (s *Server) documentSymbols(uri protocol.DocumentURI) ([]protocol.DocumentSymbol, error) {
	text, err := s.documentText(uri)
	if err != nil {
		return nil, err
	}
	defs := outline.FromSource(text)
	symbols := make([]protocol.DocumentSymbol, 0, len(defs))
	for _, d := range defs {
		symbols = append(symbols, documentSymbol(d))
	}
	return symbols, nil
}

func (s *Server) legacyOutline(uri protocol.DocumentURI) ([]outline.EntryJSON, error) {
	text, err := s.documentText(uri)
	if err != nil {
		return nil, err
	}
	return outline.LegacyJSON(outline.Flatten(outline.FromSource(text))), nil
}

func (s *Server) workspaceSymbols(query string) ([]protocol.SymbolInformation, error) {
	if s.store == nil {
		return nil, nil
	}
	records, err := s.store.Search(index.Query{NamePattern: query, Limit: 200})
	if err != nil {
		return nil, err
	}
	symbols := make([]protocol.SymbolInformation, 0, len(records))
	for _, rec := range records {
		name := rec.Name
		container := ""
		if i := strings.LastIndex(name, "::"); i >= 0 {
			container = name[:i]
			name = name[i+2:]
		}
		symbols = append(symbols, protocol.SymbolInformation{
			Name:          name,
			Kind:          legacySymbolKinds[rec.Kind],
			ContainerName: container,
			Location: protocol.Location{
				URI: uriFromPath(rec.Path),
				Range: rangeOf(pos.Span{
					LineStart: rec.Line,
					CharStart: rec.CharStart,
					LineEnd:   rec.Line,
					CharEnd:   rec.CharEnd,
				}),
			},
		})
	}
	return symbols, nil
}

// symbolKinds is the single Def-kind to LSP-kind table. LSP has no trait
// kind; traits surface as classes, matching the legacy flattener.
var symbolKinds = map[outline.Kind]protocol.SymbolKind{
	outline.KindFunction:  protocol.SymbolKindFunction,
	outline.KindClass:     protocol.SymbolKindClass,
	outline.KindMethod:    protocol.SymbolKindMethod,
	outline.KindProperty:  protocol.SymbolKindProperty,
	outline.KindConst:     protocol.SymbolKindConstant,
	outline.KindEnum:      protocol.SymbolKindEnum,
	outline.KindInterface: protocol.SymbolKindInterface,
	outline.KindTrait:     protocol.SymbolKindClass,
	outline.KindTypeconst: protocol.SymbolKindTypeParameter,
}

var legacySymbolKinds = map[string]protocol.SymbolKind{
	"function":      protocol.SymbolKindFunction,
	"class":         protocol.SymbolKindClass,
	"method":        protocol.SymbolKindMethod,
	"static method": protocol.SymbolKindMethod,
}

func documentSymbol(d outline.Def) protocol.DocumentSymbol {
	children := make([]protocol.DocumentSymbol, 0, len(d.Children))
	for _, child := range d.Children {
		children = append(children, documentSymbol(child))
	}
	labels := make([]string, 0, len(d.Modifiers))
	for _, m := range d.Modifiers {
		labels = append(labels, m.String())
	}
	return protocol.DocumentSymbol{
		Name:           d.Name,
		Detail:         strings.Join(labels, " "),
		Kind:           symbolKinds[d.Kind],
		Range:          rangeOf(d.Span),
		SelectionRange: rangeOf(d.Pos.AsSpan()),
		Children:       children,
	}
}

// rangeOf converts 1-based inclusive outline ranges to 0-based
// exclusive-end LSP ranges.
func rangeOf(s pos.Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(s.LineStart - 1), Character: uint32(s.CharStart - 1)},
		End:   protocol.Position{Line: uint32(s.LineEnd - 1), Character: uint32(s.CharEnd)},
	}
}

func uriFromPath(path string) protocol.DocumentURI {
	return protocol.DocumentURI("file://" + path)
}

func pathFromURI(uri protocol.DocumentURI) string {
	return strings.TrimPrefix(string(uri), "file://")
}

// ServeStdio runs the server over stdin/stdout until the connection drops.
func ServeStdio(ctx context.Context, s *Server) error {
	stream := jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, s.Handler())
	select {
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	case <-conn.DisconnectNotify():
		return nil
	}
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
