package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/lexcodex/outlinify/index"
	"github.com/lexcodex/outlinify/outline"
	"github.com/lexcodex/outlinify/pos"
)

func TestInitializeCapabilities(t *testing.T) {
	s := NewServer(nil, nil)
	result, err := s.initialize()
	require.NoError(t, err)
	require.True(t, result.Capabilities.DocumentSymbolProvider.(bool))
	require.False(t, result.Capabilities.WorkspaceSymbolProvider.(bool))
	require.Equal(t, "outlinify", result.ServerInfo.Name)
}

func TestDocumentSymbolsFromOpenDocument(t *testing.T) {
	s := NewServer(nil, nil)
	uri := protocol.DocumentURI("file:///tmp/sample.hack")
	s.didOpen(protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     uri,
			Version: 1,
			Text:    "trait MyTrait { protected static function foo(): int { return 4; } }",
		},
	})

	symbols, err := s.documentSymbols(uri)
	require.NoError(t, err)
	require.Len(t, symbols, 1)

	trait := symbols[0]
	require.Equal(t, "MyTrait", trait.Name)
	require.Equal(t, protocol.SymbolKindClass, trait.Kind)
	// 1-based inclusive columns 7-13 become 0-based [6, 13)
	require.Equal(t, uint32(6), trait.SelectionRange.Start.Character)
	require.Equal(t, uint32(13), trait.SelectionRange.End.Character)
	require.Len(t, trait.Children, 1)
	require.Equal(t, "foo", trait.Children[0].Name)
	require.Equal(t, protocol.SymbolKindMethod, trait.Children[0].Kind)
	require.Equal(t, "protected static", trait.Children[0].Detail)
}

func TestDidChangeReplacesText(t *testing.T) {
	s := NewServer(nil, nil)
	uri := protocol.DocumentURI("file:///tmp/sample.hack")
	s.didOpen(protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "function old(): void {}"},
	})
	s.didChange(protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: "function fresh(): void {}"},
		},
	})

	symbols, err := s.documentSymbols(uri)
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	require.Equal(t, "fresh", symbols[0].Name)
}

func TestLegacyOutlineRequest(t *testing.T) {
	s := NewServer(nil, nil)
	uri := protocol.DocumentURI("file:///tmp/a.hack")
	s.didOpen(protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:  uri,
			Text: "class A { public static function b(): void {} }",
		},
	})
	entries, err := s.legacyOutline(uri)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "A", entries[0].Name)
	require.Equal(t, "class", entries[0].Type)
	require.Equal(t, "A::b", entries[1].Name)
	require.Equal(t, "static method", entries[1].Type)
}

func TestWorkspaceSymbols(t *testing.T) {
	store, err := index.Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.SaveOutline("/ws/a.hack", "h", []outline.Entry{
		{Pos: pos.Pos{Line: 2, CharStart: 19, CharEnd: 21}, Name: "A::run", Kind: "method"},
	}))

	s := NewServer(store, nil)
	symbols, err := s.workspaceSymbols("run")
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	require.Equal(t, "run", symbols[0].Name)
	require.Equal(t, "A", symbols[0].ContainerName)
	require.Equal(t, protocol.DocumentURI("file:///ws/a.hack"), symbols[0].Location.URI)
	require.Equal(t, uint32(1), symbols[0].Location.Range.Start.Line)
}
