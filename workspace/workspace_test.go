package workspace

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/parseltongue/parseltongue/parser"
	"github.com/dhamidi/parseltongue/project"
)

func pathToURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func TestDiagnoseClean(t *testing.T) {
	diags := Diagnose("ok.pt", "def f(x):\n  return x\n")
	assert.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestDiagnoseSyntaxError(t *testing.T) {
	diags := Diagnose("bad.pt", "if x\n    pass\n")
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Contains(t, d.Message, ":")
	assert.Equal(t, protocol.UInteger(0), d.Range.Start.Line)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Source)
	assert.Equal(t, "parseltongue", *d.Source)
	require.NotNil(t, d.Code)
	assert.Equal(t, parser.KindSyntaxError, d.Code.Value)
}

func TestDiagnoseIndentationError(t *testing.T) {
	diags := Diagnose("bad.pt", "if x:\npass\n")
	require.Len(t, diags, 1)
	assert.Equal(t, parser.KindIndentationError, diags[0].Code.Value)
	assert.Equal(t, protocol.UInteger(1), diags[0].Range.Start.Line)
}

func TestDiagnoseLexerErrorUsesUTF16Columns(t *testing.T) {
	diags := Diagnose("bad.pt", "s = '😀' $\n")
	require.Len(t, diags, 1)
	r := diags[0].Range
	assert.Equal(t, protocol.Position{Line: 0, Character: 9}, r.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 10}, r.End)
}

func TestDiagnoseHonorsOptions(t *testing.T) {
	src := "if (n := 1):\n  pass\n"
	assert.Empty(t, Diagnose("a.pt", src))
	diags := Diagnose("a.pt", src, parser.WithTargetVersion(7))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "3.8")
}

func TestDocuments(t *testing.T) {
	docs := NewDocuments()
	uri := pathToURI("/tmp/a.pt")

	doc := docs.Open(uri, 1, "x = (\n")
	assert.Equal(t, filepath.FromSlash("/tmp/a.pt"), doc.Path)
	assert.Len(t, doc.Diagnostics, 1)

	doc = docs.Change(uri, 2, "x = 1\n")
	assert.Empty(t, doc.Diagnostics)

	// A late, older version does not replace a newer one.
	doc = docs.Change(uri, 1, "x = (\n")
	assert.Equal(t, int32(2), doc.Version)
	assert.Equal(t, "x = 1\n", doc.Text)

	got, ok := docs.Get(uri)
	require.True(t, ok)
	assert.Equal(t, "x = 1\n", got.Text)

	docs.Open(pathToURI("/tmp/b.pt"), 1, "")
	assert.Equal(t, []string{uri, pathToURI("/tmp/b.pt")}, docs.URIs())

	docs.Close(uri)
	_, ok = docs.Get(uri)
	assert.False(t, ok)
}

func TestDocumentsConcurrentUpdates(t *testing.T) {
	docs := NewDocuments()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			docs.Change("file:///c.pt", int32(i), "x = 1\n")
			docs.Get("file:///c.pt")
		}(i)
	}
	wg.Wait()
	doc, ok := docs.Get("file:///c.pt")
	require.True(t, ok)
	assert.Equal(t, int32(7), doc.Version)
}

type notification struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func newContext(notes *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			*notes = append(*notes, notification{method, params.(protocol.PublishDiagnosticsParams)})
		},
	}
}

func TestLSPServerPublishesDiagnostics(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "parseltongue.yaml"), []byte("target_version: 7\n"), 0644))

	var notes []notification
	ctx := newContext(&notes)
	ls := NewLSPServer("test")

	result, err := ls.initialize(ctx, &protocol.InitializeParams{RootPath: &root})
	require.NoError(t, err)
	info := result.(protocol.InitializeResult)
	assert.Equal(t, "parseltongue", info.ServerInfo.Name)
	require.NotNil(t, ls.Project)
	assert.Equal(t, root, ls.Project.RootDir)

	uri := pathToURI(filepath.Join(root, "a.pt"))
	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "parseltongue", Version: 1, Text: "if (n := 1):\n  pass\n"},
	}))
	require.Len(t, notes, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, notes[0].method)
	assert.Equal(t, uri, notes[0].params.URI)
	require.Len(t, notes[0].params.Diagnostics, 1)
	assert.Contains(t, notes[0].params.Diagnostics[0].Message, "3.8")

	require.NoError(t, ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "n = 1\n"}},
	}))
	require.Len(t, notes, 2)
	assert.Empty(t, notes[1].params.Diagnostics)
	require.NotNil(t, notes[1].params.Version)
	assert.Equal(t, protocol.UInteger(2), *notes[1].params.Version)

	text := "x = (\n"
	require.NoError(t, ls.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	}))
	require.Len(t, notes, 3)
	assert.Len(t, notes[2].params.Diagnostics, 1)

	require.NoError(t, ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, notes, 4)
	assert.Empty(t, notes[3].params.Diagnostics)
	assert.Empty(t, ls.Documents.URIs())
}

func waitForChange(t *testing.T, changes <-chan []string) []string {
	t.Helper()
	select {
	case paths := <-changes:
		return paths
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change")
		return nil
	}
}

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "parseltongue.yaml"), []byte("exclude: [\"skip_*.pt\"]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "existing.pt"), []byte("x = 1\n"), 0644))
	proj, err := project.LoadFrom(root)
	require.NoError(t, err)

	changes := make(chan []string, 8)
	w, err := ForProject(proj, func(paths []string) { changes <- paths })
	require.NoError(t, err)

	existing, err := w.AddTree(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "existing.pt")}, existing)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignored\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "skip_me.pt"), []byte("ignored\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.pt"), []byte("a = 1\n"), 0644))
	assert.Equal(t, []string{filepath.Join(root, "a.pt")}, waitForChange(t, changes))

	sub := filepath.Join(root, "pkg")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.pt"), []byte("b = 1\n"), 0644))
	assert.Contains(t, waitForChange(t, changes), filepath.Join(sub, "b.pt"))

	require.NoError(t, w.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestWatcherStopsWithContext(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()
	_, err = w.AddTree(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Run(ctx), context.Canceled)
}
