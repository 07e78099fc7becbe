package workspace

import (
	"sort"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/parseltongue/parseltongue/parser"
)

// Document is a snapshot of an open editor buffer.
type Document struct {
	URI         string
	Path        string
	Version     int32
	Text        string
	Diagnostics []protocol.Diagnostic
}

// Documents is the table of open documents. Every update re-parses the
// text and stores its diagnostics.
type Documents struct {
	mu      sync.RWMutex
	docs    map[string]*Document
	options []parser.Option
}

func NewDocuments(opts ...parser.Option) *Documents {
	return &Documents{
		docs:    make(map[string]*Document),
		options: opts,
	}
}

// SetOptions replaces the parser options used for later updates.
func (d *Documents) SetOptions(opts ...parser.Option) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.options = opts
}

// Open adds a document, replacing any previous one with the same URI.
func (d *Documents) Open(uri string, version int32, text string) Document {
	return d.update(uri, version, text)
}

// Change replaces the text of a document. Unknown URIs are opened.
func (d *Documents) Change(uri string, version int32, text string) Document {
	return d.update(uri, version, text)
}

func (d *Documents) update(uri string, version int32, text string) Document {
	path := uriToPath(uri)

	d.mu.RLock()
	opts := d.options
	d.mu.RUnlock()

	doc := &Document{
		URI:         uri,
		Path:        path,
		Version:     version,
		Text:        text,
		Diagnostics: Diagnose(path, text, opts...),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	// Parsing happens outside the lock; a newer version may have landed.
	if prev, ok := d.docs[uri]; ok && prev.Version > version {
		return *prev
	}
	d.docs[uri] = doc
	return *doc
}

// Close forgets a document.
func (d *Documents) Close(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, uri)
}

func (d *Documents) Get(uri string) (Document, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, ok := d.docs[uri]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// URIs lists the open documents in sorted order.
func (d *Documents) URIs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	uris := make([]string, 0, len(d.docs))
	for uri := range d.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}
