// Package ui serves a web playground that shows the Python rendering, the
// syntax tree and the token stream of Parseltongue source.
package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dhamidi/parseltongue/format"
	"github.com/dhamidi/parseltongue/parseltongue/lexer"
	"github.com/dhamidi/parseltongue/parseltongue/parser"
	"github.com/dhamidi/parseltongue/python/ast"
)

//go:embed templates
var embeddedFS embed.FS

// maxSourceSize bounds the request body of /transpile.
const maxSourceSize = 1 << 20

type Server struct {
	templates *template.Template
	mux       *http.ServeMux
	options   []parser.Option
}

// Request is the body of a JSON /transpile call.
type Request struct {
	Source string `json:"source"`
	// Mode is one of exec, eval, single or func_type. Empty means exec.
	Mode string `json:"mode,omitempty"`
}

// Result is everything the playground shows for one source.
type Result struct {
	Source string   `json:"source"`
	Mode   string   `json:"mode"`
	Python string   `json:"python,omitempty"`
	Dump   string   `json:"dump,omitempty"`
	Tokens string   `json:"tokens,omitempty"`
	Error  *Problem `json:"error,omitempty"`
}

// Problem locates a syntax error. Line and Column are 1-based.
type Problem struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// NewServer returns a playground parsing with opts.
func NewServer(opts ...parser.Option) (*Server, error) {
	funcMap := template.FuncMap{
		"modes": func() []string {
			return []string{
				string(parser.ModeExec),
				string(parser.ModeEval),
				string(parser.ModeSingle),
				string(parser.ModeFuncType),
			}
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: tmpl,
		mux:       http.NewServeMux(),
		options:   opts,
	}

	s.mux.HandleFunc("POST /transpile", s.handleTranspile)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", Result{Mode: string(parser.ModeExec)})
}

func (s *Server) handleTranspile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceSize)

	var req Request
	isJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
	if isJSON {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Source = r.FormValue("source")
		req.Mode = r.FormValue("mode")
	}

	switch parser.Mode(req.Mode) {
	case "":
		req.Mode = string(parser.ModeExec)
	case parser.ModeExec, parser.ModeEval, parser.ModeSingle, parser.ModeFuncType:
	default:
		http.Error(w, fmt.Sprintf("unknown mode %q", req.Mode), http.StatusBadRequest)
		return
	}

	res := s.Transpile(req)
	if !isJSON {
		s.render(w, "index.html", res)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if res.Error != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	json.NewEncoder(w).Encode(res)
}

// Transpile parses req.Source and fills in every view of it. A syntax
// error still leaves the tokens when tokenizing succeeded.
func (s *Server) Transpile(req Request) Result {
	res := Result{Source: req.Source, Mode: req.Mode}
	opts := append(append([]parser.Option{}, s.options...), parser.WithFile("<playground>"))

	if tokens, err := lexer.Tokenize(req.Source); err == nil {
		var buf bytes.Buffer
		if err := format.NewLineEncoder(&buf).Encode(tokens); err == nil {
			res.Tokens = buf.String()
		}
	}

	tree, err := parser.Parse(req.Source, parser.Mode(req.Mode), opts...)
	if err != nil {
		res.Error = problem(err)
		return res
	}
	res.Dump = ast.DumpWith(tree, ast.DumpOptions{Indent: "  "})
	python, err := format.Python(tree)
	if err != nil {
		res.Error = &Problem{Message: err.Error()}
		return res
	}
	res.Python = python
	return res
}

func problem(err error) *Problem {
	switch e := err.(type) {
	case *parser.SyntaxError:
		return &Problem{Line: e.Line, Column: e.Column, Message: e.Kind + ": " + e.Msg}
	case *parser.ParseError:
		return &Problem{Line: e.Token.Start.Line, Column: e.Token.Start.Column + 1, Message: e.Msg()}
	case *lexer.Error:
		return &Problem{Line: e.Line, Column: e.Column, Message: e.Msg}
	}
	return &Problem{Message: err.Error()}
}
