// Package svgserver provides the HTTP live-preview server for triton: a
// textarea-and-preview page that re-renders a sequence diagram as it is
// edited.
package svgserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/axelerator/triton/pkg/triton"
)

// Config holds server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server for triton's live preview.
type Server struct {
	config Config
	mux    *http.ServeMux
}

// New creates a new Server with the given config.
func New(cfg Config) *Server {
	s := &Server{config: cfg, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /render", s.handleRender)
	s.mux.HandleFunc("GET /svg/{encoded...}", s.handleSVG)
	s.mux.HandleFunc("GET /", s.handleEditor)
	return s
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if err := triton.Validate(strings.NewReader(body)); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		te, _ := err.(*triton.Error)
		resp := errorResponse{Errors: []errorDetail{detailOf(te, err)}}
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := triton.Render(strings.NewReader(body), w); err != nil {
		http.Error(w, fmt.Sprintf("render error: %s", err), http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	encoded := r.PathValue("encoded")
	if encoded == "" {
		http.Error(w, "missing encoded diagram", http.StatusBadRequest)
		return
	}
	text, err := decodeShareLink(encoded)
	if err != nil {
		http.Error(w, fmt.Sprintf("decode error: %s", err), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := triton.Render(strings.NewReader(text), w); err != nil {
		http.Error(w, fmt.Sprintf("render error: %s", err), http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(editorPage))
}

func readBody(r *http.Request) (string, error) {
	var sb strings.Builder
	_, err := sb.ReadFrom(r.Body)
	return sb.String(), err
}

func detailOf(te *triton.Error, fallback error) errorDetail {
	if te == nil {
		return errorDetail{Message: fallback.Error()}
	}
	return errorDetail{Line: te.Pos.Line, Column: te.Pos.Column, Message: te.Error()}
}

type errorResponse struct {
	Errors []errorDetail `json:"errors"`
}

type errorDetail struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// editorPage is a minimal textarea-and-preview page: it posts the textarea
// contents to /render and swaps in the returned SVG, falling back to the
// error text on a 400.
const editorPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>triton</title></head>
<body>
<textarea id="src" rows="20" cols="60">Alice->Bob: hi
Bob-->Alice: hi back</textarea>
<div id="out"></div>
<script>
const src = document.getElementById("src");
const out = document.getElementById("out");
async function render() {
  const resp = await fetch("/render", {method: "POST", body: src.value});
  if (resp.ok) {
    out.innerHTML = await resp.text();
  } else {
    const body = await resp.json();
    out.textContent = body.errors.map(e => e.line + ":" + e.column + ": " + e.message).join("\n");
  }
}
src.addEventListener("input", render);
render();
</script>
</body>
</html>
`
