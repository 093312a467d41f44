// Package web serves a read-only browser view of the User and System PATH.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"pathedit/internal/audit"
	"pathedit/internal/docs"
	"pathedit/internal/logging"
	"pathedit/internal/model"
	"pathedit/internal/pathlist"
	"pathedit/internal/registry"
)

//go:embed static/*
var staticFS embed.FS

// Server answers read-only queries about the registry PATH values. Every
// request reads the registry afresh.
type Server struct {
	gateway  *registry.Gateway
	analyzer *audit.Analyzer
	logger   zerolog.Logger
}

// NewServer returns a Server reading through gateway.
func NewServer(gateway *registry.Gateway, lookup pathlist.LookupFunc) *Server {
	return &Server{
		gateway:  gateway,
		analyzer: audit.NewAnalyzer(lookup),
		logger:   logging.GetLogger("web"),
	}
}

// Handler routes the static page and the JSON API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	subFS, _ := fs.Sub(staticFS, "static")
	mux.Handle("/", http.FileServer(http.FS(subFS)))

	mux.HandleFunc("/api/paths", s.handlePaths)
	mux.HandleFunc("/api/ls", s.handleLs)
	mux.HandleFunc("/api/which", s.handleWhich)
	mux.HandleFunc("/api/help", handleHelp)
	return mux
}

// ListenAndServe blocks serving on localhost:port.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf("localhost:%d", port)
	fmt.Printf("Starting pathedit web server at http://%s\n", addr)
	fmt.Printf("Go to http://%s in your browser.\n", addr)
	s.logger.Info().Str("addr", addr).Msg("Web server listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) analyze() model.AnalysisResult {
	return s.analyzer.AnalyzeSession(s.gateway.Snapshot(model.ScopeUser), s.gateway.Snapshot(model.ScopeSystem))
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	result := s.analyze()

	response := struct {
		model.AnalysisResult
		Report        string `json:"Report"`
		VerboseReport string `json:"VerboseReport"`
		Version       string `json:"Version"`
	}{
		AnalysisResult: result,
		Report:         audit.GenerateReport(result, false),
		VerboseReport:  audit.GenerateReport(result, true),
		Version:        model.Version,
	}
	writeJSON(w, response)
}

// LsEntry is one file of a listed PATH directory.
type LsEntry struct {
	Name       string `json:"Name"`
	IsDir      bool   `json:"IsDir"`
	Executable bool   `json:"Executable"`
	Size       int64  `json:"Size"`
	ModTime    string `json:"ModTime"`
}

// handleLs lists a directory that is on PATH. Directories not on PATH are
// refused so the endpoint cannot browse the whole disk.
func (s *Server) handleLs(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	result := s.analyze()
	onPath := false
	for _, e := range result.PathEntries {
		if e.Value == path || e.Expanded == path {
			path, onPath = e.Expanded, true
			break
		}
	}
	if !onPath {
		http.Error(w, "not a PATH entry", http.StatusForbidden)
		return
	}

	files, err := os.ReadDir(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	entries := []LsEntry{}
	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			continue
		}
		entries = append(entries, LsEntry{
			Name:       f.Name(),
			IsDir:      f.IsDir(),
			Executable: !f.IsDir() && model.IsExecutableName(f.Name()),
			Size:       info.Size(),
			ModTime:    info.ModTime().Format("Jan 02 15:04"),
		})
	}
	writeJSON(w, entries)
}

// WhichMatch is the first executable matching a query in one PATH entry.
type WhichMatch struct {
	Index       int    `json:"Index"`
	Scope       string `json:"Scope"`
	MatchedFile string `json:"MatchedFile"`
}

// handleWhich finds executables whose name starts with the query, in PATH
// search order. The first match is the one Windows would run.
func (s *Server) handleWhich(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("query"))
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	result := s.analyze()
	matches := []WhichMatch{}
	for i, entry := range result.PathEntries {
		if entry.IsDuplicate || !entry.Dir.IsDir {
			continue
		}
		files, err := os.ReadDir(entry.Expanded)
		if err != nil {
			continue
		}

		var matched string
		for _, f := range files {
			if f.IsDir() || !model.IsExecutableName(f.Name()) {
				continue
			}
			name := strings.ToLower(f.Name())
			if !strings.HasPrefix(name, query) {
				continue
			}
			if matched == "" {
				matched = f.Name()
			}
			if strings.TrimSuffix(name, filepath.Ext(name)) == query {
				matched = f.Name()
				break
			}
		}
		if matched != "" {
			matches = append(matches, WhichMatch{Index: i, Scope: entry.Scope.String(), MatchedFile: matched})
		}
	}
	writeJSON(w, matches)
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown")
	w.Write([]byte(docs.Help()))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
