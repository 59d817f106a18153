package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/config"
	"github.com/marcus/devsetup/internal/generator"
	"github.com/marcus/devsetup/internal/guide"
	"github.com/marcus/devsetup/internal/preview"
)

// FeatureResponse is a feature as offered for one framework.
type FeatureResponse struct {
	catalog.Feature
	Fragment string `json:"fragment"`
}

func (s *Server) handleListFrameworks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.gen.Catalog().Frameworks})
}

func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	cat := s.gen.Catalog()
	fw, err := cat.ParseFramework(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
		return
	}

	category := catalog.Category(strings.ToLower(r.URL.Query().Get("category")))
	if category != "" && !knownCategory(category) {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, "unknown category "+string(category))
		return
	}

	features := cat.FeaturesFor(fw, category)
	out := make([]FeatureResponse, 0, len(features))
	for _, f := range features {
		out = append(out, FeatureResponse{Feature: f, Fragment: cat.Fragment(fw, f.ID)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"framework": fw, "data": out})
}

func knownCategory(c catalog.Category) bool {
	for _, k := range catalog.Categories {
		if k == c {
			return true
		}
	}
	return false
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets := s.gen.Catalog().SearchPresets(r.URL.Query().Get("q"))
	if presets == nil {
		presets = []catalog.Preset{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": presets})
}

// GenerateRequest is the body of POST /v1/commands.
type GenerateRequest struct {
	Framework      string   `json:"framework"`
	Features       []string `json:"features"`
	ProjectName    string   `json:"project_name"`
	PackageManager string   `json:"package_manager"`
	Record         bool     `json:"record"`
}

// GenerateResponse carries the command and everything derived from it.
type GenerateResponse struct {
	Command     string              `json:"command"`
	PostInstall []string            `json:"post_install"`
	Docs        []catalog.DocLink   `json:"docs"`
	Unavailable []catalog.FeatureID `json:"unavailable,omitempty"`
	HistoryID   string              `json:"history_id,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return
	}

	fw, features, err := s.parseSelection(req.Framework, req.Features)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}
	pm, err := generator.ParsePackageManager(req.PackageManager)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}
	name := req.ProjectName
	if name == "" {
		name = config.DefaultProjectName
	}

	command := generator.ForPackageManager(s.gen.Command(name, fw, features), pm)
	resp := GenerateResponse{
		Command:     command,
		PostInstall: s.gen.PostInstallSteps(fw, features),
		Docs:        s.gen.DocumentationLinks(fw, features),
		Unavailable: s.gen.Catalog().Unavailable(fw, features),
	}
	if resp.PostInstall == nil {
		resp.PostInstall = []string{}
	}

	if req.Record {
		entry, err := s.history.Add(command, name, fw, features)
		if err != nil {
			logFor(r.Context()).Error("record history", "err", err)
			writeError(w, http.StatusInternalServerError, ErrCodeStorage, "failed to record history")
			return
		}
		resp.HistoryID = entry.ID
	}

	s.metrics.RecordCommand()
	writeJSON(w, http.StatusOK, resp)
}

// parseSelection validates a framework id and a feature list. Features may
// also arrive comma-separated in a single element, as from a query string.
func (s *Server) parseSelection(fw string, features []string) (catalog.FrameworkID, []catalog.FeatureID, error) {
	if fw == "" {
		return "", nil, errors.New("framework is required")
	}
	cat := s.gen.Catalog()
	id, err := cat.ParseFramework(fw)
	if err != nil {
		return "", nil, err
	}
	var raw []string
	for _, f := range features {
		raw = append(raw, strings.Split(f, ",")...)
	}
	ids, err := cat.ParseFeatures(raw)
	if err != nil {
		return "", nil, err
	}
	return id, ids, nil
}

// PreviewResponse is the file tree for a selection.
type PreviewResponse struct {
	Tree     *preview.Node `json:"tree"`
	Rendered string        `json:"rendered"`
	Files    int           `json:"files"`
	Dirs     int           `json:"dirs"`
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fw, features, err := s.parseSelection(q.Get("framework"), q["features"])
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}
	root := preview.Build(fw, features, q.Get("name"))
	files, dirs := preview.Count(root)
	writeJSON(w, http.StatusOK, PreviewResponse{
		Tree:     root,
		Rendered: preview.Render(root, nil),
		Files:    files,
		Dirs:     dirs,
	})
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fw, features, err := s.parseSelection(q.Get("framework"), q["features"])
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}
	pm, err := generator.ParsePackageManager(q.Get("pm"))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		return
	}
	name := q.Get("name")
	if name == "" {
		name = config.DefaultProjectName
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": guide.Steps(s.gen, fw, features, name, pm)})
}
