package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/marcus/devsetup/internal/stars"
)

// StarsResponse is one repository's count. Stars is null when the fetch failed.
type StarsResponse struct {
	Repo    string `json:"repo"`
	Stars   *int   `json:"stars"`
	Display string `json:"display"`
}

// maxStarRepos bounds the upstream fan-out of a single request.
const maxStarRepos = 10

// handleStars returns star counts for ?repo=owner/name (repeatable), or for
// every framework repository when none is given. Failures degrade to the
// placeholder rather than failing the request.
func (s *Server) handleStars(w http.ResponseWriter, r *http.Request) {
	var repos []string
	seen := map[string]bool{}
	for _, v := range r.URL.Query()["repo"] {
		for _, repo := range strings.Split(v, ",") {
			repo = strings.TrimSpace(repo)
			if repo == "" || seen[repo] {
				continue
			}
			if owner, name, ok := strings.Cut(repo, "/"); !ok || owner == "" || name == "" || strings.Contains(name, "/") {
				writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, "repo must be owner/name: "+repo)
				return
			}
			seen[repo] = true
			repos = append(repos, repo)
		}
	}
	if len(repos) > maxStarRepos {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidInput, fmt.Sprintf("at most %d repos per request", maxStarRepos))
		return
	}
	if len(repos) == 0 {
		for _, fw := range s.gen.Catalog().Frameworks {
			if fw.Repo != "" {
				repos = append(repos, fw.Repo)
			}
		}
	}

	results := s.stars.FetchAll(r.Context(), repos)
	out := make([]StarsResponse, 0, len(results))
	for _, res := range results {
		sr := StarsResponse{Repo: res.Repo, Display: res.Display()}
		if res.Err == nil {
			n := res.Stars
			sr.Stars = &n
		}
		out = append(out, sr)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out, "placeholder": stars.Placeholder})
}
