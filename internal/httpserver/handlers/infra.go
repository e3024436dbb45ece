package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/MrSnakeDoc/favtube/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Backend   string `json:"backend,omitempty"`
	Favorites *int   `json:"favorites,omitempty"`
	Dirty     *bool  `json:"dirty,omitempty"`
	LastSave  string `json:"last_save,omitempty"`
	File      string `json:"file,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store":  storeStatus(d),
			"import": importStatus(d),
		}
		if d.StorePing != nil {
			components["backend"] = checkBackend(r.Context(), d)
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

// determineMode is "degraded" when the latest change is not persisted or
// the backend does not answer.
func determineMode(components map[string]componentStatus) string {
	for _, name := range []string{"store", "backend"} {
		if c, exists := components[name]; exists && !c.OK {
			return "degraded"
		}
	}
	return "ok"
}

func storeStatus(d deps.Deps) componentStatus {
	st := d.Favorites.Status()

	lastSave := "never"
	if !st.LastSave.IsZero() {
		lastSave = st.LastSave.Format("2006-01-02 15:04:05")
	}

	cs := componentStatus{
		OK:        !st.Dirty,
		Backend:   st.Store,
		Favorites: &st.Count,
		Dirty:     &st.Dirty,
		LastSave:  lastSave,
	}
	if st.LastError != nil {
		cs.Error = st.LastError.Error()
	}
	return cs
}

func importStatus(d deps.Deps) componentStatus {
	if d.ImportFile == "" {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	return componentStatus{OK: true, Mode: "enabled", File: d.ImportFile}
}

func checkBackend(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.StorePing(ctx); err != nil {
		return componentStatus{OK: false, Mode: "unreachable", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "reachable"}
}
