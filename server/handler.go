// handler.go implements the JSON endpoints.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/propchat/propchat/applog"
)

type chatRequest struct {
	Question        string `json:"question"`
	Model           string `json:"model,omitempty"`
	PreserveHistory *bool  `json:"preserve_history,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// pipeline resolves the model key ("" means the default model).
func (s *Server) pipeline(key string) (Pipeline, string, bool) {
	if key == "" {
		key = s.cfg.DefaultModel
	}
	p, ok := s.pipelines[key]
	return p, key, ok
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "no question provided")
		return
	}

	p, key, ok := s.pipeline(req.Model)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown model "+req.Model)
		return
	}

	preserve := true
	if req.PreserveHistory != nil {
		preserve = *req.PreserveHistory
	}

	applog.Event("http", "chat model=%s question=%q", key, req.Question)
	writeJSON(w, http.StatusOK, p.Ask(r.Context(), req.Question, preserve))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model string `json:"model,omitempty"`
	}
	// Body is optional; an empty body resets the default model.
	_ = json.NewDecoder(r.Body).Decode(&req)

	p, key, ok := s.pipeline(req.Model)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown model "+req.Model)
		return
	}
	p.ResetHistory()
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "success", "message": "chat history reset for " + key,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.pipeline(r.URL.Query().Get("model"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown model "+r.URL.Query().Get("model"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": p.History()})
}

func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	models := make(map[string]string, len(s.cfg.Models))
	for key, m := range s.cfg.Models {
		models[key] = m.DisplayName
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"models":  models,
		"default": s.cfg.DefaultModel,
	})
}

func (s *Server) handleTenants(w http.ResponseWriter, _ *http.Request) {
	tenants := make(map[string]string, len(s.cfg.Tenants))
	for key, t := range s.cfg.Tenants {
		tenants[key] = t.DisplayName
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"default": s.cfg.DefaultTenant,
	})
}

func (s *Server) handleSetTenant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tenant string `json:"tenant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tenant, err := s.cfg.Tenant(req.Tenant)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Rebind every model's session; changes apply from the next turn.
	for _, p := range s.pipelines {
		p.SetTenant(tenant.ID)
	}
	applog.Event("http", "tenant set to %s", req.Tenant)
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "success", "tenant": tenant.DisplayName,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy", "error": err.Error(),
		})
		return
	}
	counts, err := s.store.TableCounts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy", "error": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"tables": counts,
		"models": len(s.pipelines),
	})
}
