package api

import (
	"net/http"
	"strings"

	"github.com/lzhang-md/drivetidy/internal/httputil"
)

// Keys the settings endpoint accepts. Anything else is rejected so
// typos do not silently accumulate in the table.
var allowedSettingKeys = map[string]bool{
	"tmdb_api_key":       true,
	"tmdb_language":      true,
	"cmcc_authorization": true,
	"cmcc_cookie":        true,
	"cmcc_client_info":   true,
	"max_clean_depth":    true,
	"clean_schedule":     true,
	"clean_folders":      true,
}

// Secret-bearing keys are masked in GET responses.
var secretSettingKeys = map[string]bool{
	"tmdb_api_key":       true,
	"cmcc_authorization": true,
	"cmcc_cookie":        true,
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsRepo.GetAll()
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load settings")
		return
	}

	for key, value := range settings {
		if secretSettingKeys[key] && value != "" {
			settings[key] = maskSecret(value)
		}
	}
	httputil.WriteJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	for key := range req {
		if !allowedSettingKeys[key] {
			httputil.WriteError(w, http.StatusBadRequest, "UNKNOWN_KEY", "unknown setting: "+key)
			return
		}
	}

	for key, value := range req {
		if err := s.settingsRepo.Set(key, value); err != nil {
			httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to save setting "+key)
			return
		}
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"updated": len(req),
		"note":    "changes to drive or TMDB credentials take effect after restart",
	})
}

func maskSecret(v string) string {
	if len(v) <= 8 {
		return strings.Repeat("*", len(v))
	}
	return v[:4] + strings.Repeat("*", 4) + v[len(v)-4:]
}
