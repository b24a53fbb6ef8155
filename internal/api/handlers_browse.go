package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lzhang-md/drivetidy/internal/httputil"
)

// The drive addresses its top level with the literal id "root".
const rootFolderID = "root"

func (s *Server) handleBrowseRoot(w http.ResponseWriter, r *http.Request) {
	s.browse(w, r, rootFolderID)
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	s.browse(w, r, chi.URLParam(r, "folderID"))
}

func (s *Server) browse(w http.ResponseWriter, r *http.Request, folderID string) {
	if !s.requireOrganizer(w) {
		return
	}

	entries, err := s.store.ListDir(r.Context(), folderID)
	if err != nil {
		httputil.WriteError(w, http.StatusBadGateway, "LIST_FAILED", err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"folder_id": folderID,
		"entries":   entries,
		"count":     len(entries),
	})
}
