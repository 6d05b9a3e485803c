package api

import (
	"encoding/json"
	"net/http"
)

type exportRequest struct {
	AnnotationID *int `json:"annotation_id"`
	QueueID      *int `json:"queue_id"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.AnnotationID == nil {
		jsonError(w, "annotation_id is required", http.StatusBadRequest)
		return
	}
	if req.QueueID == nil {
		jsonError(w, "queue_id is required", http.StatusBadRequest)
		return
	}

	success, errMsg := s.exporter.Process(r.Context(), *req.QueueID, *req.AnnotationID)

	resp := map[string]any{"success": success}
	if errMsg != "" {
		resp["error_message"] = errMsg
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
