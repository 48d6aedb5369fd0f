package handlers

import (
	"encoding/json"
	"net/http"

	"ppeserver/internal/logger"
	"ppeserver/internal/ppe"
)

// ListProfilesHandler returns the configured policy profiles.
func ListProfilesHandler(registry *ppe.Registry, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(registry.Profiles()); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// GetCatalogHandler returns the equipment catalog, for UI display of known
// labels and their synonyms.
func GetCatalogHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ppe.Catalog()); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}
