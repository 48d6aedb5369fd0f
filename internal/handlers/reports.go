package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"ppeserver/internal/config"
	"ppeserver/internal/dto"
	"ppeserver/internal/logger"
	"ppeserver/internal/services"
)

// GetReportsHandler lists stored analyses, supports filtering and pagination.
// Response is JSON of type dto.ReportsPage.
func GetReportsHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := atoiDefault(q.Get("page"), 1)
		limit := atoiDefault(q.Get("limit"), 24)

		filter := &dto.AnalysisFilters{
			Site:       q.Get("site"),
			Profile:    q.Get("profile"),
			Category:   q.Get("category"),
			Compliant:  parseBoolPtr(q.Get("compliant")),
			DateAfter:  parseDate(q.Get("dateAfter")),
			DateBefore: parseDate(q.Get("dateBefore")),
			Limit:      limit,
			Offset:     (page - 1) * limit,
		}

		analyses, err := manager.GetAnalysisRepository().GetAll(filter)
		if err != nil {
			logger.Error("Error querying analyses: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		total, err := manager.GetAnalysisRepository().GetTotalCount(filter)
		if err != nil {
			logger.Error("Error counting analyses: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		summaries := make([]dto.ReportSummary, 0, len(analyses))
		for _, analysis := range analyses {
			detections, err := manager.GetDetectionRepository().GetByAnalysisID(analysis.ID)
			if err != nil {
				logger.Error("Error loading detections for %s: %v", analysis.ID, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			categories := make([]string, 0, len(detections))
			seen := make(map[string]bool, len(detections))
			for _, det := range detections {
				if !seen[det.Category] {
					seen[det.Category] = true
					categories = append(categories, det.Category)
				}
			}

			summaries = append(summaries, dto.ReportSummary{
				ID:            analysis.ID,
				Site:          analysis.Site,
				Profile:       analysis.Profile,
				PersonPresent: analysis.PersonPresent,
				Score:         analysis.Score,
				Compliant:     analysis.Compliant,
				Filename:      analysis.Filename,
				Timestamp:     analysis.Timestamp,
				Categories:    categories,
			})
		}

		data := dto.ReportsPage{
			Reports:     summaries,
			Length:      total,
			TotalPages:  (total + limit - 1) / limit,
			CurrentPage: page,
			Limit:       limit,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// ViewReportImageHandler serves the annotated image for one analysis.
func ViewReportImageHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Missing id parameter", http.StatusBadRequest)
			return
		}

		analysis, err := manager.GetAnalysisRepository().GetByID(id)
		if err != nil {
			logger.Error("Error loading analysis %s: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if analysis == nil {
			http.NotFound(w, r)
			return
		}

		if _, err := os.Stat(analysis.FilePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, analysis.FilePath)
	}
}

// DeleteReportHandler removes one analysis, its detections, and its image.
func DeleteReportHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete && r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "Missing id parameter", http.StatusBadRequest)
			return
		}

		analysis, err := manager.GetAnalysisRepository().GetByID(id)
		if err != nil {
			logger.Error("Error loading analysis %s: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if analysis == nil {
			http.NotFound(w, r)
			return
		}

		if err := manager.GetAnalysisRepository().Delete(id); err != nil {
			logger.Error("Error deleting analysis %s: %v", id, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if analysis.FilePath != "" {
			if err := os.Remove(analysis.FilePath); err != nil && !os.IsNotExist(err) {
				logger.Warning("Error removing image %s: %v", analysis.FilePath, err)
			}
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearReportsHandler removes all analyses and their stored images.
func ClearReportsHandler(manager *services.Manager, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete && r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if err := manager.GetAnalysisRepository().DeleteAll(); err != nil {
			logger.Error("Error clearing analyses: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		files, err := os.ReadDir(cfg.ImageDirectory)
		if err == nil {
			for _, file := range files {
				if file.IsDir() {
					continue
				}
				path := manager.GetBufferService().ImagePath(file.Name())
				if err := os.Remove(path); err != nil {
					logger.Warning("Error removing image %s: %v", path, err)
				}
			}
		}

		logger.Info("Cleared all analyses")
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetFiltersHandler lists the distinct sites, profiles, and categories
// available for report filtering.
func GetFiltersHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sites, err := manager.GetAnalysisRepository().GetSites()
		if err != nil {
			logger.Error("Error querying sites: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		categories, err := manager.GetDetectionRepository().GetAllCategories()
		if err != nil {
			logger.Error("Error querying categories: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		data := dto.FilterOptions{
			Sites:      sites,
			Profiles:   manager.GetRegistry().Names(),
			Categories: categories,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

// GetStatsHandler returns aggregate statistics over stored analyses, plus the
// image directory usage against its configured cap.
func GetStatsHandler(manager *services.Manager, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := manager.GetAnalysisRepository().GetStats()
		if err != nil {
			logger.Error("Error querying stats: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		data := dto.StatsResponse{
			Stats:        stats,
			MaxSizeBytes: cfg.MaxImageDirectorySize << 30,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}
