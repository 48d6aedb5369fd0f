package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"ppeserver/internal/logger"
	"ppeserver/internal/ppe"
	"ppeserver/internal/services"
)

// maxUploadSize caps uploaded images at 10 MB.
const maxUploadSize = 10 << 20

// AnalyzeHandler accepts an image upload, runs the compliance pipeline, and
// returns the full report as JSON. The image arrives either as the raw
// request body or as a multipart form field named "image"; the policy profile
// and site come from query parameters.
func AnalyzeHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		image, err := readUploadedImage(w, r)
		if err != nil {
			logger.Warning("Rejected upload: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report, err := manager.Analyze(image, r.URL.Query().Get("site"), r.URL.Query().Get("profile"))
		if err != nil {
			var malformed *ppe.MalformedDetectionError
			if errors.As(err, &malformed) {
				logger.Warning("Detector produced malformed output: %v", err)
				http.Error(w, "Detector produced malformed output", http.StatusBadGateway)
				return
			}
			logger.Error("Analysis failed: %v", err)
			http.Error(w, "Analysis failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.Error("Error encoding JSON response: %v", err)
		}
	}
}

func readUploadedImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, errors.New("missing multipart field 'image'")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, errors.New("error reading uploaded image")
		}
		if len(data) == 0 {
			return nil, errors.New("empty image upload")
		}
		return data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.New("error reading request body")
	}
	if len(data) == 0 {
		return nil, errors.New("empty image upload")
	}
	return data, nil
}
