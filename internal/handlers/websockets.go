package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ppeserver/internal/logger"
	"ppeserver/internal/services"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler registers a viewer that receives every completed
// compliance report as JSON.
func ViewWebsocketHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		defer connection.Close()

		manager.GetWebsocketService().Register(connection)
		defer manager.GetWebsocketService().Unregister(connection)

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				logger.Info("Viewer disconnected: %v", err)
				break
			}
		}
	}
}

// CameraWebsocketHandler accepts a stream of image frames from a fixed site
// camera. Frames go through the manager's gated stream path, which skips
// frames and checks for motion before running the full pipeline.
func CameraWebsocketHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		site := r.URL.Query().Get("site")
		profile := r.URL.Query().Get("profile")

		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		defer connection.Close()

		logger.Info("Camera connected: site %s, profile %s", site, profile)

		for {
			_, frame, err := connection.ReadMessage()
			if err != nil {
				logger.Info("Camera disconnected: %v", err)
				break
			}

			manager.AnalyzeFrame(frame, site, profile)
		}
	}
}
