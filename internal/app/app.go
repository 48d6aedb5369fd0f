package app

import (
	"fmt"
	"net/http"

	"ppeserver/internal/config"
	"ppeserver/internal/logger"
	"ppeserver/internal/ppe"
	"ppeserver/internal/repository/sqlite"
	"ppeserver/internal/routes"
	"ppeserver/internal/services"
	"ppeserver/internal/services/detector"
	"ppeserver/internal/services/storage"
	"ppeserver/internal/services/websocket"
)

type App struct {
	config        *config.Config
	logger        *logger.Logger
	db            *sqlite.DB
	bufferService *storage.BufferService
	hubService    *websocket.HubService
	manager       *services.Manager
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg.LogDirectory)

	registry := ppe.NewRegistry()
	if err := registry.LoadOverrides(cfg.ProfilesPath); err != nil {
		return nil, fmt.Errorf("failed to load policy profiles: %w", err)
	}
	// Reject a misspelled default profile at startup instead of silently
	// analyzing every request against the general profile.
	if _, err := registry.Lookup(cfg.DefaultProfile); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PROFILE: %w", err)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	detectors, err := buildDetectors(cfg, log)
	if err != nil {
		return nil, err
	}

	buffer := storage.NewBufferService(cfg.ImageDirectory, cfg.ImageBufferLimit, log)
	hub := websocket.NewHubService(log)

	// Mock mode runs on synthetic frames that need not decode as images,
	// so the gocv motion gate stays off there.
	var motion services.MotionGate
	if !cfg.UseMockDetector {
		motion = detector.NewMotionDetector(cfg.MotionThreshold, log)
	}

	manager := services.NewManager(
		detectors,
		registry,
		sqlite.NewAnalysisRepository(db),
		sqlite.NewDetectionRepository(db),
		buffer,
		hub,
		motion,
		cfg.ConfidenceThreshold,
		cfg.DefaultProfile,
		cfg.ProcessingInterval,
		log,
	)

	return &App{
		config:        cfg,
		logger:        log,
		db:            db,
		bufferService: buffer,
		hubService:    hub,
		manager:       manager,
	}, nil
}

// buildDetectors loads one detector per processing worker. A gocv network
// cannot run concurrent inference, so each worker gets its own copy.
func buildDetectors(cfg *config.Config, log *logger.Logger) ([]detector.Detector, error) {
	detectors := make([]detector.Detector, 0, cfg.ProcessingWorkers)

	if cfg.UseMockDetector {
		log.Warning("Running with the mock detector; all analyses use synthetic detections")
		for i := 0; i < cfg.ProcessingWorkers; i++ {
			detectors = append(detectors, detector.NewMockDetector(cfg.MockDetectorSeed+int64(i)))
		}
		return detectors, nil
	}

	for i := 0; i < cfg.ProcessingWorkers; i++ {
		d, err := detector.NewOpenCVDetector(cfg.ModelPath, cfg.ConfigPath, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load detector: %w", err)
		}
		detectors = append(detectors, d)
	}
	return detectors, nil
}

func (a *App) Run() error {
	// Start background services
	go a.bufferService.Run(a.config.BufferFlushInterval)
	go a.hubService.Run()

	// Setup routes
	router := routes.SetupRoutes(a.manager, a.config, a.logger)

	a.logger.Info("PPE compliance server listening on http://localhost:%d", a.config.Port)
	a.logger.Info("Images: %s, database: %s", a.config.ImageDirectory, a.config.DatabasePath)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}

// Close flushes buffered images and releases the database.
func (a *App) Close() error {
	a.bufferService.FlushImages()
	return a.db.Close()
}
