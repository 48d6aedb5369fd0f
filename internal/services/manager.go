package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ppeserver/internal/dto"
	"ppeserver/internal/logger"
	"ppeserver/internal/models"
	"ppeserver/internal/ppe"
	"ppeserver/internal/repository"
	"ppeserver/internal/services/detector"
	"ppeserver/internal/services/storage"
	"ppeserver/internal/services/websocket"
)

// MotionGate decides whether a camera frame shows enough change to be worth
// analyzing. Implemented by detector.MotionDetector; nil disables the gate.
type MotionGate interface {
	DetectMotion(image []byte, siteID string) (bool, error)
}

// frameTask is one gated camera frame queued for analysis.
type frameTask struct {
	Image   []byte
	Site    string
	Profile string
}

// Manager runs the analysis pipeline: detect, normalize, evaluate, recommend,
// annotate, persist, broadcast. Detectors are checked out of a pool because a
// loaded gocv network is not safe for concurrent inference. Camera streams go
// through AnalyzeFrame, which skips frames and gates on motion before queuing
// work for the frame workers.
type Manager struct {
	detectorPool chan detector.Detector
	registry     *ppe.Registry
	analyses     repository.AnalysisRepository
	detections   repository.DetectionRepository
	buffer       *storage.BufferService
	hub          *websocket.HubService
	motion       MotionGate
	logger       *logger.Logger

	threshold      float64
	defaultProfile string

	frameQueue      chan frameTask
	frameCounters   map[string]int
	frameCounterMu  sync.Mutex
	processEveryNth int
}

func NewManager(
	detectors []detector.Detector,
	registry *ppe.Registry,
	analyses repository.AnalysisRepository,
	detections repository.DetectionRepository,
	buffer *storage.BufferService,
	hub *websocket.HubService,
	motion MotionGate,
	threshold float64,
	defaultProfile string,
	processEveryNth int,
	logger *logger.Logger,
) *Manager {
	pool := make(chan detector.Detector, len(detectors))
	for _, d := range detectors {
		pool <- d
	}

	if processEveryNth < 1 {
		processEveryNth = 1
	}

	manager := &Manager{
		detectorPool:    pool,
		registry:        registry,
		analyses:        analyses,
		detections:      detections,
		buffer:          buffer,
		hub:             hub,
		motion:          motion,
		threshold:       threshold,
		defaultProfile:  defaultProfile,
		frameQueue:      make(chan frameTask, 100),
		frameCounters:   make(map[string]int),
		processEveryNth: processEveryNth,
		logger:          logger,
	}

	for i := 0; i < len(detectors); i++ {
		go manager.frameWorker(i)
	}

	manager.logger.Info("Analysis manager started with %d detector(s), threshold %.2f, processing every %d frame(s)",
		len(detectors), threshold, processEveryNth)
	return manager
}

// AnalyzeFrame handles one frame from a streaming camera. Only every Nth
// frame per site is considered, and of those only frames the motion gate
// passes are queued; everything else is dropped without touching a detector.
// When the queue is full the frame is skipped rather than stalling the stream.
func (m *Manager) AnalyzeFrame(image []byte, site, profile string) {
	if site == "" {
		site = "default"
	}

	m.frameCounterMu.Lock()
	m.frameCounters[site]++
	count := m.frameCounters[site]
	if count%m.processEveryNth != 0 {
		m.frameCounterMu.Unlock()
		return
	}
	m.frameCounters[site] = 0
	m.frameCounterMu.Unlock()

	if m.motion != nil {
		moved, err := m.motion.DetectMotion(image, site)
		if err != nil {
			m.logger.Error("Error detecting motion for site %s: %v", site, err)
			return
		}
		if !moved {
			return
		}
	}

	select {
	case m.frameQueue <- frameTask{Image: image, Site: site, Profile: profile}:
	default:
		m.logger.Warning("Frame queue full for site %s, skipping frame", site)
	}
}

// frameWorker drains the frame queue through the full analysis pipeline.
func (m *Manager) frameWorker(workerID int) {
	for task := range m.frameQueue {
		if _, err := m.Analyze(task.Image, task.Site, task.Profile); err != nil {
			m.logger.Error("Worker %d: error analyzing frame for site %s: %v", workerID, task.Site, err)
		}
	}
}

// Analyze runs the full pipeline over one uploaded image and returns the
// report. Blocks until a detector is free.
func (m *Manager) Analyze(image []byte, site, profileName string) (*dto.AnalysisReport, error) {
	d := <-m.detectorPool
	defer func() { m.detectorPool <- d }()

	if profileName == "" {
		profileName = m.defaultProfile
	}
	if site == "" {
		site = "default"
	}
	// The site names image files; keep the stored value and the filename in sync.
	site = storage.SanitizeField(site)

	raw, err := d.Detect(image)
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}

	items, err := ppe.Normalize(raw, m.threshold)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}
	personPresent := ppe.ContainsPerson(raw, m.threshold)

	profile := m.registry.Resolve(profileName)
	report := ppe.Evaluate(items, personPresent, profile)
	recommendations := ppe.Recommend(report)

	analysis := &models.Analysis{
		ID:            uuid.NewString(),
		Site:          site,
		Profile:       profile.Name,
		PersonPresent: report.PersonPresent,
		Score:         report.Score,
		Compliant:     report.Compliant,
		Timestamp:     time.Now(),
	}

	m.saveImage(analysis, image, report)
	m.persist(analysis, report)
	m.broadcastReport(analysis, report, recommendations)

	m.logger.Info("Analyzed image for site %s (profile %s): score %d, compliant %v",
		site, profile.Name, report.Score, report.Compliant)

	return &dto.AnalysisReport{
		ID:              analysis.ID,
		Site:            analysis.Site,
		Timestamp:       analysis.Timestamp,
		Report:          report,
		Recommendations: recommendations,
	}, nil
}

// saveImage annotates the image and queues it for the buffered disk flush.
// Annotation failures fall back to the original image; persistence of the
// verdict matters more than the overlay.
func (m *Manager) saveImage(analysis *models.Analysis, image []byte, report ppe.Report) {
	annotated, err := detector.Annotate(image, report.Items, report.Compliant)
	if err != nil {
		m.logger.Error("Failed to annotate image: %v", err)
		annotated = image
	}

	buffered := storage.Image{
		ID:        analysis.ID,
		Timestamp: analysis.Timestamp,
		Site:      analysis.Site,
		Profile:   analysis.Profile,
		Compliant: analysis.Compliant,
		Score:     analysis.Score,
		Data:      annotated,
	}
	analysis.Filename = storage.Filename(buffered)
	analysis.FilePath = m.buffer.ImagePath(analysis.Filename)
	analysis.FileSize = int64(len(annotated))

	m.buffer.Add(buffered)
}

// persist writes the analysis and its detections. Storage failures are logged
// and do not fail the request; the caller still gets the report.
func (m *Manager) persist(analysis *models.Analysis, report ppe.Report) {
	if err := m.analyses.Insert(analysis); err != nil {
		m.logger.Error("Failed to store analysis %s: %v", analysis.ID, err)
		return
	}

	if len(report.Items) == 0 {
		return
	}

	records := make([]models.Detection, len(report.Items))
	for i, item := range report.Items {
		records[i] = models.Detection{
			AnalysisID: analysis.ID,
			Label:      item.Label,
			Category:   string(item.Category),
			X:          item.Box.X,
			Y:          item.Box.Y,
			Width:      item.Box.Width,
			Height:     item.Box.Height,
			Confidence: item.Confidence,
		}
	}
	if err := m.detections.InsertBatch(records); err != nil {
		m.logger.Error("Failed to store detections for %s: %v", analysis.ID, err)
	}
}

func (m *Manager) broadcastReport(analysis *models.Analysis, report ppe.Report, recommendations []ppe.Recommendation) {
	payload, err := json.Marshal(dto.AnalysisReport{
		ID:              analysis.ID,
		Site:            analysis.Site,
		Timestamp:       analysis.Timestamp,
		Report:          report,
		Recommendations: recommendations,
	})
	if err != nil {
		m.logger.Error("Failed to encode report for broadcast: %v", err)
		return
	}
	m.hub.Broadcast(payload)
}

func (m *Manager) GetWebsocketService() *websocket.HubService {
	return m.hub
}

func (m *Manager) GetBufferService() *storage.BufferService {
	return m.buffer
}

func (m *Manager) GetRegistry() *ppe.Registry {
	return m.registry
}

func (m *Manager) GetAnalysisRepository() repository.AnalysisRepository {
	return m.analyses
}

func (m *Manager) GetDetectionRepository() repository.DetectionRepository {
	return m.detections
}
