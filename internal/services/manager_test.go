package services

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ppeserver/internal/dto"
	"ppeserver/internal/logger"
	"ppeserver/internal/ppe"
	"ppeserver/internal/repository/sqlite"
	"ppeserver/internal/services/detector"
	"ppeserver/internal/services/storage"
	"ppeserver/internal/services/websocket"
)

// stubMotionGate is a MotionGate with a fixed answer, counting calls.
type stubMotionGate struct {
	mu     sync.Mutex
	calls  int
	motion bool
}

func (g *stubMotionGate) DetectMotion(image []byte, siteID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.motion, nil
}

func (g *stubMotionGate) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func newTestManagerWith(t *testing.T, motion MotionGate, processEveryNth int) *Manager {
	t.Helper()

	log := logger.NewLogger(t.TempDir())

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	buffer := storage.NewBufferService(filepath.Join(t.TempDir(), "images"), 10, log)
	hub := websocket.NewHubService(log)
	go hub.Run()

	return NewManager(
		[]detector.Detector{detector.NewMockDetector(1)},
		ppe.NewRegistry(),
		sqlite.NewAnalysisRepository(db),
		sqlite.NewDetectionRepository(db),
		buffer,
		hub,
		motion,
		ppe.DefaultConfidenceThreshold,
		"general",
		processEveryNth,
		log,
	)
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return newTestManagerWith(t, nil, 1)
}

// waitForAnalyses polls the repository until it holds at least want rows;
// frame analysis runs on background workers.
func waitForAnalyses(t *testing.T, m *Manager, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		count, err := m.GetAnalysisRepository().GetTotalCount(&dto.AnalysisFilters{})
		if err != nil {
			t.Fatalf("GetTotalCount failed: %v", err)
		}
		if count >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d analyses", want)
}

func TestManager_AnalyzePersistsReport(t *testing.T) {
	manager := newTestManager(t)

	report, err := manager.Analyze([]byte("not-a-real-jpeg"), "site-north", "construction")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.ID == "" {
		t.Error("expected a report ID")
	}
	if report.Site != "site-north" {
		t.Errorf("Site = %q", report.Site)
	}
	if report.Report.Profile != "construction" {
		t.Errorf("Profile = %q", report.Report.Profile)
	}
	if !report.Report.PersonPresent {
		t.Error("mock scene contains a person")
	}
	if len(report.Recommendations) == 0 {
		t.Error("expected recommendations")
	}

	stored, err := manager.GetAnalysisRepository().GetByID(report.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored == nil {
		t.Fatal("analysis was not persisted")
	}
	if stored.Score != report.Report.Score || stored.Compliant != report.Report.Compliant {
		t.Errorf("stored %+v does not match report score=%d compliant=%v",
			stored, report.Report.Score, report.Report.Compliant)
	}

	detections, err := manager.GetDetectionRepository().GetByAnalysisID(report.ID)
	if err != nil {
		t.Fatalf("GetByAnalysisID failed: %v", err)
	}
	if len(detections) != len(report.Report.Items) {
		t.Errorf("stored %d detections, report has %d items", len(detections), len(report.Report.Items))
	}
}

func TestManager_AnalyzeDefaultsProfileAndSite(t *testing.T) {
	manager := newTestManager(t)

	report, err := manager.Analyze([]byte("img"), "", "")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.Report.Profile != "general" {
		t.Errorf("expected general profile, got %q", report.Report.Profile)
	}
	if report.Site != "default" {
		t.Errorf("expected default site, got %q", report.Site)
	}
}

func TestManager_UnknownProfileFallsBack(t *testing.T) {
	manager := newTestManager(t)

	report, err := manager.Analyze([]byte("img"), "site", "not-a-real-profile")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.Report.Profile != "general" {
		t.Errorf("expected fallback to general, got %q", report.Report.Profile)
	}
}

func TestManager_SanitizesSiteForFilenames(t *testing.T) {
	manager := newTestManager(t)

	report, err := manager.Analyze([]byte("img"), "north_yard 2", "construction")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if report.Site != "north-yard-2" {
		t.Errorf("Site = %q, expected north-yard-2", report.Site)
	}

	stored, err := manager.GetAnalysisRepository().GetByID(report.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored == nil {
		t.Fatal("analysis was not persisted")
	}

	parsed, err := storage.ParseFilename(stored.Filename)
	if err != nil {
		t.Fatalf("stored filename %q does not parse: %v", stored.Filename, err)
	}
	if parsed.Site != stored.Site {
		t.Errorf("filename site %q, stored site %q", parsed.Site, stored.Site)
	}
}

func TestManager_AnalyzeFrameSkipsFrames(t *testing.T) {
	gate := &stubMotionGate{motion: false}
	manager := newTestManagerWith(t, gate, 3)

	for i := 0; i < 7; i++ {
		manager.AnalyzeFrame([]byte("frame"), "dock", "construction")
	}

	// Only every third frame reaches the gate, and the gate passes none on.
	if calls := gate.callCount(); calls != 2 {
		t.Errorf("motion gate saw %d frames, expected 2", calls)
	}

	count, err := manager.GetAnalysisRepository().GetTotalCount(&dto.AnalysisFilters{})
	if err != nil {
		t.Fatalf("GetTotalCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no analyses for a static scene, got %d", count)
	}
}

func TestManager_AnalyzeFrameProcessesOnMotion(t *testing.T) {
	gate := &stubMotionGate{motion: true}
	manager := newTestManagerWith(t, gate, 1)

	manager.AnalyzeFrame([]byte("frame"), "dock", "construction")

	waitForAnalyses(t, manager, 1)
}

func TestManager_AnalyzeFrameCountsPerSite(t *testing.T) {
	gate := &stubMotionGate{motion: false}
	manager := newTestManagerWith(t, gate, 2)

	// Interleaved sites keep independent counters: two frames each means
	// each site reaches its second frame exactly once.
	manager.AnalyzeFrame([]byte("frame"), "east", "construction")
	manager.AnalyzeFrame([]byte("frame"), "west", "construction")
	manager.AnalyzeFrame([]byte("frame"), "east", "construction")
	manager.AnalyzeFrame([]byte("frame"), "west", "construction")

	if calls := gate.callCount(); calls != 2 {
		t.Errorf("motion gate saw %d frames, expected 2", calls)
	}
}
