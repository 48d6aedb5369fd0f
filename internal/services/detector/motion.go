package detector

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"ppeserver/internal/logger"
)

// MotionDetector gates camera streams on inter-frame motion, so static scenes
// never reach the DNN. Each site keeps its own previous frame.
type MotionDetector struct {
	threshold   int
	logger      *logger.Logger
	states      map[string]*frameState
	statesMutex sync.RWMutex
}

type frameState struct {
	mutex       sync.Mutex
	previous    gocv.Mat
	hasPrevious bool
}

// NewMotionDetector creates a motion gate. threshold is the number of changed
// pixels above which a frame counts as motion.
func NewMotionDetector(threshold int, logger *logger.Logger) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		logger:    logger,
		states:    make(map[string]*frameState),
	}
}

func (d *MotionDetector) getSiteState(siteID string) *frameState {
	d.statesMutex.RLock()
	state, exists := d.states[siteID]
	d.statesMutex.RUnlock()

	if exists {
		return state
	}

	d.statesMutex.Lock()
	defer d.statesMutex.Unlock()

	// Another goroutine may have created it between the two locks.
	if state, exists := d.states[siteID]; exists {
		return state
	}

	state = &frameState{}
	d.states[siteID] = state
	d.logger.Info("Created motion detection state for site: %s", siteID)
	return state
}

// DetectMotion compares the frame against the previous one for the site and
// reports whether enough pixels changed. The first frame for a site always
// reports no motion; it only seeds the comparison state.
func (d *MotionDetector) DetectMotion(imageBytes []byte, siteID string) (bool, error) {
	state := d.getSiteState(siteID)
	state.mutex.Lock()
	defer state.mutex.Unlock()

	mat, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return false, fmt.Errorf("failed to decode image: %v", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return false, fmt.Errorf("decoded image is empty")
	}

	if !state.hasPrevious {
		state.previous = mat.Clone()
		state.hasPrevious = true
		d.logger.Info("Initialized motion detection for site: %s", siteID)
		return false, nil
	}

	diff := gocv.NewMat()
	defer diff.Close()
	if err := gocv.AbsDiff(state.previous, mat, &diff); err != nil {
		return false, fmt.Errorf("failed to compute absolute difference: %v", err)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if err := gocv.CvtColor(diff, &gray, gocv.ColorBGRToGray); err != nil {
		return false, fmt.Errorf("failed to convert image to grayscale: %v", err)
	}

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(gray, &thresh, 30, 255, gocv.ThresholdBinary)

	nonZeroPixels := gocv.CountNonZero(thresh)

	state.previous.Close()
	state.previous = mat.Clone()

	motionDetected := nonZeroPixels > d.threshold
	if motionDetected {
		d.logger.Info("Motion at site %s: %d pixels changed", siteID, nonZeroPixels)
	}
	return motionDetected, nil
}
