package detector

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"ppeserver/internal/logger"
	"ppeserver/internal/ppe"
)

// minModelConfidence filters out the detector's own noise floor before the
// results ever reach the normalizer.
const minModelConfidence = 0.2

// OpenCVDetector runs a PPE-trained SSD MobileNet network through OpenCV's
// DNN module. A gocv.Net is not safe for concurrent Forward calls, so the
// manager keeps one OpenCVDetector per worker.
type OpenCVDetector struct {
	net        gocv.Net
	modelPath  string
	configPath string
	logger     *logger.Logger
}

// NewOpenCVDetector loads the network from the model and config files.
func NewOpenCVDetector(modelPath, configPath string, logger *logger.Logger) (*OpenCVDetector, error) {
	d := &OpenCVDetector{
		modelPath:  modelPath,
		configPath: configPath,
		logger:     logger,
	}

	if err := d.initializeNet(); err != nil {
		return nil, err
	}
	return d, nil
}

// initializeNet loads the detection network from the model and config files.
func (d *OpenCVDetector) initializeNet() error {
	if _, err := os.Stat(d.modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", d.modelPath)
	}
	if _, err := os.Stat(d.configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", d.configPath)
	}

	net := gocv.ReadNet(d.modelPath, d.configPath)
	if net.Empty() {
		return fmt.Errorf("failed to load network")
	}

	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		return fmt.Errorf("failed to set preferable backend or target")
	}

	d.net = net
	d.logger.Info("Detection network initialized from %s", d.modelPath)
	return nil
}

// Detect runs the network over the image and returns every detection above
// the model noise floor. Threshold filtering against the configured
// confidence cutoff happens later, in the normalizer.
func (d *OpenCVDetector) Detect(imageBytes []byte) ([]ppe.Detection, error) {
	if d.net.Empty() {
		return nil, fmt.Errorf("detection network not initialized")
	}

	mat, err := gocv.IMDecode(imageBytes, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("decoded image is empty")
	}

	blob := gocv.BlobFromImage(mat, 1.0/127.5, image.Pt(300, 300), gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	var results []ppe.Detection

	outputReshaped := output.Reshape(1, output.Total()/7)
	for i := 0; i < outputReshaped.Rows(); i++ {
		confidence := float64(outputReshaped.GetFloatAt(i, 2))
		if confidence < minModelConfidence {
			continue
		}

		classID := int(outputReshaped.GetFloatAt(i, 1))
		x := float64(outputReshaped.GetFloatAt(i, 3)) * float64(mat.Cols())
		y := float64(outputReshaped.GetFloatAt(i, 4)) * float64(mat.Rows())
		width := float64(outputReshaped.GetFloatAt(i, 5))*float64(mat.Cols()) - x
		height := float64(outputReshaped.GetFloatAt(i, 6))*float64(mat.Rows()) - y

		results = append(results, ppe.Detection{
			Label:      classLabel(classID),
			Confidence: confidence,
			Box:        ppe.BoundingBox{X: x, Y: y, Width: width, Height: height},
		})
	}

	return results, nil
}

// Close releases the network resources.
func (d *OpenCVDetector) Close() error {
	if d.net.Empty() {
		return nil
	}
	return d.net.Close()
}

// classLabel maps the PPE model's class ids to detector labels. The label
// strings line up with the equipment catalog; ids the model reserves but the
// catalog ignores come back as noise labels the normalizer drops.
func classLabel(classID int) string {
	labels := map[int]string{
		1: "person",
		2: "helmet",
		3: "safety vest",
		4: "safety glasses",
		5: "gloves",
		6: "boots",
		7: "mask",
		8: "ear muffs",
	}

	if label, exists := labels[classID]; exists {
		return label
	}
	return fmt.Sprintf("unknown_%d", classID)
}
