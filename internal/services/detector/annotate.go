package detector

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"ppeserver/internal/ppe"
)

var (
	compliantColor    = color.RGBA{R: 0, G: 180, B: 40, A: 0}
	nonCompliantColor = color.RGBA{R: 255, G: 0, B: 0, A: 0}
)

// Annotate draws the normalized items onto the image, green for a compliant
// verdict and red otherwise, with a label and confidence above each box.
func Annotate(img []byte, items []ppe.DetectedItem, compliant bool) ([]byte, error) {
	boxColor := nonCompliantColor
	if compliant {
		boxColor = compliantColor
	}

	mat, err := gocv.IMDecode(img, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	defer mat.Close()

	for _, item := range items {
		rect := image.Rect(
			int(item.Box.X),
			int(item.Box.Y),
			int(item.Box.X+item.Box.Width),
			int(item.Box.Y+item.Box.Height),
		)
		if err := gocv.Rectangle(&mat, rect, boxColor, 2); err != nil {
			return nil, fmt.Errorf("failed to draw rectangle: %v", err)
		}

		label := fmt.Sprintf("%s (%.2f)", item.Label, item.Confidence)
		pt := image.Pt(int(item.Box.X), int(item.Box.Y)-5)
		if err := gocv.PutText(&mat, label, pt, gocv.FontHersheySimplex, 0.5, boxColor, 1); err != nil {
			return nil, fmt.Errorf("failed to draw text: %v", err)
		}
	}

	buf, err := gocv.IMEncode(".jpg", mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %v", err)
	}
	defer buf.Close()

	annotated := make([]byte, len(buf.GetBytes()))
	copy(annotated, buf.GetBytes())
	return annotated, nil
}
