package ppe

// Recommendation is one actionable message derived from a report.
type Recommendation struct {
	Kind     string `json:"kind"` // error | warning | success | info
	Message  string `json:"message"`
	Priority string `json:"priority"` // high | medium | low
}

const (
	KindError   = "error"
	KindWarning = "warning"
	KindSuccess = "success"
	KindInfo    = "info"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// categoryActions holds the corrective action for each missing category.
var categoryActions = map[Category]string{
	CategoryHead:        "No head protection detected. Provide a hard hat or safety helmet before entering the area.",
	CategoryVisibility:  "No high-visibility clothing detected. Provide a reflective safety vest.",
	CategoryEye:         "No eye protection detected. Provide safety glasses or goggles.",
	CategoryHand:        "No hand protection detected. Provide suitable work gloves.",
	CategoryFoot:        "No foot protection detected. Provide safety boots with reinforced toes.",
	CategoryRespiratory: "No respiratory protection detected. Provide a fitted mask or respirator.",
	CategoryHearing:     "No hearing protection detected. Provide ear muffs or ear plugs.",
}

const (
	noPersonMessage      = "No person detected in the image. Upload a photo that clearly shows the worker."
	compliantMessage     = "All required protective equipment detected. The scene meets the selected policy."
	generalSafetyMessage = "Verify equipment fit and condition regularly; detection confirms presence, not proper use."
)

// Recommend turns a report into a prioritized action list. The ordering is
// part of the contract: the no-person error first, then one warning per
// missing category in the report's order, then the success message for
// compliant scenes, and always a closing general-safety reminder.
func Recommend(report Report) []Recommendation {
	recommendations := make([]Recommendation, 0, len(report.MissingCategories)+3)

	if !report.PersonPresent {
		recommendations = append(recommendations, Recommendation{
			Kind:     KindError,
			Message:  noPersonMessage,
			Priority: PriorityHigh,
		})
	}

	for _, category := range report.MissingCategories {
		message, ok := categoryActions[category]
		if !ok {
			continue
		}
		recommendations = append(recommendations, Recommendation{
			Kind:     KindWarning,
			Message:  message,
			Priority: PriorityHigh,
		})
	}

	if report.Compliant {
		recommendations = append(recommendations, Recommendation{
			Kind:     KindSuccess,
			Message:  compliantMessage,
			Priority: PriorityLow,
		})
	}

	recommendations = append(recommendations, Recommendation{
		Kind:     KindInfo,
		Message:  generalSafetyMessage,
		Priority: PriorityMedium,
	})

	return recommendations
}
