package ppe

import "math"

// Report is the outcome of evaluating one scene against a policy profile.
// It is produced fresh per analysis and never mutated afterwards.
type Report struct {
	Profile            string         `json:"profile"`
	PersonPresent      bool           `json:"person_present"`
	DetectedCategories []Category     `json:"detected_categories"`
	MissingCategories  []Category     `json:"missing_categories"`
	Score              int            `json:"score"`
	Compliant          bool           `json:"compliant"`
	Items              []DetectedItem `json:"items"`
}

// Evaluate compares the normalized items against the profile's required
// categories and renders the verdict.
//
// The score is the share of required categories that were detected, rounded
// to an integer percentage. Extra detected categories the profile does not
// require neither help nor hurt. A profile with no required categories scores
// zero; an empty policy is never satisfied vacuously. Compliance additionally
// requires a person in the scene: equipment without a wearer is not a
// compliant scene, no matter the score.
func Evaluate(items []DetectedItem, personPresent bool, profile Profile) Report {
	detected := make([]Category, 0, len(items))
	detectedSet := make(map[Category]bool, len(items))
	for _, item := range items {
		if detectedSet[item.Category] {
			continue
		}
		detectedSet[item.Category] = true
		detected = append(detected, item.Category)
	}

	// Missing categories keep the profile's declared order so reports are
	// reproducible.
	missing := make([]Category, 0, len(profile.RequiredCategories))
	covered := 0
	for _, required := range profile.RequiredCategories {
		if detectedSet[required] {
			covered++
		} else {
			missing = append(missing, required)
		}
	}

	score := 0
	if len(profile.RequiredCategories) > 0 {
		score = int(math.Round(100 * float64(covered) / float64(len(profile.RequiredCategories))))
	}

	reportItems := make([]DetectedItem, len(items))
	copy(reportItems, items)

	return Report{
		Profile:            profile.Name,
		PersonPresent:      personPresent,
		DetectedCategories: detected,
		MissingCategories:  missing,
		Score:              score,
		Compliant:          personPresent && len(missing) == 0 && len(profile.RequiredCategories) > 0,
		Items:              reportItems,
	}
}
