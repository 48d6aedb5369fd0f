package ppe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// profilesFile is the on-disk shape of a profile override file:
//
//	profiles:
//	  laboratory:
//	    required_categories: [eye_protection, hand_protection, respiratory_protection]
type profilesFile struct {
	Profiles map[string]profileOverride `yaml:"profiles"`
}

type profileOverride struct {
	RequiredCategories []Category `yaml:"required_categories"`
}

// LoadOverrides reads a YAML profile override file and applies it to the
// registry. A missing file is not an error; the built-in profiles stay in
// effect. Overrides are validated before any of them apply: unknown
// categories, empty requirement lists, and duplicate categories are rejected
// so a bad file cannot produce a profile whose score math is undefined.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read profiles file: %w", err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse profiles file: %w", err)
	}

	for name, override := range file.Profiles {
		if err := validateOverride(name, override); err != nil {
			return err
		}
	}

	for name, override := range file.Profiles {
		canonical := canonicalLabel(name)
		categories := make([]Category, len(override.RequiredCategories))
		copy(categories, override.RequiredCategories)
		r.profiles[canonical] = Profile{Name: canonical, RequiredCategories: categories}
	}
	return nil
}

func validateOverride(name string, override profileOverride) error {
	if canonicalLabel(name) == "" {
		return fmt.Errorf("profiles file: profile with empty name")
	}
	if len(override.RequiredCategories) == 0 {
		return fmt.Errorf("profiles file: profile %q has no required categories", name)
	}
	seen := make(map[Category]bool, len(override.RequiredCategories))
	for _, category := range override.RequiredCategories {
		if !KnownCategory(category) {
			return fmt.Errorf("profiles file: profile %q uses unknown category %q", name, category)
		}
		if seen[category] {
			return fmt.Errorf("profiles file: profile %q repeats category %q", name, category)
		}
		seen[category] = true
	}
	return nil
}
