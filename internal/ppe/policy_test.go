package ppe

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRegistry_BuiltInProfiles(t *testing.T) {
	tests := []struct {
		name string
		want []Category
	}{
		{"construction", []Category{CategoryHead, CategoryVisibility, CategoryEye, CategoryHand, CategoryFoot}},
		{"manufacturing", []Category{CategoryHead, CategoryEye, CategoryHand, CategoryFoot}},
		{"laboratory", []Category{CategoryEye, CategoryHand}},
		{"healthcare", []Category{CategoryHand, CategoryEye}},
		{"general", []Category{CategoryHead, CategoryVisibility, CategoryEye, CategoryHand, CategoryFoot}},
	}

	registry := NewRegistry()
	for _, tt := range tests {
		profile := registry.Resolve(tt.name)
		if profile.Name != tt.name {
			t.Errorf("Resolve(%q).Name = %q", tt.name, profile.Name)
		}
		if !reflect.DeepEqual(profile.RequiredCategories, tt.want) {
			t.Errorf("Resolve(%q) categories = %v, expected %v", tt.name, profile.RequiredCategories, tt.want)
		}
	}
}

func TestRegistry_EveryProfileRequiresSomething(t *testing.T) {
	registry := NewRegistry()
	for _, profile := range registry.Profiles() {
		if len(profile.RequiredCategories) == 0 {
			t.Errorf("profile %s has no required categories", profile.Name)
		}
	}
}

func TestRegistry_UnknownNameFallsBackToGeneral(t *testing.T) {
	registry := NewRegistry()
	general := registry.Resolve("general")

	for _, name := range []string{"not-a-real-profile", "", "CONSTRUCTION SITE", "warehouse"} {
		profile := registry.Resolve(name)
		if !reflect.DeepEqual(profile, general) {
			t.Errorf("Resolve(%q) = %+v, expected the general profile", name, profile)
		}
	}
}

func TestRegistry_ResolveIsCaseInsensitive(t *testing.T) {
	registry := NewRegistry()
	profile := registry.Resolve("  Laboratory ")
	if profile.Name != "laboratory" {
		t.Errorf("expected laboratory, got %s", profile.Name)
	}
}

func TestRegistry_LookupStrict(t *testing.T) {
	registry := NewRegistry()

	if _, err := registry.Lookup("construction"); err != nil {
		t.Errorf("Lookup(construction) failed: %v", err)
	}

	_, err := registry.Lookup("warehouse")
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestRegistry_LoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	content := `
profiles:
  laboratory:
    required_categories: [eye_protection, hand_protection, respiratory_protection]
  welding:
    required_categories: [eye_protection, hand_protection]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write profiles file: %v", err)
	}

	registry := NewRegistry()
	if err := registry.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}

	lab := registry.Resolve("laboratory")
	want := []Category{CategoryEye, CategoryHand, CategoryRespiratory}
	if !reflect.DeepEqual(lab.RequiredCategories, want) {
		t.Errorf("overridden laboratory = %v, expected %v", lab.RequiredCategories, want)
	}

	welding, err := registry.Lookup("welding")
	if err != nil {
		t.Fatalf("expected welding profile after override: %v", err)
	}
	if len(welding.RequiredCategories) != 2 {
		t.Errorf("welding categories = %v", welding.RequiredCategories)
	}
}

func TestRegistry_LoadOverridesMissingFile(t *testing.T) {
	registry := NewRegistry()
	if err := registry.LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("missing override file should not be an error, got %v", err)
	}
}

func TestRegistry_LoadOverridesRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown category", "profiles:\n  laboratory:\n    required_categories: [cape_protection]\n"},
		{"empty categories", "profiles:\n  laboratory:\n    required_categories: []\n"},
		{"duplicate category", "profiles:\n  laboratory:\n    required_categories: [eye_protection, eye_protection]\n"},
		{"not yaml", "{{{{\n"},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
			t.Fatalf("%s: failed to write file: %v", tt.name, err)
		}

		registry := NewRegistry()
		if err := registry.LoadOverrides(path); err == nil {
			t.Errorf("%s: expected error, got none", tt.name)
		}
		// Built-ins must survive a rejected file untouched.
		if len(registry.Resolve("laboratory").RequiredCategories) != 2 {
			t.Errorf("%s: rejected override still modified the registry", tt.name)
		}
	}
}
