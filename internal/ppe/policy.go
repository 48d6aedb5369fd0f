package ppe

import (
	"fmt"
	"sort"
)

// DefaultProfileName is the profile unknown names fall back to.
const DefaultProfileName = "general"

// Profile names a work environment and the ordered protection categories it
// requires. Person presence is not listed here; it is always required.
type Profile struct {
	Name               string     `json:"name"`
	RequiredCategories []Category `json:"required_categories"`
}

// Registry holds the policy profiles. It is built once at startup and is
// read-only afterwards, safe for any number of concurrent readers.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns a registry with the built-in profiles.
func NewRegistry() *Registry {
	return &Registry{profiles: map[string]Profile{
		"construction": {
			Name:               "construction",
			RequiredCategories: []Category{CategoryHead, CategoryVisibility, CategoryEye, CategoryHand, CategoryFoot},
		},
		"manufacturing": {
			Name:               "manufacturing",
			RequiredCategories: []Category{CategoryHead, CategoryEye, CategoryHand, CategoryFoot},
		},
		"laboratory": {
			Name:               "laboratory",
			RequiredCategories: []Category{CategoryEye, CategoryHand},
		},
		"healthcare": {
			Name:               "healthcare",
			RequiredCategories: []Category{CategoryHand, CategoryEye},
		},
		DefaultProfileName: {
			Name:               DefaultProfileName,
			RequiredCategories: []Category{CategoryHead, CategoryVisibility, CategoryEye, CategoryHand, CategoryFoot},
		},
	}}
}

// Resolve returns the profile for name, falling back to the general profile
// for unknown or empty names. It never fails; a lenient default keeps a typo
// in a query parameter from turning into a 500.
func (r *Registry) Resolve(name string) Profile {
	if profile, ok := r.profiles[canonicalLabel(name)]; ok {
		return profile
	}
	return r.profiles[DefaultProfileName]
}

// Lookup is the strict variant of Resolve: unknown names return
// ErrInvalidProfile instead of the fallback. Used to reject typos at
// configuration time.
func (r *Registry) Lookup(name string) (Profile, error) {
	profile, ok := r.profiles[canonicalLabel(name)]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrInvalidProfile, name)
	}
	return profile, nil
}

// Names returns the known profile names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profiles returns all profiles keyed by name.
func (r *Registry) Profiles() []Profile {
	profiles := make([]Profile, 0, len(r.profiles))
	for _, name := range r.Names() {
		profiles = append(profiles, r.profiles[name])
	}
	return profiles
}
