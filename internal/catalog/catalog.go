// Package catalog holds the static scaffolding data: frameworks, features,
// per-framework command fragments, documentation links, post-install steps,
// presets and comparison data. The data lives in catalog.yaml, embedded in
// the binary and validated exhaustively when loaded.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// FrameworkID identifies a front-end framework. Unknown ids are representable
// and handled by the fallback rules of each lookup.
type FrameworkID string

const (
	React  FrameworkID = "react"
	Next   FrameworkID = "next"
	Vue    FrameworkID = "vue"
	Nuxt   FrameworkID = "nuxt"
	Svelte FrameworkID = "svelte"
	Solid  FrameworkID = "solid"
)

// FeatureID identifies an optional feature.
type FeatureID string

// Category groups features for display.
type Category string

const (
	CategoryCore    Category = "core"
	CategoryUI      Category = "ui"
	CategoryPayment Category = "payment"
	CategoryCloud   Category = "cloud"
	CategoryAI      Category = "ai"
	CategoryState   Category = "state"
	CategoryMisc    Category = "misc"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCore, CategoryUI, CategoryPayment, CategoryCloud,
	CategoryAI, CategoryState, CategoryMisc,
}

// Title returns the display label for a category.
func (c Category) Title() string {
	switch c {
	case CategoryCore:
		return "Core Features"
	case CategoryUI:
		return "UI Libraries"
	case CategoryPayment:
		return "Payment Integration"
	case CategoryCloud:
		return "Cloud Services"
	case CategoryAI:
		return "AI Integration"
	case CategoryState:
		return "State Management"
	case CategoryMisc:
		return "Other Tools"
	}
	return string(c)
}

var (
	ErrUnknownFramework = errors.New("unknown framework")
	ErrUnknownFeature   = errors.New("unknown feature")
	ErrUnknownPreset    = errors.New("unknown preset")
)

// DocLink is a named documentation URL.
type DocLink struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Scores rate a framework from 1 to 10 in each comparison category.
type Scores struct {
	Performance int `yaml:"performance" json:"performance"`
	Features    int `yaml:"features" json:"features"`
	Ecosystem   int `yaml:"ecosystem" json:"ecosystem"`
	Learning    int `yaml:"learning" json:"learning"`
}

// Framework describes a scaffolding target.
type Framework struct {
	ID          FrameworkID `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description" json:"description"`
	Command     string      `yaml:"command" json:"command"`
	DocsURL     string      `yaml:"docs_url" json:"docs_url"`
	Repo        string      `yaml:"repo" json:"repo"`
	ReleaseYear int         `yaml:"release_year" json:"release_year"`
	Scores      Scores      `yaml:"scores" json:"scores"`
	Pros        []string    `yaml:"pros" json:"pros"`
	Cons        []string    `yaml:"cons" json:"cons"`
	IdealFor    []string    `yaml:"ideal_for" json:"ideal_for"`
}

// Feature describes an optional add-on and how each framework spells it.
type Feature struct {
	ID             FeatureID                 `yaml:"id" json:"id"`
	Name           string                    `yaml:"name" json:"name"`
	Description    string                    `yaml:"description" json:"description"`
	Category       Category                  `yaml:"category" json:"category"`
	AvailableFor   []FrameworkID             `yaml:"available_for" json:"available_for"`
	Fragments      map[FrameworkID]string    `yaml:"fragments" json:"-"`
	Docs           []DocLink                 `yaml:"docs" json:"-"`
	FrameworkDocs  map[FrameworkID][]DocLink `yaml:"framework_docs" json:"-"`
	Steps          []string                  `yaml:"steps" json:"-"`
	FrameworkSteps map[FrameworkID][]string  `yaml:"framework_steps" json:"-"`
}

// Preset is a named, ready-made selection.
type Preset struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description" json:"description"`
	Category    string      `yaml:"category" json:"category"`
	Framework   FrameworkID `yaml:"framework" json:"framework"`
	Features    []FeatureID `yaml:"features" json:"features"`
}

// Catalog is the validated, indexed scaffolding data.
type Catalog struct {
	Frameworks []Framework `yaml:"frameworks"`
	Features   []Feature   `yaml:"features"`
	Presets    []Preset    `yaml:"presets"`

	frameworks map[FrameworkID]int
	features   map[FeatureID]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded data is
// invalid, which the package tests rule out.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(embedded)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses and validates catalog YAML.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	c.frameworks = make(map[FrameworkID]int, len(c.Frameworks))
	c.features = make(map[FeatureID]int, len(c.Features))
	var errs []error
	for i, fw := range c.Frameworks {
		if _, dup := c.frameworks[fw.ID]; dup {
			errs = append(errs, fmt.Errorf("framework %q declared twice", fw.ID))
		}
		c.frameworks[fw.ID] = i
	}
	for i, ft := range c.Features {
		if _, dup := c.features[ft.ID]; dup {
			errs = append(errs, fmt.Errorf("feature %q declared twice", ft.ID))
		}
		c.features[ft.ID] = i
	}
	return errors.Join(errs...)
}

func (c *Catalog) validate() error {
	var errs []error
	if len(c.Frameworks) == 0 {
		errs = append(errs, errors.New("no frameworks declared"))
	}
	for _, fw := range c.Frameworks {
		if fw.ID == "" || fw.Command == "" {
			errs = append(errs, fmt.Errorf("framework %q: id and command are required", fw.ID))
		}
	}

	known := func(id FrameworkID) bool {
		_, ok := c.frameworks[id]
		return ok
	}
	validCategory := func(cat Category) bool {
		for _, k := range Categories {
			if k == cat {
				return true
			}
		}
		return false
	}

	for _, ft := range c.Features {
		if !validCategory(ft.Category) {
			errs = append(errs, fmt.Errorf("feature %q: unknown category %q", ft.ID, ft.Category))
		}
		for _, fw := range c.Frameworks {
			if _, ok := ft.Fragments[fw.ID]; !ok {
				errs = append(errs, fmt.Errorf("feature %q: missing fragment for %q", ft.ID, fw.ID))
			}
		}
		for fw := range ft.Fragments {
			if !known(fw) {
				errs = append(errs, fmt.Errorf("feature %q: fragment for unknown framework %q", ft.ID, fw))
			}
		}
		for _, fw := range ft.AvailableFor {
			if !known(fw) {
				errs = append(errs, fmt.Errorf("feature %q: available for unknown framework %q", ft.ID, fw))
			}
		}
		for fw := range ft.FrameworkDocs {
			if !known(fw) {
				errs = append(errs, fmt.Errorf("feature %q: docs for unknown framework %q", ft.ID, fw))
			}
		}
		for fw := range ft.FrameworkSteps {
			if !known(fw) {
				errs = append(errs, fmt.Errorf("feature %q: steps for unknown framework %q", ft.ID, fw))
			}
		}
	}

	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("preset %q declared twice", p.ID))
		}
		seen[p.ID] = true
		if !known(p.Framework) {
			errs = append(errs, fmt.Errorf("preset %q: unknown framework %q", p.ID, p.Framework))
			continue
		}
		for _, f := range p.Features {
			if _, ok := c.features[f]; !ok {
				errs = append(errs, fmt.Errorf("preset %q: unknown feature %q", p.ID, f))
				continue
			}
			if !c.Available(p.Framework, f) {
				errs = append(errs, fmt.Errorf("preset %q: feature %q not available for %q", p.ID, f, p.Framework))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

// Framework looks up a framework by id.
func (c *Catalog) Framework(id FrameworkID) (Framework, bool) {
	i, ok := c.frameworks[id]
	if !ok {
		return Framework{}, false
	}
	return c.Frameworks[i], true
}

// Feature looks up a feature by id.
func (c *Catalog) Feature(id FeatureID) (Feature, bool) {
	i, ok := c.features[id]
	if !ok {
		return Feature{}, false
	}
	return c.Features[i], true
}

// BaseCommand returns the scaffold command for a framework. Unknown
// frameworks fall back to "npx create-<id>-app".
func (c *Catalog) BaseCommand(id FrameworkID) string {
	if fw, ok := c.Framework(id); ok {
		return fw.Command
	}
	return "npx create-" + string(id) + "-app"
}

// Fragment returns the command fragment for a feature on a framework, or ""
// when either id is unknown.
func (c *Catalog) Fragment(fw FrameworkID, ft FeatureID) string {
	f, ok := c.Feature(ft)
	if !ok {
		return ""
	}
	return f.Fragments[fw]
}

// DocsURL returns the framework's documentation URL, or "" when unknown.
func (c *Catalog) DocsURL(id FrameworkID) string {
	fw, ok := c.Framework(id)
	if !ok {
		return ""
	}
	return fw.DocsURL
}

// FeatureDocs returns the documentation links for a feature on a framework:
// the framework override when present, else the feature default.
func (c *Catalog) FeatureDocs(fw FrameworkID, ft FeatureID) []DocLink {
	f, ok := c.Feature(ft)
	if !ok {
		return nil
	}
	if links, ok := f.FrameworkDocs[fw]; ok {
		return links
	}
	return f.Docs
}

// FeatureSteps returns post-install lines for a feature on a framework.
func (c *Catalog) FeatureSteps(fw FrameworkID, ft FeatureID) []string {
	f, ok := c.Feature(ft)
	if !ok {
		return nil
	}
	if steps, ok := f.FrameworkSteps[fw]; ok {
		return steps
	}
	return f.Steps
}

// Available reports whether a feature is offered for a framework.
func (c *Catalog) Available(fw FrameworkID, ft FeatureID) bool {
	f, ok := c.Feature(ft)
	if !ok {
		return false
	}
	for _, id := range f.AvailableFor {
		if id == fw {
			return true
		}
	}
	return false
}

// FeaturesFor lists the features available for a framework, optionally
// restricted to one category. An empty category means all.
func (c *Catalog) FeaturesFor(fw FrameworkID, cat Category) []Feature {
	var out []Feature
	for _, f := range c.Features {
		if cat != "" && f.Category != cat {
			continue
		}
		if c.Available(fw, f.ID) {
			out = append(out, f)
		}
	}
	return out
}

// ParseFramework resolves a user-supplied framework id.
func (c *Catalog) ParseFramework(s string) (FrameworkID, error) {
	id := FrameworkID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := c.frameworks[id]; !ok {
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownFramework, s, strings.Join(c.frameworkIDs(), ", "))
	}
	return id, nil
}

// ParseFeatures resolves user-supplied feature ids, keeping their order.
// Empty entries are skipped.
func (c *Catalog) ParseFeatures(in []string) ([]FeatureID, error) {
	out := make([]FeatureID, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		id := FeatureID(s)
		if _, ok := c.features[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, s)
		}
		out = append(out, id)
	}
	return out, nil
}

// Unavailable returns the features in the list that the framework does not offer.
func (c *Catalog) Unavailable(fw FrameworkID, features []FeatureID) []FeatureID {
	var out []FeatureID
	for _, f := range features {
		if !c.Available(fw, f) {
			out = append(out, f)
		}
	}
	return out
}

func (c *Catalog) frameworkIDs() []string {
	ids := make([]string, len(c.Frameworks))
	for i, fw := range c.Frameworks {
		ids[i] = string(fw.ID)
	}
	return ids
}

// Preset looks up a preset by id.
func (c *Catalog) Preset(id string) (Preset, error) {
	for _, p := range c.Presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
}

// SearchPresets returns presets whose name, description, framework, category
// or any feature contains q, case-insensitively. An empty query returns all.
func (c *Catalog) SearchPresets(q string) []Preset {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return append([]Preset(nil), c.Presets...)
	}
	var out []Preset
	for _, p := range c.Presets {
		if presetMatches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func presetMatches(p Preset, q string) bool {
	fields := []string{p.Name, p.Description, string(p.Framework), p.Category}
	for _, f := range p.Features {
		fields = append(fields, string(f))
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ScoreCategory names a comparison axis.
type ScoreCategory string

const (
	ScorePerformance ScoreCategory = "performance"
	ScoreFeatures    ScoreCategory = "features"
	ScoreEcosystem   ScoreCategory = "ecosystem"
	ScoreLearning    ScoreCategory = "learning"
)

// ScoreCategories lists the comparison axes in display order.
var ScoreCategories = []ScoreCategory{ScorePerformance, ScoreFeatures, ScoreEcosystem, ScoreLearning}

// Score returns the framework's score on one axis.
func (s Scores) Score(cat ScoreCategory) int {
	switch cat {
	case ScorePerformance:
		return s.Performance
	case ScoreFeatures:
		return s.Features
	case ScoreEcosystem:
		return s.Ecosystem
	case ScoreLearning:
		return s.Learning
	}
	return 0
}

// MaxCompare is the largest number of frameworks compared at once.
const MaxCompare = 3

// Compare resolves up to MaxCompare frameworks and orders them by the given
// score, highest first. Ties keep the requested order.
func (c *Catalog) Compare(ids []FrameworkID, by ScoreCategory) ([]Framework, error) {
	if len(ids) == 0 {
		return nil, errors.New("select at least one framework")
	}
	if len(ids) > MaxCompare {
		return nil, fmt.Errorf("can compare at most %d frameworks, got %d", MaxCompare, len(ids))
	}
	switch by {
	case ScorePerformance, ScoreFeatures, ScoreEcosystem, ScoreLearning:
	default:
		return nil, fmt.Errorf("unknown comparison category %q", by)
	}
	out := make([]Framework, 0, len(ids))
	for _, id := range ids {
		fw, ok := c.Framework(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFramework, id)
		}
		out = append(out, fw)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Scores.Score(by) > out[j].Scores.Score(by)
	})
	return out, nil
}
