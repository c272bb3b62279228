package emotion

import "strings"

// LabelTable is a static, backend-specific mapping from raw classifier labels
// to canonical categories. Lookups are case-insensitive; labels with no entry
// are treated as tolerated noise and discarded, which keeps normalization
// forward-compatible with backend vocabulary drift.
type LabelTable struct {
	name        string
	attribution string
	categories  []Category // canonical order, used for sort tie-breaks
	lookup      map[string]Category
}

// NewLabelTable builds a table over the given category set. The lookup keys
// are lowercased on construction.
func NewLabelTable(name, attribution string, categories []Category, lookup map[string]Category) *LabelTable {
	normalized := make(map[string]Category, len(lookup))
	for label, cat := range lookup {
		normalized[strings.ToLower(label)] = cat
	}

	return &LabelTable{
		name:        name,
		attribution: attribution,
		categories:  categories,
		lookup:      normalized,
	}
}

// PipelineLabels returns the label table for the local inference pipeline.
// The pipeline's vocabulary follows the usual English emotion-classification
// label set; fear-family labels have no canonical category here and are
// discarded.
func PipelineLabels() *LabelTable {
	return NewLabelTable(
		"pipeline",
		"Scores produced by the local inference pipeline.",
		[]Category{
			CategoryHappy,
			CategorySad,
			CategoryAngry,
			CategorySurprised,
			CategoryDisgusted,
			CategoryNeutral,
		},
		map[string]Category{
			"joy":       CategoryHappy,
			"happiness": CategoryHappy,
			"happy":     CategoryHappy,
			"sadness":   CategorySad,
			"sad":       CategorySad,
			"anger":     CategoryAngry,
			"angry":     CategoryAngry,
			"surprise":  CategorySurprised,
			"surprised": CategorySurprised,
			"disgust":   CategoryDisgusted,
			"disgusted": CategoryDisgusted,
			"neutral":   CategoryNeutral,
		},
	)
}

// GatewayLabels returns the label table for the multimodal gateway backend,
// which reports two extra categories beyond the pipeline set.
func GatewayLabels() *LabelTable {
	return NewLabelTable(
		"gateway",
		"Scores produced by the multimodal gateway model.",
		[]Category{
			CategoryHappy,
			CategorySad,
			CategoryAngry,
			CategorySurprised,
			CategoryFearful,
			CategoryDisgusted,
			CategoryContempt,
			CategoryNeutral,
		},
		map[string]Category{
			"happy":     CategoryHappy,
			"happiness": CategoryHappy,
			"joy":       CategoryHappy,
			"sad":       CategorySad,
			"sadness":   CategorySad,
			"angry":     CategoryAngry,
			"anger":     CategoryAngry,
			"surprised": CategorySurprised,
			"surprise":  CategorySurprised,
			"fearful":   CategoryFearful,
			"fear":      CategoryFearful,
			"disgusted": CategoryDisgusted,
			"disgust":   CategoryDisgusted,
			"contempt":  CategoryContempt,
			"neutral":   CategoryNeutral,
			"calm":      CategoryNeutral,
		},
	)
}

// Name returns the table's identifier
func (t *LabelTable) Name() string {
	return t.name
}

// Categories returns the canonical category order of this table
func (t *LabelTable) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Resolve maps a raw backend label to its canonical category
func (t *LabelTable) Resolve(label string) (Category, bool) {
	cat, ok := t.lookup[strings.ToLower(strings.TrimSpace(label))]
	return cat, ok
}

// Normalize converts a raw classification into a canonical vector: every
// category zero-initialized, mapped labels written in, the whole vector
// rescaled to unit sum when any mass is present.
func (t *LabelTable) Normalize(raw RawClassification) Vector {
	vec := make(Vector, len(t.categories))
	for _, cat := range t.categories {
		vec[cat] = 0
	}

	for _, ls := range raw {
		cat, ok := t.Resolve(ls.Label)
		if !ok {
			// unknown labels are expected backend noise
			continue
		}
		// last-write-wins: backends emit at most one label per category
		vec[cat] = ls.Score
	}

	total := 0.0
	for _, score := range vec {
		total += score
	}
	if total > 0 {
		for cat := range vec {
			vec[cat] /= total
		}
	}

	return vec
}
