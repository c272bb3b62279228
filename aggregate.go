package emotion

import (
	"sort"
	"strings"
)

// bucketIntensity maps a score onto a display intensity band
func bucketIntensity(score float64) Intensity {
	switch {
	case score >= IntensityHighMin:
		return IntensityHigh
	case score >= IntensityMediumMin:
		return IntensityMedium
	default:
		return IntensityLow
	}
}

// Aggregate converts a normalized vector into the display result: one entry
// per category with bucketed intensity, stable-sorted descending by score
// (ties keep the table's canonical order), dominant and mixed emotions
// selected, and a one-sentence summary. Pure and total; an all-zero vector
// yields a Neutral result with zero confidence.
func Aggregate(table *LabelTable, vec Vector, modality AnalysisType) EmotionData {
	entries := make([]Emotion, 0, len(table.categories))
	for _, cat := range table.categories {
		score := vec[cat]
		entries = append(entries, Emotion{
			Name:      cat,
			Score:     score,
			Intensity: bucketIntensity(score),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	mixed := make([]Category, 0, len(entries))
	for _, e := range entries {
		if e.Score > MixedEmotionThreshold {
			mixed = append(mixed, e.Name)
		}
	}

	dominant := CategoryNeutral
	confidence := 0.0
	if len(entries) > 0 && entries[0].Score > 0 {
		dominant = entries[0].Name
		confidence = entries[0].Score
	}

	return EmotionData{
		Emotions:        entries,
		DominantEmotion: dominant,
		MixedEmotions:   mixed,
		Confidence:      confidence,
		AnalysisSummary: summarize(table, modality, dominant, mixed),
	}
}

// summarize builds the templated sentence shown to the user. The secondary
// clause appears only when more than one emotion cleared the mixed threshold.
func summarize(table *LabelTable, modality AnalysisType, dominant Category, mixed []Category) string {
	lead := "Text analysis indicates"
	if modality == AnalysisVideo {
		lead = "Facial expression analysis indicates"
	}

	var b strings.Builder
	b.WriteString(lead)
	b.WriteString(" ")
	b.WriteString(strings.ToLower(string(dominant)))

	if len(mixed) > 1 {
		extra := make([]string, 0, len(mixed)-1)
		for _, cat := range mixed {
			if cat == dominant {
				continue
			}
			extra = append(extra, strings.ToLower(string(cat)))
		}
		if len(extra) > 0 {
			b.WriteString(", with additional ")
			b.WriteString(strings.Join(extra, ", "))
		}
	}

	b.WriteString(". ")
	b.WriteString(table.attribution)

	return b.String()
}
