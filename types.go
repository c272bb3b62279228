package emotion

import "time"

// Category is a canonical emotion category. The set of categories in play is
// a property of the active LabelTable, not a global constant: the local
// pipeline produces six, the multimodal gateway adds Fearful and Contempt.
type Category string

const (
	CategoryHappy     Category = "Happy"
	CategorySad       Category = "Sad"
	CategoryAngry     Category = "Angry"
	CategorySurprised Category = "Surprised"
	CategoryDisgusted Category = "Disgusted"
	CategoryFearful   Category = "Fearful"
	CategoryContempt  Category = "Contempt"
	CategoryNeutral   Category = "Neutral"
)

// Intensity buckets a score into a coarse strength band for display
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// AnalysisType identifies which input modality produced a result
type AnalysisType string

const (
	AnalysisText     AnalysisType = "text"
	AnalysisVideo    AnalysisType = "video"
	AnalysisCombined AnalysisType = "combined"
)

// LabelScore is a single raw (label, score) pair as returned by a backend.
// The label vocabulary is backend-specific and unvalidated at this point.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// RawClassification is the unordered raw output of a classifier backend.
// Scores may not sum to 1 and labels may fall outside the canonical set.
type RawClassification []LabelScore

// Vector maps every category of the active set to a score in [0,1].
// When total raw mass is positive the scores sum to 1; otherwise all zero.
type Vector map[Category]float64

// Emotion is one display entry of an analysis result
type Emotion struct {
	Name      Category  `json:"name"`
	Score     float64   `json:"score"`
	Intensity Intensity `json:"intensity"`
}

// EmotionData is the aggregated analysis result. It is immutable once
// produced; callers hand it to presentation or persistence unchanged.
type EmotionData struct {
	// Emotions is sorted descending by score; ties keep canonical order
	Emotions []Emotion `json:"emotions"`

	// DominantEmotion is the top-scoring category, Neutral for an all-zero vector
	DominantEmotion Category `json:"dominant_emotion"`

	// MixedEmotions lists categories scoring strictly above the mixed-emotion
	// threshold, in sorted order
	MixedEmotions []Category `json:"mixed_emotions"`

	// Confidence is the dominant category's score, 0 for an all-zero vector
	Confidence float64 `json:"confidence"`

	// AnalysisSummary is a human-readable one-sentence description
	AnalysisSummary string `json:"analysis_summary"`
}

// Record is a persisted analysis, as stored by a HistoryStore
type Record struct {
	ID           string       `json:"id"`
	AnalysisType AnalysisType `json:"analysis_type"`

	// InputText echoes the analyzed text, empty for image-only analyses
	InputText string `json:"input_text,omitempty"`

	Result    EmotionData `json:"result"`
	CreatedAt time.Time   `json:"created_at"`
}

// CombinedResult holds the outcome of a combined text+image analysis. The two
// modalities run independently; each side carries its own result or error.
type CombinedResult struct {
	Text     *EmotionData
	TextErr  error
	Image    *EmotionData
	ImageErr error
}

// Metrics provides statistics about the analyzer's activity
type Metrics struct {
	// TextAnalyses is the number of completed text analyses
	TextAnalyses int

	// ImageAnalyses is the number of completed image analyses
	ImageAnalyses int

	// HistoryWrites is the number of records handed to the history store
	HistoryWrites int
}
