package emotion

const (
	// MixedEmotionThreshold is the score a category must strictly exceed to
	// appear in the mixed-emotion list
	MixedEmotionThreshold = 0.15

	// IntensityMediumMin and IntensityHighMin are the lower bounds of the
	// medium and high intensity buckets
	IntensityMediumMin = 0.34
	IntensityHighMin   = 0.67
)

// Config holds configuration for the Analyzer
type Config struct {
	// TextClassifier handles text input. At least one of TextClassifier and
	// ImageClassifier must be set.
	TextClassifier TextClassifier

	// ImageClassifier handles still-frame input
	ImageClassifier ImageClassifier

	// TextLabels maps the text backend's vocabulary onto canonical categories.
	// If nil, uses the local-pipeline table.
	TextLabels *LabelTable

	// ImageLabels maps the image backend's vocabulary onto canonical
	// categories. If nil, uses the gateway table.
	ImageLabels *LabelTable

	// History receives a record after each successful analysis. If nil,
	// nothing is persisted.
	History HistoryStore
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.TextLabels == nil {
		c.TextLabels = PipelineLabels()
	}

	if c.ImageLabels == nil {
		c.ImageLabels = GatewayLabels()
	}
}
