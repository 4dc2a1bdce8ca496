package whisper

import "strings"

// Model selects the speech-recognition model size. Larger models trade
// inference speed for transcription accuracy.
type Model string

const (
	ModelTiny   Model = "tiny"
	ModelBase   Model = "base"
	ModelSmall  Model = "small"
	ModelMedium Model = "medium"
	ModelLarge  Model = "large"
)

// DefaultModel balances speed and accuracy for everyday transcription.
const DefaultModel = ModelBase

var allModels = []Model{ModelTiny, ModelBase, ModelSmall, ModelMedium, ModelLarge}

// AllModels returns the ordered list of supported model sizes.
func AllModels() []Model {
	cp := make([]Model, len(allModels))
	copy(cp, allModels)
	return cp
}

// ParseModel converts a string into a known Model.
func ParseModel(value string) (Model, bool) {
	normalized := Model(strings.ToLower(strings.TrimSpace(value)))
	for _, model := range allModels {
		if model == normalized {
			return model, true
		}
	}
	return "", false
}

// ModelNames returns the supported model selectors for help and error text.
func ModelNames() string {
	names := make([]string, len(allModels))
	for i, model := range allModels {
		names[i] = string(model)
	}
	return strings.Join(names, ", ")
}

func (m Model) String() string {
	return string(m)
}

// Spec documents the latency/accuracy trade-off of one model size.
type Spec struct {
	Model         Model
	Parameters    string
	Memory        string
	RelativeSpeed string
	Notes         string
}

var specs = []Spec{
	{ModelTiny, "39M", "~1 GB", "~10x", "fastest, lowest accuracy"},
	{ModelBase, "74M", "~1 GB", "~7x", "good speed/accuracy balance (default)"},
	{ModelSmall, "244M", "~2 GB", "~4x", "better accuracy, moderate speed"},
	{ModelMedium, "769M", "~5 GB", "~2x", "high accuracy, slower"},
	{ModelLarge, "1550M", "~10 GB", "1x", "best accuracy, slowest"},
}

// Specs returns the model-size reference table in display order.
func Specs() []Spec {
	cp := make([]Spec, len(specs))
	copy(cp, specs)
	return cp
}
