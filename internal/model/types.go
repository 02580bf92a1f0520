package model

type Metadata struct {
	InputName   string   `json:"input_name" yaml:"input_name"`
	OutputName  string   `json:"output_name" yaml:"output_name"`
	InputShape  []int64  `json:"input_shape" yaml:"input_shape"`
	OutputShape []int64  `json:"output_shape" yaml:"output_shape"`
	Classes     []string `json:"classes" yaml:"classes"`
	ImageSize   int      `json:"image_size" yaml:"image_size"`
	Invert      bool     `json:"invert" yaml:"invert"`
}

// Prediction is one ranked label. Confidence is a percentage rounded to two
// decimals.
type Prediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

type PredictionResponse struct {
	Prediction string       `json:"prediction"`
	Confidence float64      `json:"confidence"`
	Top5       []Prediction `json:"top_5"`
}

// NewPredictionResponse builds the response body from a ranked, non-empty
// prediction list.
func NewPredictionResponse(ranked []Prediction) *PredictionResponse {
	return &PredictionResponse{
		Prediction: ranked[0].Class,
		Confidence: ranked[0].Confidence,
		Top5:       ranked,
	}
}
