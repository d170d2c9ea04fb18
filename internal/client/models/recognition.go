package models

import "math"

type RecognizedObject struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Confidence      float64 `json:"confidence"`
	InterestingFact string  `json:"interesting_fact"`
}

// ConfidencePercent rounds confidence to a whole percent.
func (o RecognizedObject) ConfidencePercent() int {
	return int(math.Round(o.Confidence * 100))
}

// RecognitionRequest is the body of POST /statues/recognize.
type RecognitionRequest struct {
	Image string `json:"image"`
}

type RecognitionResult struct {
	Success bool               `json:"success"`
	Objects []RecognizedObject `json:"objects"`
	Error   string             `json:"error,omitempty"`
}

// ModelHealth is the body of GET /statues/health.
type ModelHealth struct {
	ModelLoaded      bool     `json:"model_loaded"`
	AvailableClasses []string `json:"available_classes"`
	Status           string   `json:"status,omitempty"`
}
