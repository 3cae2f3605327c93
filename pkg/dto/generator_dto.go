package dto

// GenerateRequest describes a homework generation request.
type GenerateRequest struct {
	Subject    string `json:"subject" validate:"required,min=1"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=EASY MEDIUM HARD MIXED"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=20"`
}

// GeneratedProblemResponse is a single generated exercise. Generated
// problems are not persisted until the caller attaches them to an
// assignment.
type GeneratedProblemResponse struct {
	Question   string `json:"question"`
	Answer     string `json:"answer,omitempty"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic,omitempty"`
}

// GenerateResponse wraps a generated problem set.
type GenerateResponse struct {
	Problems []GeneratedProblemResponse `json:"problems"`
	Count    int                        `json:"count"`
}
