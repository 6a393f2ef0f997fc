package api

import "encoding/json"

// Label is the verdict category returned by the analysis service.
// The service speaks Korean on the wire; these values must match it exactly.
type Label string

const (
	// LabelFraudulent marks a message the service believes is smishing
	LabelFraudulent Label = "스미싱"

	// LabelNormal marks a message the service believes is legitimate
	LabelNormal Label = "정상"

	// LabelUnknown is returned when the service could not decide
	LabelUnknown Label = "불명"
)

// IsFraudulent reports whether the label is exactly the fraudulent verdict.
// Every other value, including unrecognized ones, is not fraudulent.
func (l Label) IsFraudulent() bool {
	return l == LabelFraudulent
}

// Known reports whether the label is one of the three documented values.
func (l Label) Known() bool {
	switch l {
	case LabelFraudulent, LabelNormal, LabelUnknown:
		return true
	default:
		return false
	}
}

// English returns a display name for the label.
func (l Label) English() string {
	switch l {
	case LabelFraudulent:
		return "fraudulent"
	case LabelNormal:
		return "normal"
	case LabelUnknown:
		return "unknown"
	default:
		return string(l)
	}
}

// AnalysisRequest is the body posted to the analysis endpoint
type AnalysisRequest struct {
	Text      string `json:"text"`
	RequestID string `json:"request_id"`
	Channel   string `json:"channel"`
}

// AnalysisResult carries the verdict and its supporting evidence
type AnalysisResult struct {
	Label   Label           `json:"label"`
	Score   *float64        `json:"score,omitempty"`
	Reasons []string        `json:"reasons"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// AnalysisResponse is the full payload returned for one request
type AnalysisResponse struct {
	RequestID string         `json:"request_id"`
	Result    AnalysisResult `json:"result"`
}

// wireResponse mirrors AnalysisResponse with a pointer result so a missing
// object can be told apart from an empty one while decoding.
type wireResponse struct {
	RequestID string          `json:"request_id"`
	Result    *AnalysisResult `json:"result"`
}
