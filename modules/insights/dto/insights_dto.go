package dto

// AskRequest carries one natural-language question about meeting data.
type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Data     any    `json:"data,omitempty"`
}
