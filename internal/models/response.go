package models

// Envelope is the uniform response body for every endpoint under /api.
// Failures are signaled in-band with success=false and an HTTP 200, so
// callers must check Success rather than the status code.
type Envelope struct {
	Success bool        `json:"success"`
	Content interface{} `json:"content,omitempty"`
	Message string      `json:"message,omitempty"`
}

func OK(content interface{}) Envelope {
	return Envelope{Success: true, Content: content}
}

func OKMessage(content interface{}, message string) Envelope {
	return Envelope{Success: true, Content: content, Message: message}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// LikeState is the content of a toggle-like response.
type LikeState struct {
	CreationID int64    `json:"creation_id"`
	Liked      bool     `json:"liked"`
	Likes      []string `json:"likes"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
