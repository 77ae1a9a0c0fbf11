package models

// ChatRequest is the JSON body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	UserName  string `json:"user_name,omitempty"`
}

// ChatResponse always carries the reply text; errors ride in Reply, the
// endpoint never surfaces a non-200 status.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// UploadResponse is the JSON body returned by POST /upload.
type UploadResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// HealthResponse is the JSON body returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
