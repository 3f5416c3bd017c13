package model

// ScanRequest is the inbound payload for POST /api/scan.
type ScanRequest struct {
	Business  string   `json:"business" binding:"required"`
	Keywords  []string `json:"keywords"`
	Platforms []string `json:"platforms"`
}

// ScanDiagnostics reports how many records survived each pipeline stage.
type ScanDiagnostics struct {
	RawResultsCount int `json:"raw_results_count"`
	ClassifiedCount int `json:"classified_count"`
	FinalCount      int `json:"final_count"`
}

// ScanResponse is the envelope returned for every completed scan. Partial
// upstream failures are reflected in Message and Diagnostics, never in the
// HTTP status.
type ScanResponse struct {
	Success     bool             `json:"success"`
	Intents     []Intent         `json:"intents"`
	Message     string           `json:"message"`
	Diagnostics *ScanDiagnostics `json:"diagnostics,omitempty"`
}

// ChatTurn is a single message in the assistant conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound payload for POST /api/chat.
type ChatRequest struct {
	Messages     []ChatTurn `json:"messages" binding:"required"`
	SystemPrompt string     `json:"systemPrompt"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Message string `json:"message"`
}
