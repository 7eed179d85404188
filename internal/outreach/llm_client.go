package outreach

import "context"

// GenerationRequest is a single-shot text generation call.
type GenerationRequest struct {
	Prompt      string
	Temperature float32
	TopP        float32
	TopK        int32
	MaxTokens   int32
}

// GenerationResponse carries the first candidate's text.
type GenerationResponse struct {
	Text         string
	FinishReason string
}

// TextGenerator abstracts the generative-text provider.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResponse, error)
}
