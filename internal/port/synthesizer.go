package port

import "context"

// InlineImage is an image passed to the generative model as embedded data.
type InlineImage struct {
	MIME string
	Data []byte
}

// SynthesisRequest carries one chat-style generative call.
type SynthesisRequest struct {
	System      string
	Prompt      string
	Images      []InlineImage
	Temperature float32
	MaxTokens   int
	// ForceJSON requests the provider's strict-JSON response mode.
	ForceJSON bool
}

// Synthesizer abstracts the generative-model service. Implementations return
// the raw completion text; callers decide whether it must parse as JSON.
type Synthesizer interface {
	Complete(ctx context.Context, req SynthesisRequest) (string, error)
}
