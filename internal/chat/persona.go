package chat

// GenerationParams carry the sampling configuration attached to every
// request as metadata. They mirror the generationConfig block of the
// generative-language API.
type GenerationParams struct {
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"top_p"`
	TopK            int32   `json:"top_k"`
	MaxOutputTokens int32   `json:"max_output_tokens"`
	ResponseFormat  string  `json:"response_format"`
}

// DefaultGenerationParams returns the parameters used for assistant chat
// when the persona does not override them.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature:     0.1,
		TopP:            0.95,
		TopK:            64,
		MaxOutputTokens: 8192,
		ResponseFormat:  "text/plain",
	}
}

// PersonaConfig is the static behavioral configuration for one assistant
// identity: the system description, a short fixed seed exchange that
// establishes tone before real history begins, and generation parameters.
// It holds no conversation state and must not change for the lifetime of
// a session.
type PersonaConfig struct {
	SystemDescription string
	SeedExchange      []Turn
	Generation        GenerationParams
}
