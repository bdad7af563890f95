package ai

import "fmt"

// ProviderFamily identifies one of the three request/response JSON shapes.
// All request and response branching keys off the family, never off the raw
// model id, so adding a model is a table edit.
type ProviderFamily string

const (
	FamilyOpenAI     ProviderFamily = "openai"
	FamilyPerplexity ProviderFamily = "perplexity"
	FamilyGemini     ProviderFamily = "gemini"
)

// DisplayName returns the provider name recorded in interaction history.
func (f ProviderFamily) DisplayName() string {
	switch f {
	case FamilyOpenAI:
		return "OpenAI"
	case FamilyPerplexity:
		return "Perplexity"
	case FamilyGemini:
		return "Gemini"
	}
	return string(f)
}

// Pricing holds per-thousand-token rates in USD.
type Pricing struct {
	InputPerK  float64 `json:"input_per_k"`
	OutputPerK float64 `json:"output_per_k"`
}

// ModelDescriptor is the immutable configuration of one supported model.
type ModelDescriptor struct {
	ID            string         `json:"id"`
	Family        ProviderFamily `json:"family"`
	Endpoint      string         `json:"endpoint"`
	SupportsVision bool          `json:"supports_vision"`
	Pricing       Pricing        `json:"pricing"`
}

// Registry is the static model table. Extending it with a new model requires
// only an entry here; a new provider family additionally needs one case in
// the request builder and one in the response extractor.
type Registry struct {
	models map[string]ModelDescriptor
}

const (
	openAIEndpoint     = "https://api.openai.com/v1/chat/completions"
	perplexityEndpoint = "https://api.perplexity.ai/chat/completions"
	geminiEndpointFmt  = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
)

// NewRegistry builds the default model table.
func NewRegistry() *Registry {
	entries := []ModelDescriptor{
		{
			ID:             "gpt-4o",
			Family:         FamilyOpenAI,
			Endpoint:       openAIEndpoint,
			SupportsVision: true,
			Pricing:        Pricing{InputPerK: 0.0025, OutputPerK: 0.01},
		},
		{
			ID:             "gpt-4o-mini",
			Family:         FamilyOpenAI,
			Endpoint:       openAIEndpoint,
			SupportsVision: true,
			Pricing:        Pricing{InputPerK: 0.00015, OutputPerK: 0.0006},
		},
		{
			ID:             "sonar",
			Family:         FamilyPerplexity,
			Endpoint:       perplexityEndpoint,
			SupportsVision: true,
			Pricing:        Pricing{InputPerK: 0.001, OutputPerK: 0.001},
		},
		{
			ID:             "sonar-pro",
			Family:         FamilyPerplexity,
			Endpoint:       perplexityEndpoint,
			SupportsVision: true,
			Pricing:        Pricing{InputPerK: 0.003, OutputPerK: 0.015},
		},
		{
			ID:             "gemini-2.0-flash",
			Family:         FamilyGemini,
			Endpoint:       fmt.Sprintf(geminiEndpointFmt, "gemini-2.0-flash"),
			SupportsVision: true,
			Pricing:        Pricing{InputPerK: 0.0001, OutputPerK: 0.0004},
		},
		{
			ID:             "gemini-1.5-flash",
			Family:         FamilyGemini,
			Endpoint:       fmt.Sprintf(geminiEndpointFmt, "gemini-1.5-flash"),
			SupportsVision: true,
			Pricing:        Pricing{InputPerK: 0.000075, OutputPerK: 0.0003},
		},
	}

	m := make(map[string]ModelDescriptor, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return &Registry{models: m}
}

// Resolve maps a model id to its descriptor. An unknown id is a ConfigError,
// never a panic: user settings may reference a model that has since been
// removed from the table.
func (r *Registry) Resolve(modelID string) (ModelDescriptor, error) {
	desc, ok := r.models[modelID]
	if !ok {
		return ModelDescriptor{}, fmt.Errorf("resolve %q: %w", modelID, ErrUnknownModel)
	}
	return desc, nil
}

// SupportsVision reports whether the model accepts inline image input.
// Unknown models report false; call sites must still reject image input for
// them via Resolve.
func (r *Registry) SupportsVision(modelID string) bool {
	desc, ok := r.models[modelID]
	return ok && desc.SupportsVision
}

// Models returns every descriptor, for the settings UI.
func (r *Registry) Models() []ModelDescriptor {
	out := make([]ModelDescriptor, 0, len(r.models))
	for _, d := range r.models {
		out = append(out, d)
	}
	return out
}
