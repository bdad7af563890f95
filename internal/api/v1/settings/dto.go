package settings

type SelectionResponse struct {
	TaxRateModel  string `json:"tax_rate_model"`
	PriceTagModel string `json:"price_tag_model"`
	GenericModel  string `json:"generic_model"`
}

type UpdateSelectionRequest struct {
	TaxRateModel  string `json:"tax_rate_model"`
	PriceTagModel string `json:"price_tag_model"`
	GenericModel  string `json:"generic_model"`
}

type KeysResponse struct {
	OpenAIConfigured     bool `json:"openai_configured"`
	PerplexityConfigured bool `json:"perplexity_configured"`
	GeminiConfigured     bool `json:"gemini_configured"`
}

// UpdateKeysRequest uses pointers so an omitted field leaves the stored key
// untouched while an empty string clears it.
type UpdateKeysRequest struct {
	OpenAIKey     *string `json:"openai_key"`
	PerplexityKey *string `json:"perplexity_key"`
	GeminiKey     *string `json:"gemini_key"`
}
