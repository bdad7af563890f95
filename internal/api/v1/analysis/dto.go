package analysis

type TaxRateRequest struct {
	Location string `json:"location" binding:"max=256"`
}

type TaxRateResponse struct {
	TaxRate       *float64 `json:"tax_rate"`
	Indeterminate bool     `json:"indeterminate"`
}

type PriceTagRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
	Location    string `json:"location" binding:"max=256"`
}

type PriceGuessRequest struct {
	Details  string `json:"details" binding:"max=512"`
	Location string `json:"location" binding:"max=256"`
}

type PriceGuessResponse struct {
	EstimatedPrice *float64 `json:"estimated_price"`
	SourceURL      *string  `json:"source_url"`
	Indeterminate  bool     `json:"indeterminate"`
}

type AdditivesRequest struct {
	Ingredients string `json:"ingredients" binding:"max=8192"`
}
