package items

type CreateListRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Brand       string   `json:"brand"`
	Quantity    int      `json:"quantity"`
	UnitCost    *float64 `json:"unit_cost"`
	Ingredients string   `json:"ingredients"`
}

type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Quantity    *int     `json:"quantity"`
	UnitCost    *float64 `json:"unit_cost"`
	TaxRate     *float64 `json:"tax_rate"`
	Ingredients *string  `json:"ingredients"`
}
