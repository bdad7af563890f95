package models

import (
	"time"

	"gorm.io/datatypes"
)

// ShoppingList groups items the way the mobile app shows them: one list per
// shopping trip or store.
type ShoppingList struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Name      string         `gorm:"not null" json:"name"`
	Items     []ShoppingItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// ShoppingItem is the consumer-facing entity AI task results are applied to.
// TaxRate and EstimatedPrice stay nil until a lookup resolves them; UnknownTax
// marks an indeterminate answer, which is distinct from "never asked".
type ShoppingItem struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ShoppingListID uint       `gorm:"index;not null" json:"shopping_list_id"`
	Name           string     `gorm:"not null" json:"name"`
	Brand          string     `json:"brand"`
	Quantity       int        `gorm:"default:1" json:"quantity"`
	UnitCost       *float64   `json:"unit_cost"`
	EstimatedPrice *float64   `json:"estimated_price"`
	PriceSourceURL string     `json:"price_source_url"`
	TaxRate        *float64   `json:"tax_rate"`
	TaxDescription string     `json:"tax_description"`
	UnknownTax     bool       `gorm:"default:false" json:"unknown_tax"`
	Ingredients    string     `gorm:"type:text" json:"ingredients"`
	RiskyAdditives int        `gorm:"default:0" json:"risky_additives"`
	SafeAdditives  int        `gorm:"default:0" json:"safe_additives"`
	// AdditiveBreakdown holds the last decoded additive-analysis result so the
	// app can render the per-additive detail without re-dispatching.
	AdditiveBreakdown datatypes.JSON `json:"additive_breakdown" swaggertype:"object"`
}
