package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shoppingapp-backend/internal/database"
	"shoppingapp-backend/internal/models"
)

const exportVersion = 1

// ExportDocument is the portable snapshot of the shopping lists. The
// AI/billing ledger is deliberately NOT part of it: usage accounting is
// per-install and never travels between devices.
type ExportDocument struct {
	Version    int                   `json:"version"`
	ExportedAt time.Time             `json:"exported_at"`
	Lists      []models.ShoppingList `json:"lists"`
}

// ExportSnapshot serializes every shopping list to a portable JSON document.
func ExportSnapshot() ([]byte, error) {
	lists, err := FindShoppingLists()
	if err != nil {
		return nil, err
	}

	doc := ExportDocument{
		Version:    exportVersion,
		ExportedAt: time.Now(),
		Lists:      lists,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportSnapshot replaces the stored shopping lists with the document's.
// Ledger state is untouched regardless of what the document contains.
func ImportSnapshot(data []byte) (int, error) {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse export document: %w", err)
	}
	if doc.Version != exportVersion {
		return 0, fmt.Errorf("unsupported export version %d", doc.Version)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ShoppingItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.ShoppingList{}).Error; err != nil {
			return err
		}
		for i := range doc.Lists {
			list := doc.Lists[i]
			list.ID = 0
			for j := range list.Items {
				list.Items[j].ID = 0
				list.Items[j].ShoppingListID = 0
			}
			if err := tx.Create(&list).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(doc.Lists), nil
}
