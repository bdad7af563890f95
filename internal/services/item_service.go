package services

import (
	"shoppingapp-backend/internal/database"
	"shoppingapp-backend/internal/models"
)

// CreateShoppingList creates an empty named list.
func CreateShoppingList(name string) (*models.ShoppingList, error) {
	list := &models.ShoppingList{Name: name}
	if err := database.DB.Create(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindShoppingLists returns every list with its items.
func FindShoppingLists() ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	err := database.DB.Preload("Items").Order("created_at").Find(&lists).Error
	return lists, err
}

// GetShoppingList loads one list with its items.
func GetShoppingList(id uint) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := database.DB.Preload("Items").First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteShoppingList removes a list and its items.
func DeleteShoppingList(id uint) error {
	return database.DB.Select("Items").Delete(&models.ShoppingList{ID: id}).Error
}

// CreateShoppingItem adds an item to a list.
func CreateShoppingItem(item *models.ShoppingItem) error {
	return database.DB.Create(item).Error
}

// GetShoppingItem loads one item.
func GetShoppingItem(id uint) (*models.ShoppingItem, error) {
	var item models.ShoppingItem
	if err := database.DB.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateShoppingItem saves the full item row.
func UpdateShoppingItem(item *models.ShoppingItem) error {
	return database.DB.Save(item).Error
}

// DeleteShoppingItem removes one item.
func DeleteShoppingItem(id uint) error {
	return database.DB.Delete(&models.ShoppingItem{}, id).Error
}
