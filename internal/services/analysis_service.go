package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shoppingapp-backend/internal/ai"
	"shoppingapp-backend/internal/models"
	"shoppingapp-backend/pkg/logger"
)

// AnalysisService is the entry point for every AI task: it picks the
// configured model for the task category, dispatches, and applies the
// decoded result to the shopping item. NoContent and DecodeFailure are soft
// failures: the item is marked indeterminate and no error propagates, per
// the engine's cost-only-for-usable-answers policy.
type AnalysisService struct {
	db         *gorm.DB
	dispatcher *ai.Dispatcher
	settings   *SettingsService
	cache      *AnalysisCache
}

func NewAnalysisService(db *gorm.DB, dispatcher *ai.Dispatcher, settings *SettingsService, cache *AnalysisCache) *AnalysisService {
	return &AnalysisService{
		db:         db,
		dispatcher: dispatcher,
		settings:   settings,
		cache:      cache,
	}
}

// locationContext renders the optional free-text location supplied by the
// device into prompt form. Blank when the device had no fix.
func locationContext(location string) string {
	if location == "" {
		return ""
	}
	return "in " + location
}

func softFailure(err error) bool {
	return errors.Is(err, ai.ErrNoContent) || errors.Is(err, ai.ErrDecodeFailure)
}

// LookupTaxRate resolves the sales tax rate for an item. An indeterminate
// answer sets the unknown-tax flag, which is distinct from never having
// asked.
func (s *AnalysisService) LookupTaxRate(ctx context.Context, itemID uint, location string) (*ai.TaxRateResult, error) {
	item, err := GetShoppingItem(itemID)
	if err != nil {
		return nil, err
	}

	modelID, err := s.settings.ModelFor(ai.TaskTaxRateLookup)
	if err != nil {
		return nil, err
	}

	var result ai.TaxRateResult
	_, err = s.dispatcher.Dispatch(ctx, ai.TaskInput{
		Kind:    ai.TaskTaxRateLookup,
		ModelID: modelID,
		Values: map[string]string{
			"itemName":        item.Name,
			"locationContext": locationContext(location),
		},
		Subject: item.Name,
	}, &result)
	if err != nil {
		if softFailure(err) {
			item.TaxRate = nil
			item.UnknownTax = true
			if saveErr := UpdateShoppingItem(item); saveErr != nil {
				return nil, saveErr
			}
			return nil, nil
		}
		return nil, err
	}

	item.TaxRate = result.TaxRate
	item.UnknownTax = result.TaxRate == nil
	if err := UpdateShoppingItem(item); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzePriceTag reads a captured price-tag photo and creates an item on
// the list from whatever the model could read. The image travels inline;
// there is no upload step.
func (s *AnalysisService) AnalyzePriceTag(ctx context.Context, listID uint, image []byte, location string) (*models.ShoppingItem, error) {
	if len(image) == 0 {
		return nil, errors.New("no image supplied")
	}

	modelID, err := s.settings.ModelFor(ai.TaskPriceTagAnalysis)
	if err != nil {
		return nil, err
	}

	var result ai.PriceTagResult
	_, err = s.dispatcher.Dispatch(ctx, ai.TaskInput{
		Kind:    ai.TaskPriceTagAnalysis,
		ModelID: modelID,
		Values: map[string]string{
			"locationContext": locationContext(location),
		},
		Image: image,
	}, &result)
	if err != nil {
		if softFailure(err) {
			return nil, nil
		}
		return nil, err
	}

	if result.Name == "" {
		result.Name = "Unrecognized item"
	}

	item := &models.ShoppingItem{
		ShoppingListID: listID,
		Name:           result.Name,
		UnitCost:       result.Price,
		TaxRate:        result.TaxRate,
		UnknownTax:     result.TaxRate == nil,
	}
	if result.TaxDescription != nil {
		item.TaxDescription = *result.TaxDescription
	}
	if result.Ingredients != nil {
		item.Ingredients = *result.Ingredients
	}

	if err := CreateShoppingItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GuessPrice estimates the typical retail price of an item. A null estimate
// is a valid answer and leaves the item's estimate unset.
func (s *AnalysisService) GuessPrice(ctx context.Context, itemID uint, details, location string) (*ai.PriceGuessResult, error) {
	item, err := GetShoppingItem(itemID)
	if err != nil {
		return nil, err
	}

	modelID, err := s.settings.ModelFor(ai.TaskPriceGuess)
	if err != nil {
		return nil, err
	}

	brand := ""
	if item.Brand != "" {
		brand = fmt.Sprintf("by %s", item.Brand)
	}

	var result ai.PriceGuessResult
	_, err = s.dispatcher.Dispatch(ctx, ai.TaskInput{
		Kind:    ai.TaskPriceGuess,
		ModelID: modelID,
		Values: map[string]string{
			"itemName":        item.Name,
			"brand":           brand,
			"details":         details,
			"locationContext": locationContext(location),
		},
		Subject: item.Name,
	}, &result)
	if err != nil {
		if softFailure(err) {
			return nil, nil
		}
		return nil, err
	}

	item.EstimatedPrice = result.EstimatedPrice
	if result.SourceURL != nil {
		item.PriceSourceURL = *result.SourceURL
	}
	if err := UpdateShoppingItem(item); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeAdditives classifies the additives in an item's ingredient list and
// stores the per-additive breakdown on the item. Results are served from the
// cache when the same product was analyzed recently; a cache hit spends
// nothing and records nothing.
func (s *AnalysisService) AnalyzeAdditives(ctx context.Context, itemID uint, ingredients string) (*ai.AdditiveResult, error) {
	item, err := GetShoppingItem(itemID)
	if err != nil {
		return nil, err
	}

	if ingredients == "" {
		ingredients = item.Ingredients
	}
	if ingredients == "" {
		return nil, errors.New("item has no ingredient list")
	}

	if cached := s.cache.GetAdditives(item.Name); cached != nil {
		logger.Log.Debug("additive analysis served from cache",
			zap.String("item", item.Name))
		if err := s.applyAdditives(item, ingredients, cached); err != nil {
			return nil, err
		}
		return cached, nil
	}

	modelID, err := s.settings.ModelFor(ai.TaskAdditiveAnalysis)
	if err != nil {
		return nil, err
	}

	var result ai.AdditiveResult
	_, err = s.dispatcher.Dispatch(ctx, ai.TaskInput{
		Kind:    ai.TaskAdditiveAnalysis,
		ModelID: modelID,
		Values: map[string]string{
			"itemName":    item.Name,
			"ingredients": ingredients,
		},
		Subject: item.Name,
	}, &result)
	if err != nil {
		if softFailure(err) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.applyAdditives(item, ingredients, &result); err != nil {
		return nil, err
	}
	s.cache.SetAdditives(item.Name, &result)
	return &result, nil
}

func (s *AnalysisService) applyAdditives(item *models.ShoppingItem, ingredients string, result *ai.AdditiveResult) error {
	breakdown, err := json.Marshal(result)
	if err != nil {
		return err
	}
	item.Ingredients = ingredients
	item.RiskyAdditives = len(result.RiskyAdditives)
	item.SafeAdditives = len(result.SafeAdditives)
	item.AdditiveBreakdown = breakdown
	return UpdateShoppingItem(item)
}
