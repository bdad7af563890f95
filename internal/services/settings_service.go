package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shoppingapp-backend/config"
	"shoppingapp-backend/internal/ai"
	"shoppingapp-backend/internal/models"
)

// Setting keys. Model selection is per task category: tax lookup, price-tag
// identification, and a shared model for the remaining text tasks.
const (
	SettingModelTaxRate  = "model.tax_rate"
	SettingModelPriceTag = "model.price_tag"
	SettingModelGeneric  = "model.generic"

	SettingKeyOpenAI     = "apikey.openai"
	SettingKeyPerplexity = "apikey.perplexity"
	SettingKeyGemini     = "apikey.gemini"
)

// Model defaults applied until the user picks something else.
const (
	defaultTaxRateModel  = "sonar"
	defaultPriceTagModel = "gpt-4o-mini"
	defaultGenericModel  = "gemini-2.0-flash"
)

// SettingsService persists user-tunable scalars (model selection, API keys)
// and supplies provider credentials to the request builder. Saved keys win
// over the environment fallbacks from config.
type SettingsService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewSettingsService(db *gorm.DB, cfg *config.Config) *SettingsService {
	return &SettingsService{db: db, cfg: cfg}
}

// Get returns the stored value for key, or "" when unset.
func (s *SettingsService) Get(key string) (string, error) {
	var setting models.Setting
	err := s.db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// Set stores a value under key, overwriting any previous value.
func (s *SettingsService) Set(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// ModelFor returns the selected model id for a task kind, falling back to
// the built-in default for its category.
func (s *SettingsService) ModelFor(kind ai.TaskKind) (string, error) {
	key := SettingModelGeneric
	fallback := defaultGenericModel
	switch kind {
	case ai.TaskTaxRateLookup:
		key = SettingModelTaxRate
		fallback = defaultTaxRateModel
	case ai.TaskPriceTagAnalysis:
		key = SettingModelPriceTag
		fallback = defaultPriceTagModel
	}

	value, err := s.Get(key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return fallback, nil
	}
	return value, nil
}

// APIKey implements ai.KeyResolver. An empty return means no credential is
// configured for the family, which the builder reports as a config error.
func (s *SettingsService) APIKey(family ai.ProviderFamily) string {
	var key, fallback string
	switch family {
	case ai.FamilyOpenAI:
		key, fallback = SettingKeyOpenAI, s.cfg.OpenAIKey
	case ai.FamilyPerplexity:
		key, fallback = SettingKeyPerplexity, s.cfg.PerplexityKey
	case ai.FamilyGemini:
		key, fallback = SettingKeyGemini, s.cfg.GeminiKey
	default:
		return ""
	}

	value, err := s.Get(key)
	if err != nil || value == "" {
		return fallback
	}
	return value
}
