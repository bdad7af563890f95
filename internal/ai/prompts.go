package ai

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shoppingapp-backend/internal/models"
)

// Built-in prompt templates. Placeholders are literal {name} tokens; the
// templates instruct the model to answer with strict JSON, which the
// response extractor then digs out of whatever prose comes back.
var defaultTemplates = map[TaskKind]string{
	TaskTaxRateLookup: "What is the sales tax rate applied to \"{itemName}\" {locationContext}? " +
		"Respond ONLY with JSON in the form {\"taxRate\": <number>} where taxRate is the " +
		"percentage as a number. If the rate cannot be determined, respond with {\"taxRate\": null}.",
	TaskPriceTagAnalysis: "Analyze the attached photo of a price tag {locationContext}. " +
		"Respond ONLY with JSON in the form {\"name\": <string>, \"price\": <number|null>, " +
		"\"taxRate\": <number|null>, \"taxDescription\": <string|null>, \"ingredients\": <string|null>}. " +
		"Use null for anything you cannot read from the tag.",
	TaskPriceGuess: "Estimate the current typical retail price of \"{itemName}\" {brand} {details} {locationContext}. " +
		"Respond ONLY with JSON in the form {\"estimatedPrice\": <number|null>, \"sourceURL\": <string|null>}. " +
		"Use null if no reasonable estimate exists.",
	TaskAdditiveAnalysis: "Review the ingredient list of \"{itemName}\": {ingredients}. " +
		"Classify each food additive. Respond ONLY with JSON in the form " +
		"{\"riskyAdditives\": [{\"name\": <string>, \"riskLevel\": <string>, \"description\": <string>}], " +
		"\"safeAdditives\": [{\"name\": <string>, \"description\": <string>}]}. " +
		"Use empty arrays when nothing applies.",
}

var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z][a-zA-Z0-9]*\}`)

// RenderTemplate substitutes every {name} token with its value. Missing
// values substitute as the empty string rather than surviving as literal
// tokens: several placeholders (brand, details, locationContext) are
// frequently blank.
func RenderTemplate(body string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(body, func(token string) string {
		name := strings.Trim(token, "{}")
		return values[name]
	})
}

// TemplateStore resolves the effective prompt template per task kind:
// the user override when one is saved and enabled, else the built-in
// default.
type TemplateStore struct {
	db *gorm.DB
}

func NewTemplateStore(db *gorm.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Default returns the built-in template for the kind.
func (s *TemplateStore) Default(kind TaskKind) string {
	return defaultTemplates[kind]
}

// GetEffective returns the template that will actually be rendered.
func (s *TemplateStore) GetEffective(kind TaskKind) (string, error) {
	var override models.PromptOverride
	err := s.db.First(&override, "task_kind = ?", string(kind)).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return defaultTemplates[kind], nil
		}
		return "", fmt.Errorf("load prompt override: %w", err)
	}
	if !override.Enabled || override.Body == "" {
		return defaultTemplates[kind], nil
	}
	return override.Body, nil
}

// Render resolves the effective template for the kind and substitutes the
// given placeholder values.
func (s *TemplateStore) Render(kind TaskKind, values map[string]string) (string, error) {
	body, err := s.GetEffective(kind)
	if err != nil {
		return "", err
	}
	return RenderTemplate(body, values), nil
}

// SetOverride saves a custom template body and its enabled flag.
func (s *TemplateStore) SetOverride(kind TaskKind, body string, enabled bool) error {
	override := models.PromptOverride{
		TaskKind: string(kind),
		Body:     body,
		Enabled:  enabled,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "enabled", "updated_at"}),
	}).Create(&override).Error
}

// GetOverride returns the stored override for the kind, if any.
func (s *TemplateStore) GetOverride(kind TaskKind) (*models.PromptOverride, error) {
	var override models.PromptOverride
	err := s.db.First(&override, "task_kind = ?", string(kind)).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &override, nil
}

// Reset restores the built-in default for one kind and clears the enabled
// flag. The override row is kept disabled rather than deleted so a user can
// re-enable an old edit.
func (s *TemplateStore) Reset(kind TaskKind) error {
	return s.db.Model(&models.PromptOverride{}).
		Where("task_kind = ?", string(kind)).
		Update("enabled", false).Error
}

// ResetAll restores the built-in defaults for every kind.
func (s *TemplateStore) ResetAll() error {
	return s.db.Model(&models.PromptOverride{}).
		Where("1 = 1").
		Update("enabled", false).Error
}
