package ledger

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shoppingapp-backend/internal/models"
)

// HistoryLimit bounds the visible interaction history. Truncation affects
// only the retained record list; the monotonic totals in BillingState are
// incremented at record time and survive any truncation or clearing.
const HistoryLimit = 20

// Ledger is the durable usage and cost accounting subsystem. All writes are
// serialized through a single mutex and applied inside one transaction, so
// concurrent dispatches can never leave counts and costs out of sync.
type Ledger struct {
	mu sync.Mutex
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Summary is the derived view the billing screen renders.
type Summary struct {
	TotalSpent       float64               `json:"total_spent"`
	TotalCount       int64                 `json:"total_count"`
	ManualAdjustment float64               `json:"manual_adjustment"`
	BudgetAmount     *float64              `json:"budget_amount"`
	RemainingBudget  *float64              `json:"remaining_budget"`
	UsedFraction     float64               `json:"used_fraction"`
	Categories       []models.CategoryStat `json:"categories"`
}

// NewRecord builds an interaction record with a fresh id and timestamp.
func NewRecord(taskKind, promptText, responseText, subjectName, providerName, modelID string, cost float64, inputTokens, outputTokens int) *models.InteractionRecord {
	return &models.InteractionRecord{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now(),
		TaskKind:     taskKind,
		PromptText:   promptText,
		ResponseText: responseText,
		Cost:         cost,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		SubjectName:  subjectName,
		ProviderName: providerName,
		ModelID:      modelID,
	}
}

// Record appends one completed interaction: inserts the history row,
// increments the monotonic totals and the matching category accumulators,
// then truncates the display history to the newest HistoryLimit rows. The
// whole update is one transaction.
func (l *Ledger) Record(rec *models.InteractionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("insert interaction record: %w", err)
		}

		state, err := billingState(tx)
		if err != nil {
			return err
		}
		state.TotalSpent += rec.Cost
		state.TotalCount++
		if err := tx.Save(state).Error; err != nil {
			return fmt.Errorf("update billing state: %w", err)
		}

		var stat models.CategoryStat
		err = tx.First(&stat, "task_kind = ?", rec.TaskKind).Error
		if err == gorm.ErrRecordNotFound {
			stat = models.CategoryStat{TaskKind: rec.TaskKind}
		} else if err != nil {
			return fmt.Errorf("load category stat: %w", err)
		}
		stat.Count++
		stat.Cost += rec.Cost
		if err := tx.Save(&stat).Error; err != nil {
			return fmt.Errorf("update category stat: %w", err)
		}

		return truncateHistory(tx)
	})
}

// historyOrder sorts newest first. Timestamps can collide within a burst,
// so the sqlite rowid breaks ties by insertion order.
const historyOrder = "created_at desc, rowid desc"

func truncateHistory(tx *gorm.DB) error {
	var keep []string
	err := tx.Model(&models.InteractionRecord{}).
		Order(historyOrder).
		Limit(HistoryLimit).
		Pluck("id", &keep).Error
	if err != nil {
		return fmt.Errorf("select retained history: %w", err)
	}
	if len(keep) < HistoryLimit {
		return nil
	}
	return tx.Where("id NOT IN ?", keep).
		Delete(&models.InteractionRecord{}).Error
}

// History returns the visible interaction records, newest first.
func (l *Ledger) History() ([]models.InteractionRecord, error) {
	var records []models.InteractionRecord
	err := l.db.Order(historyOrder).Find(&records).Error
	return records, err
}

// DeleteRecord removes a single history entry. Totals are untouched: the
// spend already happened.
func (l *Ledger) DeleteRecord(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db.Delete(&models.InteractionRecord{}, "id = ?", id).Error
}

// ClearDisplayHistory empties the visible record list without altering the
// cumulative totals or category accumulators. Distinct from ResetBilling:
// a user can tidy the history screen without losing audit totals.
func (l *Ledger) ClearDisplayHistory() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db.Where("1 = 1").Delete(&models.InteractionRecord{}).Error
}

// ResetBilling is the single destructive reset: it zeroes the totals, the
// category accumulators and the manual adjustment, and empties history.
func (l *Ledger) ResetBilling() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		state, err := billingState(tx)
		if err != nil {
			return err
		}
		state.TotalSpent = 0
		state.TotalCount = 0
		state.ManualAdjustment = 0
		if err := tx.Save(state).Error; err != nil {
			return fmt.Errorf("reset billing state: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.CategoryStat{}).Error; err != nil {
			return fmt.Errorf("reset category stats: %w", err)
		}
		return tx.Where("1 = 1").Delete(&models.InteractionRecord{}).Error
	})
}

// SetBudget sets the user budget; nil clears it.
func (l *Ledger) SetBudget(amount *float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		state, err := billingState(tx)
		if err != nil {
			return err
		}
		if amount == nil {
			state.BudgetAmount = 0
			state.BudgetSet = false
		} else {
			state.BudgetAmount = *amount
			state.BudgetSet = true
		}
		return tx.Save(state).Error
	})
}

// SetManualAdjustment stores a signed offset reconciling the tracked total
// with a real external invoice, without discarding the category breakdown.
func (l *Ledger) SetManualAdjustment(amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		state, err := billingState(tx)
		if err != nil {
			return err
		}
		state.ManualAdjustment = amount
		return tx.Save(state).Error
	})
}

// SetTotalSpentOverride solves for and stores the manual-adjustment delta so
// that totalSpent + manualAdjustment equals the given amount. The underlying
// per-category breakdown is preserved.
func (l *Ledger) SetTotalSpentOverride(amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		state, err := billingState(tx)
		if err != nil {
			return err
		}
		state.ManualAdjustment = amount - state.TotalSpent
		return tx.Save(state).Error
	})
}

// Summary computes the derived billing projections.
func (l *Ledger) Summary() (*Summary, error) {
	state, err := billingState(l.db)
	if err != nil {
		return nil, err
	}

	var categories []models.CategoryStat
	if err := l.db.Order("task_kind").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("load category stats: %w", err)
	}

	s := &Summary{
		TotalSpent:       state.TotalSpent,
		TotalCount:       state.TotalCount,
		ManualAdjustment: state.ManualAdjustment,
		Categories:       categories,
	}

	if state.BudgetSet {
		budget := state.BudgetAmount
		s.BudgetAmount = &budget

		remaining := budget - (state.TotalSpent + state.ManualAdjustment)
		if remaining < 0 {
			remaining = 0
		}
		s.RemainingBudget = &remaining

		if budget > 0 {
			used := (state.TotalSpent + state.ManualAdjustment) / budget
			s.UsedFraction = math.Min(math.Max(used, 0), 1)
		}
	}

	return s, nil
}

// EstimatedRemainingCount projects how many more calls of the given category
// fit in the remaining budget, based on the category's average historical
// cost. The second return is false when the projection is unknown: no
// budget, nothing remaining, or no history for the category. Unknown is
// deliberately distinct from a known zero.
func (l *Ledger) EstimatedRemainingCount(taskKind string) (int64, bool, error) {
	summary, err := l.Summary()
	if err != nil {
		return 0, false, err
	}
	if summary.RemainingBudget == nil || *summary.RemainingBudget <= 0 {
		return 0, false, nil
	}

	for _, stat := range summary.Categories {
		if stat.TaskKind != taskKind || stat.Count == 0 {
			continue
		}
		avg := stat.Cost / float64(stat.Count)
		if avg <= 0 {
			return 0, false, nil
		}
		return int64(math.Floor(*summary.RemainingBudget / avg)), true, nil
	}
	return 0, false, nil
}

// billingState loads the singleton state row, creating it on first use.
func billingState(tx *gorm.DB) (*models.BillingState, error) {
	var state models.BillingState
	err := tx.First(&state).Error
	if err == gorm.ErrRecordNotFound {
		state = models.BillingState{ID: 1}
		if err := tx.Create(&state).Error; err != nil {
			return nil, fmt.Errorf("create billing state: %w", err)
		}
		return &state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load billing state: %w", err)
	}
	return &state, nil
}
