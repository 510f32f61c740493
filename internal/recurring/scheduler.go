package recurring

import (
	"time"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
)

// Outcome classifies what a scheduler tick decided for one client.
type Outcome string

const (
	// OutcomeNotDue means the next generation date has not arrived yet.
	OutcomeNotDue Outcome = "not_due"
	// OutcomeDisabled means the client has recurring orders switched off.
	OutcomeDisabled Outcome = "disabled"
	// OutcomeAlreadyGenerated means this period's draft already exists.
	OutcomeAlreadyGenerated Outcome = "already_generated"
	// OutcomeSkippedNoTemplate means the period advanced with no draft
	// because the client has never shipped an order to clone.
	OutcomeSkippedNoTemplate Outcome = "skipped_no_template"
	// OutcomeGenerated means a draft order was produced.
	OutcomeGenerated Outcome = "generated"
)

// TickInput is the snapshot a scheduler tick evaluates. Template is the
// client's most recent shipped order, nil when none exists.
type TickInput struct {
	Client                   models.PrivateLabelClient
	Template                 *models.ClientOrder
	AlreadyGeneratedInPeriod bool
	Now                      time.Time
	DeliveryLeadDays         int
}

// TickResult carries the decision plus the mutations to persist: the draft
// to create (nil unless generated) and the advanced generation watermark
// (nil when the schedule is untouched).
type TickResult struct {
	Outcome         Outcome
	Draft           *models.ClientOrder
	LastGeneratedAt *time.Time
}

// Tick evaluates one client's recurring schedule. Pure and deterministic:
// calling it twice with the same input yields the same result, and the
// AlreadyGeneratedInPeriod flag makes repeated sweeps of the same period
// no-ops.
func Tick(input TickInput) (TickResult, error) {
	client := input.Client
	if !client.RecurringEnabled {
		return TickResult{Outcome: OutcomeDisabled}, nil
	}
	if !client.RecurringInterval.IsValid() {
		return TickResult{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown recurrence interval").
			WithDetails(map[string]any{"interval": client.RecurringInterval.String()})
	}

	nextGeneration := nextGenerationAt(client, input.Now)
	if input.Now.Before(nextGeneration) {
		return TickResult{Outcome: OutcomeNotDue}, nil
	}
	if input.AlreadyGeneratedInPeriod {
		return TickResult{Outcome: OutcomeAlreadyGenerated}, nil
	}

	generatedAt := nextGeneration
	if input.Template == nil {
		return TickResult{
			Outcome:         OutcomeSkippedNoTemplate,
			LastGeneratedAt: &generatedAt,
		}, nil
	}

	draft := buildDraft(client, input.Template, nextGeneration, input.DeliveryLeadDays)
	return TickResult{
		Outcome:         OutcomeGenerated,
		Draft:           draft,
		LastGeneratedAt: &generatedAt,
	}, nil
}

// nextGenerationAt computes when the client's next draft is owed. A client
// with no watermark is due immediately.
func nextGenerationAt(client models.PrivateLabelClient, now time.Time) time.Time {
	if client.LastGeneratedAt == nil {
		return now
	}
	return client.LastGeneratedAt.AddDate(0, client.RecurringInterval.Months(), 0)
}

// buildDraft clones the template's item composition into a fresh waiting
// order. Monetary snapshots carry over untouched: the template's prices were
// already frozen at its own creation.
func buildDraft(client models.PrivateLabelClient, template *models.ClientOrder, generatedAt time.Time, leadDays int) *models.ClientOrder {
	delivery := generatedAt.AddDate(0, 0, leadDays)
	templateID := template.ID

	draft := &models.ClientOrder{
		ClientID:       client.ID,
		Status:         enums.OrderStatusWaiting,
		Subtotal:       template.Subtotal,
		DiscountType:   template.DiscountType,
		DiscountValue:  template.DiscountValue,
		DiscountAmount: template.DiscountAmount,
		Total:          template.Total,
		DeliveryDate:   &delivery,
		IsRecurring:    true,
		ParentOrderID:  &templateID,
	}
	draft.ProductionStartDate = productionStartFor(&delivery)

	draft.Items = make([]models.OrderItem, 0, len(template.Items))
	for _, item := range template.Items {
		draft.Items = append(draft.Items, models.OrderItem{
			ProductID: item.ProductID,
			LabelID:   item.LabelID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
			Selection: item.Selection,
		})
	}
	return draft
}

func productionStartFor(delivery *time.Time) *time.Time {
	start := delivery.AddDate(0, 0, -14)
	return &start
}
