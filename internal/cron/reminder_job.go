package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/angelmondragon/labelworks-backend/internal/notifications"
	"github.com/angelmondragon/labelworks-backend/internal/orders"
	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	"github.com/angelmondragon/labelworks-backend/pkg/logger"
)

const reminderWindowDays = 7

type reminderOrdersRepo interface {
	ListDueForReminder(ctx context.Context, cutoff time.Time) ([]models.ClientOrder, error)
	ClaimReminderFlag(ctx context.Context, orderID uuid.UUID) (bool, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, req notifications.Request) error
}

// ReminderJobParams configures the seven-day delivery reminder sweep.
type ReminderJobParams struct {
	Logger     *logger.Logger
	Orders     reminderOrdersRepo
	Dispatcher dispatcher
}

// NewReminderJob constructs the daily delivery reminder sweep.
func NewReminderJob(params ReminderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher required")
	}
	return &reminderJob{
		logg:       params.Logger,
		orders:     params.Orders,
		dispatcher: params.Dispatcher,
		machine:    orders.NewMachine(),
		now:        time.Now,
	}, nil
}

type reminderJob struct {
	logg       *logger.Logger
	orders     reminderOrdersRepo
	dispatcher dispatcher
	machine    *orders.Machine
	now        func() time.Time
}

func (j *reminderJob) Name() string { return "seven-day-reminder" }

// Run sweeps orders delivering within the reminder window. The flag claim is
// an atomic conditional update, so a concurrent sweep of the same order sends
// nothing twice; one failed order never aborts the batch.
func (j *reminderJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	cutoff := now.AddDate(0, 0, reminderWindowDays)

	due, err := j.orders.ListDueForReminder(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("query reminder candidates: %w", err)
	}

	var errs []error
	sent := 0
	for i := range due {
		order := &due[i]
		if !j.machine.ReminderDue(order, now) {
			continue
		}
		if err := j.remind(ctx, order); err != nil {
			errs = append(errs, fmt.Errorf("order %s: %w", order.ID, err))
			continue
		}
		sent++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"candidates": len(due),
		"sent":       sent,
		"failed":     len(errs),
	})
	j.logg.Info(logCtx, "reminder sweep complete")
	return multierr.Combine(errs...)
}

func (j *reminderJob) remind(ctx context.Context, order *models.ClientOrder) error {
	claimed, err := j.orders.ClaimReminderFlag(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("claim reminder flag: %w", err)
	}
	if !claimed {
		return nil
	}
	req := notifications.Request{
		Kind:     enums.NotificationKindSevenDayReminder,
		OrderID:  order.ID,
		ClientID: order.ClientID,
	}
	if err := j.dispatcher.Dispatch(ctx, req); err != nil {
		return fmt.Errorf("dispatch reminder: %w", err)
	}
	return nil
}
