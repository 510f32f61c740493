package cron

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/angelmondragon/labelworks-backend/internal/recurring"
	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/logger"
)

type recurringService interface {
	EnabledClients(ctx context.Context) ([]models.PrivateLabelClient, error)
	TickClient(ctx context.Context, client models.PrivateLabelClient) (recurring.TickResult, error)
}

// RecurringJobParams configures the recurring order generation sweep.
type RecurringJobParams struct {
	Logger    *logger.Logger
	Recurring recurringService
}

// NewRecurringJob constructs the recurring order generation sweep.
func NewRecurringJob(params RecurringJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Recurring == nil {
		return nil, fmt.Errorf("recurring service required")
	}
	return &recurringJob{
		logg:      params.Logger,
		recurring: params.Recurring,
	}, nil
}

type recurringJob struct {
	logg      *logger.Logger
	recurring recurringService
}

func (j *recurringJob) Name() string { return "recurring-orders" }

// Run evaluates every recurring-enabled client. A failed client is logged
// and aggregated but never stops the rest of the sweep.
func (j *recurringJob) Run(ctx context.Context) error {
	clients, err := j.recurring.EnabledClients(ctx)
	if err != nil {
		return fmt.Errorf("list recurring clients: %w", err)
	}

	var errs []error
	generated := 0
	skipped := 0
	for _, client := range clients {
		result, err := j.recurring.TickClient(ctx, client)
		if err != nil {
			errs = append(errs, fmt.Errorf("client %s: %w", client.ID, err))
			continue
		}
		switch result.Outcome {
		case recurring.OutcomeGenerated:
			generated++
		case recurring.OutcomeSkippedNoTemplate:
			skipped++
			clientCtx := j.logg.WithClientID(ctx, client.ID.String())
			j.logg.Warn(clientCtx, "recurring client has no shipped order to clone; period skipped")
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"clients":   len(clients),
		"generated": generated,
		"skipped":   skipped,
		"failed":    len(errs),
	})
	j.logg.Info(logCtx, "recurring sweep complete")
	return multierr.Combine(errs...)
}
