package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/labelworks-backend/internal/recurring"
	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/logger"
)

type stubRecurringService struct {
	clients  []models.PrivateLabelClient
	results  map[uuid.UUID]recurring.TickResult
	failures map[uuid.UUID]error
	ticked   []uuid.UUID
}

func (s *stubRecurringService) EnabledClients(ctx context.Context) ([]models.PrivateLabelClient, error) {
	return s.clients, nil
}

func (s *stubRecurringService) TickClient(ctx context.Context, client models.PrivateLabelClient) (recurring.TickResult, error) {
	s.ticked = append(s.ticked, client.ID)
	if err, ok := s.failures[client.ID]; ok {
		return recurring.TickResult{}, err
	}
	return s.results[client.ID], nil
}

func TestRecurringJobTicksEveryClient(t *testing.T) {
	clientA := models.PrivateLabelClient{ID: uuid.New(), RecurringEnabled: true}
	clientB := models.PrivateLabelClient{ID: uuid.New(), RecurringEnabled: true}
	svc := &stubRecurringService{
		clients: []models.PrivateLabelClient{clientA, clientB},
		results: map[uuid.UUID]recurring.TickResult{
			clientA.ID: {Outcome: recurring.OutcomeGenerated},
			clientB.ID: {Outcome: recurring.OutcomeNotDue},
		},
	}
	job, err := NewRecurringJob(RecurringJobParams{
		Logger:    logger.New(logger.Options{ServiceName: "cron-test"}),
		Recurring: svc,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(svc.ticked) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(svc.ticked))
	}
}

func TestRecurringJobContinuesPastFailures(t *testing.T) {
	failing := models.PrivateLabelClient{ID: uuid.New(), RecurringEnabled: true}
	healthy := models.PrivateLabelClient{ID: uuid.New(), RecurringEnabled: true}
	svc := &stubRecurringService{
		clients:  []models.PrivateLabelClient{failing, healthy},
		failures: map[uuid.UUID]error{failing.ID: errors.New("db timeout")},
		results: map[uuid.UUID]recurring.TickResult{
			healthy.ID: {Outcome: recurring.OutcomeGenerated},
		},
	}
	job, err := NewRecurringJob(RecurringJobParams{
		Logger:    logger.New(logger.Options{ServiceName: "cron-test"}),
		Recurring: svc,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	runErr := job.Run(context.Background())
	if runErr == nil {
		t.Fatal("expected aggregated error")
	}
	if len(svc.ticked) != 2 {
		t.Fatalf("failure must not stop the sweep, ticked %d", len(svc.ticked))
	}
}
