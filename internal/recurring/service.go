package recurring

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service evaluates recurring schedules and persists the drafts they
// produce.
type Service interface {
	EnabledClients(ctx context.Context) ([]models.PrivateLabelClient, error)
	TickClient(ctx context.Context, client models.PrivateLabelClient) (TickResult, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	leadDays int
	now      func() time.Time
}

// NewService builds a recurring service. leadDays is added to a generation
// date to produce the draft's delivery date.
func NewService(repo Repository, tx txRunner, leadDays int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recurring repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if leadDays <= 0 {
		return nil, fmt.Errorf("delivery lead days must be positive")
	}
	return &service{repo: repo, tx: tx, leadDays: leadDays, now: time.Now}, nil
}

func (s *service) EnabledClients(ctx context.Context) ([]models.PrivateLabelClient, error) {
	clients, err := s.repo.ListEnabledClients(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recurring clients")
	}
	return clients, nil
}

// TickClient evaluates one client's schedule and persists the outcome. The
// draft and the watermark advance commit in one transaction, so a crash
// between them cannot double-generate the period.
func (s *service) TickClient(ctx context.Context, client models.PrivateLabelClient) (TickResult, error) {
	now := s.now().UTC()

	already, err := s.repo.ExistsRecurringDraftSince(ctx, client.ID, nextGenerationAt(client, now))
	if err != nil {
		return TickResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check generated period")
	}

	template, err := s.repo.LatestShippedOrder(ctx, client.ID)
	if err != nil {
		return TickResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipped template")
	}

	result, err := Tick(TickInput{
		Client:                   client,
		Template:                 template,
		AlreadyGeneratedInPeriod: already,
		Now:                      now,
		DeliveryLeadDays:         s.leadDays,
	})
	if err != nil {
		return TickResult{}, err
	}
	if result.Draft == nil && result.LastGeneratedAt == nil {
		return result, nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if result.Draft != nil {
			if err := repo.CreateDraft(ctx, result.Draft); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create recurring draft")
			}
		}
		if result.LastGeneratedAt != nil {
			if err := repo.SetLastGeneratedAt(ctx, client.ID, *result.LastGeneratedAt); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advance generation watermark")
			}
		}
		return nil
	})
	if err != nil {
		return TickResult{}, err
	}
	return result, nil
}
