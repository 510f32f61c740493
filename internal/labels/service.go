package labels

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
	"github.com/angelmondragon/labelworks-backend/pkg/validators"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines label lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Label, error)
	Advance(ctx context.Context, input TransitionInput) (*models.Label, error)
	Revert(ctx context.Context, input TransitionInput) (*models.Label, error)
	SetStage(ctx context.Context, input SetStageInput) (*models.Label, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	machine *Machine
}

// CreateInput seeds a new label design for a client flavor.
type CreateInput struct {
	ClientID    uuid.UUID `json:"client_id" validate:"required"`
	FlavorName  string    `json:"flavor_name" validate:"required"`
	ProductType string    `json:"product_type" validate:"required"`
	Actor       string    `json:"actor" validate:"required"`
	ImageURLs   []string  `json:"image_urls"`
}

// TransitionInput identifies a single-step stage move.
type TransitionInput struct {
	LabelID uuid.UUID `json:"label_id" validate:"required"`
	Actor   string    `json:"actor" validate:"required"`
	Notes   *string   `json:"notes"`
}

// SetStageInput identifies an administrative stage jump.
type SetStageInput struct {
	LabelID uuid.UUID        `json:"label_id" validate:"required"`
	Target  enums.LabelStage `json:"target" validate:"required"`
	Actor   string           `json:"actor" validate:"required"`
	Notes   *string          `json:"notes"`
}

// NewService builds a label service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("labels repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, machine: NewMachine()}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Label, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}

	label := &models.Label{
		ClientID:     input.ClientID,
		FlavorName:   input.FlavorName,
		ProductType:  input.ProductType,
		CurrentStage: enums.LabelStageDesignInProgress,
		ImageURLs:    pq.StringArray(input.ImageURLs),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, label); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create label")
		}
		event := s.machine.seedEvent(label, input.Actor)
		if err := repo.AppendStageEvent(ctx, &event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append stage event")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return label, nil
}

func (s *service) Advance(ctx context.Context, input TransitionInput) (*models.Label, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	return s.transition(ctx, input.LabelID, func(label *models.Label) (models.LabelStageEvent, error) {
		return s.machine.Advance(label, input.Actor, input.Notes)
	})
}

func (s *service) Revert(ctx context.Context, input TransitionInput) (*models.Label, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	return s.transition(ctx, input.LabelID, func(label *models.Label) (models.LabelStageEvent, error) {
		return s.machine.Revert(label, input.Actor, input.Notes)
	})
}

func (s *service) SetStage(ctx context.Context, input SetStageInput) (*models.Label, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	return s.transition(ctx, input.LabelID, func(label *models.Label) (models.LabelStageEvent, error) {
		return s.machine.SetStage(label, input.Target, input.Actor, input.Notes)
	})
}

func (s *service) transition(ctx context.Context, labelID uuid.UUID, apply func(*models.Label) (models.LabelStageEvent, error)) (*models.Label, error) {
	var updated *models.Label
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		label, err := repo.FindByID(ctx, labelID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "label not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load label")
		}

		event, err := apply(label)
		if err != nil {
			return err
		}

		if err := repo.UpdateStage(ctx, label.ID, label.CurrentStage); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update label stage")
		}
		if err := repo.AppendStageEvent(ctx, &event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append stage event")
		}

		updated = label
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
