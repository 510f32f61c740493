package labels

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubLabelsRepo struct {
	label        *models.Label
	created      *models.Label
	stageUpdates []enums.LabelStage
	events       []models.LabelStageEvent
	findErr      error
}

func (s *stubLabelsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubLabelsRepo) Create(ctx context.Context, label *models.Label) (*models.Label, error) {
	if label.ID == uuid.Nil {
		label.ID = uuid.New()
	}
	s.created = label
	return label, nil
}

func (s *stubLabelsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Label, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.label == nil || s.label.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.label, nil
}

func (s *stubLabelsRepo) UpdateStage(ctx context.Context, id uuid.UUID, stage enums.LabelStage) error {
	s.stageUpdates = append(s.stageUpdates, stage)
	return nil
}

func (s *stubLabelsRepo) AppendStageEvent(ctx context.Context, event *models.LabelStageEvent) error {
	s.events = append(s.events, *event)
	return nil
}

func newTestService(t *testing.T, repo *stubLabelsRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceCreateSeedsHistory(t *testing.T) {
	repo := &stubLabelsRepo{}
	svc := newTestService(t, repo)

	label, err := svc.Create(context.Background(), CreateInput{
		ClientID:    uuid.New(),
		FlavorName:  "sour apple",
		ProductType: "gummies",
		Actor:       "mike",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if label.CurrentStage != enums.LabelStageDesignInProgress {
		t.Fatalf("unexpected stage: %s", label.CurrentStage)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 seeded event, got %d", len(repo.events))
	}
	if repo.events[0].Stage != enums.LabelStageDesignInProgress {
		t.Fatalf("unexpected seed stage: %s", repo.events[0].Stage)
	}
	if repo.events[0].NonSequential {
		t.Fatal("seed event must be sequential")
	}
}

func TestServiceCreateValidatesInput(t *testing.T) {
	svc := newTestService(t, &stubLabelsRepo{})

	_, err := svc.Create(context.Background(), CreateInput{FlavorName: "x"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceAdvancePersistsStageAndEvent(t *testing.T) {
	label := newLabel(enums.LabelStageStoreApproved)
	repo := &stubLabelsRepo{label: label}
	svc := newTestService(t, repo)

	updated, err := svc.Advance(context.Background(), TransitionInput{
		LabelID: label.ID,
		Actor:   "mike",
	})
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if updated.CurrentStage != enums.LabelStageSubmittedToOLCC {
		t.Fatalf("unexpected stage: %s", updated.CurrentStage)
	}
	if len(repo.stageUpdates) != 1 || repo.stageUpdates[0] != enums.LabelStageSubmittedToOLCC {
		t.Fatalf("unexpected stage updates: %v", repo.stageUpdates)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 appended event, got %d", len(repo.events))
	}
}

func TestServiceAdvanceNotFound(t *testing.T) {
	repo := &stubLabelsRepo{}
	svc := newTestService(t, repo)

	_, err := svc.Advance(context.Background(), TransitionInput{
		LabelID: uuid.New(),
		Actor:   "mike",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceSetStageRecordsNonSequential(t *testing.T) {
	label := newLabel(enums.LabelStageDesignInProgress)
	repo := &stubLabelsRepo{label: label}
	svc := newTestService(t, repo)

	updated, err := svc.SetStage(context.Background(), SetStageInput{
		LabelID: label.ID,
		Target:  enums.LabelStagePrintOrderSubmitted,
		Actor:   "admin",
	})
	if err != nil {
		t.Fatalf("SetStage: %v", err)
	}
	if updated.CurrentStage != enums.LabelStagePrintOrderSubmitted {
		t.Fatalf("unexpected stage: %s", updated.CurrentStage)
	}
	if len(repo.events) != 1 || !repo.events[0].NonSequential {
		t.Fatal("expected a non-sequential event to be recorded")
	}
}

func TestServiceRevertAtBoundarySurfacesConflict(t *testing.T) {
	label := newLabel(enums.LabelStageDesignInProgress)
	repo := &stubLabelsRepo{label: label}
	svc := newTestService(t, repo)

	_, err := svc.Revert(context.Background(), TransitionInput{
		LabelID: label.ID,
		Actor:   "mike",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(repo.events) != 0 {
		t.Fatal("failed revert must not persist events")
	}
}
