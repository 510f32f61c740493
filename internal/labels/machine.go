package labels

import (
	"time"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
)

// Machine applies approval-stage transitions to label snapshots. Every
// transition appends to the label's stage history; nothing ever removes or
// rewrites an entry. The machine performs no I/O.
type Machine struct {
	now func() time.Time
}

// NewMachine builds a stage machine using the wall clock.
func NewMachine() *Machine {
	return &Machine{now: time.Now}
}

// Advance moves the label exactly one stage forward.
func (m *Machine) Advance(label *models.Label, actor string, notes *string) (models.LabelStageEvent, error) {
	if err := validateTransitionInput(label, actor); err != nil {
		return models.LabelStageEvent{}, err
	}
	next, ok := label.CurrentStage.Next()
	if !ok {
		return models.LabelStageEvent{}, pkgerrors.New(pkgerrors.CodeStateConflict, "label is already at the final stage").
			WithDetails(map[string]any{"stage": label.CurrentStage.String()})
	}
	return m.apply(label, next, actor, notes, false), nil
}

// Revert moves the label exactly one stage backward.
func (m *Machine) Revert(label *models.Label, actor string, notes *string) (models.LabelStageEvent, error) {
	if err := validateTransitionInput(label, actor); err != nil {
		return models.LabelStageEvent{}, err
	}
	previous, ok := label.CurrentStage.Previous()
	if !ok {
		return models.LabelStageEvent{}, pkgerrors.New(pkgerrors.CodeStateConflict, "label is already at the first stage").
			WithDetails(map[string]any{"stage": label.CurrentStage.String()})
	}
	return m.apply(label, previous, actor, notes, false), nil
}

// SetStage jumps the label to an arbitrary stage. The jump is always
// permitted but the recorded event is flagged non-sequential so audits can
// tell administrative overrides from normal progression.
func (m *Machine) SetStage(label *models.Label, target enums.LabelStage, actor string, notes *string) (models.LabelStageEvent, error) {
	if err := validateTransitionInput(label, actor); err != nil {
		return models.LabelStageEvent{}, err
	}
	if !target.IsValid() {
		return models.LabelStageEvent{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown label stage").
			WithDetails(map[string]any{"stage": target.String()})
	}
	return m.apply(label, target, actor, notes, true), nil
}

func (m *Machine) apply(label *models.Label, stage enums.LabelStage, actor string, notes *string, nonSequential bool) models.LabelStageEvent {
	event := models.LabelStageEvent{
		LabelID:       label.ID,
		Stage:         stage,
		ChangedBy:     actor,
		ChangedAt:     m.now().UTC(),
		Notes:         notes,
		NonSequential: nonSequential,
	}
	label.CurrentStage = stage
	label.StageEvents = append(label.StageEvents, event)
	return event
}

// seedEvent records the initial design_in_progress entry for a new label.
func (m *Machine) seedEvent(label *models.Label, actor string) models.LabelStageEvent {
	return m.apply(label, enums.LabelStageDesignInProgress, actor, nil, false)
}

func validateTransitionInput(label *models.Label, actor string) error {
	if label == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "label required")
	}
	if actor == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if !label.CurrentStage.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "label has an unknown current stage").
			WithDetails(map[string]any{"stage": label.CurrentStage.String()})
	}
	return nil
}
