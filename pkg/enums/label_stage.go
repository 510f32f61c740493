package enums

import "fmt"

// LabelStage tracks a label design through the approval pipeline.
type LabelStage string

const (
	LabelStageDesignInProgress      LabelStage = "design_in_progress"
	LabelStageAwaitingStoreApproval LabelStage = "awaiting_store_approval"
	LabelStageStoreApproved         LabelStage = "store_approved"
	LabelStageSubmittedToOLCC       LabelStage = "submitted_to_olcc"
	LabelStageOLCCApproved          LabelStage = "olcc_approved"
	LabelStagePrintOrderSubmitted   LabelStage = "print_order_submitted"
	LabelStageReadyForProduction    LabelStage = "ready_for_production"
)

// labelStagePipeline is the ordered approval path.
var labelStagePipeline = []LabelStage{
	LabelStageDesignInProgress,
	LabelStageAwaitingStoreApproval,
	LabelStageStoreApproved,
	LabelStageSubmittedToOLCC,
	LabelStageOLCCApproved,
	LabelStagePrintOrderSubmitted,
	LabelStageReadyForProduction,
}

// String implements fmt.Stringer.
func (l LabelStage) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LabelStage.
func (l LabelStage) IsValid() bool {
	return l.Ordinal() >= 0
}

// IsTerminal reports whether the stage is the end of the pipeline.
func (l LabelStage) IsTerminal() bool {
	return l == LabelStageReadyForProduction
}

// Ordinal returns the zero-based position in the pipeline, or -1 when unknown.
func (l LabelStage) Ordinal() int {
	for i, candidate := range labelStagePipeline {
		if candidate == l {
			return i
		}
	}
	return -1
}

// Next returns the following stage. The boolean is false at the terminal stage.
func (l LabelStage) Next() (LabelStage, bool) {
	i := l.Ordinal()
	if i < 0 || i+1 >= len(labelStagePipeline) {
		return "", false
	}
	return labelStagePipeline[i+1], true
}

// Previous returns the preceding stage. The boolean is false at the first stage.
func (l LabelStage) Previous() (LabelStage, bool) {
	i := l.Ordinal()
	if i <= 0 {
		return "", false
	}
	return labelStagePipeline[i-1], true
}

// LabelStages returns the pipeline in order.
func LabelStages() []LabelStage {
	stages := make([]LabelStage, len(labelStagePipeline))
	copy(stages, labelStagePipeline)
	return stages
}

// ParseLabelStage converts raw input into a LabelStage.
func ParseLabelStage(value string) (LabelStage, error) {
	for _, candidate := range labelStagePipeline {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid label stage %q", value)
}
