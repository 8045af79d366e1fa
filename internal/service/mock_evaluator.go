package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/google/uuid"
)

var mockCriteria = []model.CriteriaItem{
	{
		ID:          "drawing-completeness",
		Name:        "Drawing Completeness",
		Description: "All required sheets, views and schedules are present",
		Score:       9,
		MaxScore:    10,
		Feedback:    "The set includes site, floor, elevation and section sheets. Door and window schedules are complete.",
	},
	{
		ID:          "code-compliance",
		Name:        "Building Code Compliance",
		Description: "Egress, fire separation and accessibility requirements are addressed",
		Score:       7,
		MaxScore:    10,
		Feedback:    "Egress widths are documented. Accessible route to the mezzanine is not shown and should be clarified.",
	},
	{
		ID:          "dimensional-accuracy",
		Name:        "Dimensional Accuracy",
		Description: "Dimensions are consistent between plans, elevations and details",
		Score:       8,
		MaxScore:    10,
		Feedback:    "Overall dimensions reconcile across sheets. Two interior partitions differ by 50 mm between plan and detail.",
	},
	{
		ID:          "annotation-clarity",
		Name:        "Annotation and Labeling",
		Description: "Notes, tags and callouts are legible and unambiguous",
		Score:       6,
		MaxScore:    10,
		Feedback:    "Several callouts overlap hatching on the ground floor plan. Keynote legend is missing on sheet A-201.",
	},
	{
		ID:          "sheet-organization",
		Name:        "Sheet Organization",
		Description: "Sheet index, numbering and title blocks follow a consistent standard",
		Score:       4,
		MaxScore:    10,
		Feedback:    "The sheet index does not match the issued sheets and title blocks use two different revision formats.",
	},
	{
		ID:          "discipline-coordination",
		Name:        "Discipline Coordination",
		Description: "Structural, mechanical and electrical layouts agree with the architecture",
		Score:       7,
		MaxScore:    10,
		Feedback:    "Structural grid aligns with the architectural grid. Ductwork conflicts with a beam at grid C-4.",
	},
}

const mockOverallFeedback = "The plan set is largely complete and dimensionally consistent. " +
	"Priority fixes are the sheet index, the missing keynote legend and the accessible route to the mezzanine. " +
	"Resolve the duct and beam conflict at grid C-4 before issuing for permit."

// MockEvaluationResults builds a completed evaluation for fileName from static
// data. Totals are derived from the criteria so the record is consistent.
func MockEvaluationResults(fileName string, uploadDate time.Time) *model.DesignEvaluation {
	eval := &model.DesignEvaluation{
		ID:              uuid.NewString(),
		FileName:        fileName,
		UploadDate:      uploadDate,
		Status:          model.StatusCompleted,
		Criteria:        append([]model.CriteriaItem(nil), mockCriteria...),
		OverallFeedback: mockOverallFeedback,
	}
	eval.TotalScore, eval.MaxPossibleScore = eval.SumScores()
	return eval
}

// MockEvaluator simulates a slow evaluation backend.
type MockEvaluator struct {
	Delay time.Duration
	Now   func() time.Time
}

func NewMockEvaluator(delay time.Duration) *MockEvaluator {
	return &MockEvaluator{Delay: delay, Now: time.Now}
}

func (m *MockEvaluator) Evaluate(ctx context.Context, file model.UploadedFile) (*model.DesignEvaluation, error) {
	if file.Name == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidFile)
	}

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("mock evaluation of %s cancelled: %w", file.Name, ctx.Err())
		}
	}

	uploadDate := file.SelectedAt
	if uploadDate.IsZero() {
		if m.Now != nil {
			uploadDate = m.Now()
		} else {
			uploadDate = time.Now()
		}
	}
	log.Printf("Mock evaluation finished for %s", file.Name)
	return MockEvaluationResults(file.Name, uploadDate), nil
}
