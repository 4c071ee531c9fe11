package content

import (
	"errors"
	"fmt"

	"github.com/simverse/simverse-api/internal/domain"
)

// Content contract bounds. Everything generated content may carry is bounded
// here; the normalizer's display bounds in normalize.go are tighter for a
// few list fields.
const (
	MaxDescriptionLen = 1200
	MaxNarrationLen   = 300
	MaxAnnotationLen  = 500
	MaxQuestionLen    = 400
	MaxChoiceLen      = 200
	MaxLabelLen       = 80
	MaxThemeLen       = 40
	MaxObjectIDLen    = 64
	MaxColorLen       = 32
	MaxExpressionLen  = 200

	MinNarrationLines = 3
	MaxNarrationLines = 14
	MinSteps          = 3
	MaxSteps          = 12
	MinObjectsPerStep = 1
	MaxObjectsPerStep = 24
	MaxMovements      = 40
	MaxPointLabels    = 12
	MaxExpressions    = 6
	MaxChartPoints    = 100
	MinChoices        = 2
	MaxChoices        = 6
	MaxProblems       = 12

	MinPassingScore = 60
	MaxPassingScore = 95
	CoordinateBound = 30
	MaxObjectSize   = 10
	MaxDuration     = 60
)

// ErrInvalidContent is the sentinel all schema violations match.
var ErrInvalidContent = errors.New("content violates contract")

// ValidationError identifies the first field that violated the content
// contract. It matches ErrInvalidContent via errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at %s: %s", e.Field, e.Reason)
}

// Is matches ValidationError against the ErrInvalidContent sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidContent
}

func violation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks ingested content against the closed content contract.
// Validation is all-or-nothing: the first violation is returned and nothing
// is repaired here (repair is the normalizer's job).
func Validate(c *domain.GeneratedContent) error {
	if c == nil {
		return violation("content", "content is nil")
	}

	if c.Description == "" {
		return violation("description", "must not be empty")
	}
	if len(c.Description) > MaxDescriptionLen {
		return violation("description", "exceeds %d characters", MaxDescriptionLen)
	}
	if len(c.VisualTheme) > MaxThemeLen {
		return violation("visual_theme", "exceeds %d characters", MaxThemeLen)
	}

	if len(c.Narration) < MinNarrationLines || len(c.Narration) > MaxNarrationLines {
		return violation("narration", "must have between %d and %d lines, got %d",
			MinNarrationLines, MaxNarrationLines, len(c.Narration))
	}
	for i, line := range c.Narration {
		if line == "" {
			return violation(fmt.Sprintf("narration[%d]", i), "must not be empty")
		}
		if len(line) > MaxNarrationLen {
			return violation(fmt.Sprintf("narration[%d]", i), "exceeds %d characters", MaxNarrationLen)
		}
	}

	if len(c.Steps) < MinSteps || len(c.Steps) > MaxSteps {
		return violation("steps", "must have between %d and %d steps, got %d",
			MinSteps, MaxSteps, len(c.Steps))
	}
	for i := range c.Steps {
		if err := validateStep(fmt.Sprintf("steps[%d]", i), &c.Steps[i]); err != nil {
			return err
		}
	}

	if len(c.Levels) == 0 || len(c.Levels) > len(domain.Levels) {
		return violation("levels", "must have between 1 and %d level entries, got %d",
			len(domain.Levels), len(c.Levels))
	}
	seen := map[domain.Level]bool{}
	for i := range c.Levels {
		field := fmt.Sprintf("levels[%d]", i)
		if !c.Levels[i].Level.Valid() {
			return violation(field+".level", "unknown level %q", c.Levels[i].Level)
		}
		if seen[c.Levels[i].Level] {
			return violation(field+".level", "duplicate level %q", c.Levels[i].Level)
		}
		seen[c.Levels[i].Level] = true
		if err := validateLevelSet(field, &c.Levels[i]); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(field string, step *domain.SimulationStep) error {
	if len(step.Objects) < MinObjectsPerStep || len(step.Objects) > MaxObjectsPerStep {
		return violation(field+".objects", "must have between %d and %d objects, got %d",
			MinObjectsPerStep, MaxObjectsPerStep, len(step.Objects))
	}

	ids := map[string]bool{}
	for i := range step.Objects {
		objField := fmt.Sprintf("%s.objects[%d]", field, i)
		if err := validateObject(objField, &step.Objects[i]); err != nil {
			return err
		}
		if ids[step.Objects[i].ID] {
			return violation(objField+".id", "duplicate object id %q", step.Objects[i].ID)
		}
		ids[step.Objects[i].ID] = true
	}

	if len(step.Movements) > MaxMovements {
		return violation(field+".movements", "exceeds %d movements", MaxMovements)
	}
	for i := range step.Movements {
		if err := validateMovement(fmt.Sprintf("%s.movements[%d]", field, i), &step.Movements[i]); err != nil {
			return err
		}
	}

	if len(step.PointLabels) > MaxPointLabels {
		return violation(field+".point_labels", "exceeds %d labels", MaxPointLabels)
	}
	for i, label := range step.PointLabels {
		labelField := fmt.Sprintf("%s.point_labels[%d]", field, i)
		if label.Text == "" || len(label.Text) > MaxLabelLen {
			return violation(labelField+".text", "must be 1-%d characters", MaxLabelLen)
		}
		if err := validateVec(labelField+".position", label.Position); err != nil {
			return err
		}
	}

	if len(step.Annotation) > MaxAnnotationLen {
		return violation(field+".annotation", "exceeds %d characters", MaxAnnotationLen)
	}

	if len(step.MathExpressions) > MaxExpressions {
		return violation(field+".math_expressions", "exceeds %d expressions", MaxExpressions)
	}
	for i, expr := range step.MathExpressions {
		if expr == "" || len(expr) > MaxExpressionLen {
			return violation(fmt.Sprintf("%s.math_expressions[%d]", field, i),
				"must be 1-%d characters", MaxExpressionLen)
		}
	}

	if step.Chart != nil {
		if len(step.Chart.X) > MaxChartPoints || len(step.Chart.Y) > MaxChartPoints {
			return violation(field+".chart", "exceeds %d points", MaxChartPoints)
		}
	}

	return nil
}

func validateObject(field string, obj *domain.SceneObject) error {
	if obj.ID == "" || len(obj.ID) > MaxObjectIDLen {
		return violation(field+".id", "must be 1-%d characters", MaxObjectIDLen)
	}

	if !validKind(obj.Kind) {
		return violation(field+".kind", "unknown kind %q", obj.Kind)
	}

	if obj.Color == "" || len(obj.Color) > MaxColorLen {
		return violation(field+".color", "must be 1-%d characters", MaxColorLen)
	}

	if obj.Size <= 0 || obj.Size > MaxObjectSize {
		return violation(field+".size", "must be in (0, %d]", MaxObjectSize)
	}

	if err := validateVec(field+".position", obj.Position); err != nil {
		return err
	}

	if len(obj.Label) > MaxLabelLen {
		return violation(field+".label", "exceeds %d characters", MaxLabelLen)
	}

	return nil
}

func validateMovement(field string, m *domain.Movement) error {
	if m.ObjectID == "" {
		return violation(field+".object_id", "must not be empty")
	}

	if !validMovementType(m.Type) {
		return violation(field+".type", "unknown movement type %q", m.Type)
	}

	if err := validateVec(field+".target", m.Target); err != nil {
		return err
	}

	if m.Duration < 0 || m.Duration > MaxDuration {
		return violation(field+".duration", "must be in [0, %d] seconds", MaxDuration)
	}

	return nil
}

func validateLevelSet(field string, set *domain.LevelProblemSet) error {
	if set.PassingScore < MinPassingScore || set.PassingScore > MaxPassingScore {
		return violation(field+".passing_score", "must be in [%d, %d]", MinPassingScore, MaxPassingScore)
	}

	if len(set.Problems) == 0 || len(set.Problems) > MaxProblems {
		return violation(field+".problems", "must have between 1 and %d problems, got %d",
			MaxProblems, len(set.Problems))
	}

	for i := range set.Problems {
		if err := validateProblem(fmt.Sprintf("%s.problems[%d]", field, i), &set.Problems[i]); err != nil {
			return err
		}
	}

	return nil
}

func validateProblem(field string, p *domain.Problem) error {
	if p.Question == "" || len(p.Question) > MaxQuestionLen {
		return violation(field+".question", "must be 1-%d characters", MaxQuestionLen)
	}

	if len(p.Choices) < MinChoices || len(p.Choices) > MaxChoices {
		return violation(field+".choices", "must have between %d and %d choices, got %d",
			MinChoices, MaxChoices, len(p.Choices))
	}
	for i, choice := range p.Choices {
		if choice == "" || len(choice) > MaxChoiceLen {
			return violation(fmt.Sprintf("%s.choices[%d]", field, i), "must be 1-%d characters", MaxChoiceLen)
		}
	}

	if p.Answer == "" {
		return violation(field+".answer", "must not be empty")
	}

	return nil
}

func validateVec(field string, v domain.Vec3) error {
	axes := []struct {
		name  string
		value float64
	}{{"x", v.X}, {"y", v.Y}, {"z", v.Z}}
	for _, axis := range axes {
		if axis.value < -CoordinateBound || axis.value > CoordinateBound {
			return violation(field+"."+axis.name, "must be in [-%d, %d]", CoordinateBound, CoordinateBound)
		}
	}
	return nil
}

func validKind(k domain.ObjectKind) bool {
	for _, known := range domain.ObjectKinds {
		if known == k {
			return true
		}
	}
	return false
}

func validMovementType(t domain.MovementType) bool {
	for _, known := range domain.MovementTypes {
		if known == t {
			return true
		}
	}
	return false
}
