package domain

import "strings"

// ObjectKind is the closed set of 3D primitives a simulation step may place.
type ObjectKind string

// Valid scene-object kinds.
const (
	KindCube     ObjectKind = "cube"
	KindSphere   ObjectKind = "sphere"
	KindCylinder ObjectKind = "cylinder"
	KindCone     ObjectKind = "cone"
	KindTorus    ObjectKind = "torus"
	KindPlane    ObjectKind = "plane"
)

// ObjectKinds lists every valid scene-object kind.
var ObjectKinds = []ObjectKind{KindCube, KindSphere, KindCylinder, KindCone, KindTorus, KindPlane}

// MovementType is the closed set of animations a movement may apply.
type MovementType string

// Valid movement types.
const (
	MoveTranslate MovementType = "translate"
	MoveRotate    MovementType = "rotate"
	MoveScale     MovementType = "scale"
	MoveOrbit     MovementType = "orbit"
	MovePulse     MovementType = "pulse"
)

// MovementTypes lists every valid movement type.
var MovementTypes = []MovementType{MoveTranslate, MoveRotate, MoveScale, MoveOrbit, MovePulse}

// Vec3 is a position or rotation in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SceneObject is one 3D object placed by a simulation step.
type SceneObject struct {
	ID       string     `json:"id"`
	Kind     ObjectKind `json:"kind"`
	Color    string     `json:"color"`
	Size     float64    `json:"size"`
	Position Vec3       `json:"position"`
	Rotation *Vec3      `json:"rotation,omitempty"`
	Label    string     `json:"label,omitempty"`
}

// Movement animates one object declared in the same step. ObjectID must
// reference a SceneObject in the owning step's object list.
type Movement struct {
	ObjectID string       `json:"object_id"`
	Type     MovementType `json:"type"`
	Target   Vec3         `json:"target"`
	Duration float64      `json:"duration"`
}

// PointLabel is a floating text annotation anchored in scene space.
type PointLabel struct {
	Text     string `json:"text"`
	Position Vec3   `json:"position"`
}

// ChartData is an optional 2D overlay plotted alongside a step. X and Y must
// have equal length and at least two points.
type ChartData struct {
	Title  string    `json:"title,omitempty"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
}

// SimulationStep is one scene of a lesson: a set of objects, the movements
// that animate them, and optional narration aids.
type SimulationStep struct {
	Objects         []SceneObject `json:"objects"`
	Movements       []Movement    `json:"movements,omitempty"`
	PointLabels     []PointLabel  `json:"point_labels,omitempty"`
	Annotation      string        `json:"annotation"`
	MathExpressions []string      `json:"math_expressions,omitempty"`
	Chart           *ChartData    `json:"chart,omitempty"`
}

// Problem is one multiple-choice question. Choices must be distinct and must
// include Answer verbatim.
type Problem struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
	Hint     string   `json:"hint,omitempty"`
}

// LevelProblemSet is the problem set for one difficulty level of a topic,
// together with the score required to unlock the next level.
type LevelProblemSet struct {
	Level        Level     `json:"level"`
	PassingScore float64   `json:"passing_score"`
	Problems     []Problem `json:"problems"`
}

// GeneratedContent is a complete lesson package for one topic: narration,
// simulation steps, and a problem set per difficulty level.
type GeneratedContent struct {
	Description string            `json:"description"`
	VisualTheme string            `json:"visual_theme"`
	Narration   []string          `json:"narration"`
	Steps       []SimulationStep  `json:"steps"`
	Levels      []LevelProblemSet `json:"levels"`
}

// LevelSet returns the problem set for the given level, or nil if the
// content does not carry one.
func (c *GeneratedContent) LevelSet(level Level) *LevelProblemSet {
	for i := range c.Levels {
		if c.Levels[i].Level == level {
			return &c.Levels[i]
		}
	}
	return nil
}

// Topic describes one teachable subject as presented to the generator:
// a stable identifier plus the title/description text that seeds content.
type Topic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TopicIDFromTitle derives a stable slug identifier from a topic title:
// lowercase, runs of non-alphanumerics collapsed to single hyphens.
func TopicIDFromTitle(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
