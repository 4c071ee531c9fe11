package content

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/simverse/simverse-api/internal/domain"
)

// The fallback generator is the system's offline content engine. When the
// external generator is unavailable or returns invalid content, it produces
// a complete, contract-valid lesson seeded only by the topic text, so the
// system always serves something structurally valid and topically relevant.
//
// Everything is derived from a rolling hash of the topic text: identical
// topics always yield identical layouts, different topics diverge.

// phases partition the simulation into its three thematic acts.
var phases = [3]string{"setup", "transform", "validate"}

// palettes are the candidate color schemes, one chosen per topic.
var palettes = [][]string{
	{"#4f9cf9", "#f95f62", "#ffd166", "#06d6a0", "#b388eb"},
	{"#0a9396", "#94d2bd", "#e9d8a6", "#ee9b00", "#ca6702"},
	{"#606c38", "#283618", "#dda15e", "#bc6c25", "#fefae0"},
	{"#8338ec", "#3a86ff", "#ff006e", "#fb5607", "#ffbe0b"},
	{"#2a9d8f", "#e76f51", "#f4a261", "#e9c46a", "#264653"},
}

// visualThemes line up with palettes by index.
var visualThemes = []string{"cosmic", "ocean", "forest", "neon", "ember"}

// numericTopicPattern decides whether a topic warrants a math or chart
// overlay on its final step.
var numericTopicPattern = regexp.MustCompile(
	`(?i)\b(math|algebra|calculus|geometry|equation|function|graph|chart|data|statistics|probability|rate|velocity|acceleration|number|fraction)\b`)

var defaultKeywords = []string{"concept", "model", "system", "pattern"}

var passingScores = map[domain.Level]float64{
	domain.LevelBeginner:     65,
	domain.LevelIntermediate: 75,
	domain.LevelAdvanced:     85,
}

// GenerateFallback deterministically produces a complete, contract-valid
// lesson for the topic, with a baseline problem set for every level. The
// level parameter tunes the narration framing; the full package is always
// generated so the normalizer can substitute per-level pieces from it.
func GenerateFallback(topic domain.Topic, level domain.Level) *domain.GeneratedContent {
	seedText := strings.TrimSpace(topic.Title + " " + topic.Description)
	h := rollingHash(seedText)
	keywords := extractKeywords(seedText)

	title := strings.TrimSpace(topic.Title)
	if title == "" {
		title = "this topic"
	}

	count := 5 + len(keywords)%6
	palette := palettes[int(h%uint64(len(palettes)))]
	theme := visualThemes[int(h%uint64(len(visualThemes)))]
	radius := 6 + float64(h%5)*1.5

	objects := layoutObjects(h, count, radius, palette, keywords)
	steps := buildSteps(h, title, level, objects, seedText)

	description := strings.TrimSpace(topic.Description)
	if description == "" {
		description = fmt.Sprintf("An interactive exploration of %s.", title)
	}

	return &domain.GeneratedContent{
		Description: truncate(description, MaxDescriptionLen),
		VisualTheme: theme,
		Narration:   buildNarration(title, description, level),
		Steps:       steps,
		Levels: []domain.LevelProblemSet{
			buildLevelSet(domain.LevelBeginner, title, keywords, count),
			buildLevelSet(domain.LevelIntermediate, title, keywords, count),
			buildLevelSet(domain.LevelAdvanced, title, keywords, count),
		},
	}
}

// rollingHash is a simple multiplicative rolling hash over the topic text.
func rollingHash(s string) uint64 {
	var h uint64
	for _, ch := range s {
		h = h*31 + uint64(ch)
	}
	return h
}

// extractKeywords pulls the distinct significant words out of the topic
// text, preserving first-seen order, capped at twelve.
func extractKeywords(text string) []string {
	seen := map[string]bool{}
	keywords := []string{}
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?()[]\"'")
		if len(word) < 4 || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == 12 {
			break
		}
	}
	if len(keywords) == 0 {
		return defaultKeywords
	}
	return keywords
}

// layoutObjects places count objects evenly around a circle of the given
// radius, assigning kind, color, and size from the hash.
func layoutObjects(h uint64, count int, radius float64, palette []string, keywords []string) []domain.SceneObject {
	objects := make([]domain.SceneObject, count)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		kind := domain.ObjectKinds[(int(h%uint64(len(domain.ObjectKinds)))+i*5)%len(domain.ObjectKinds)]

		label := ""
		if i < len(keywords) {
			label = truncate(keywords[i], MaxLabelLen)
		}

		objects[i] = domain.SceneObject{
			ID:    fmt.Sprintf("obj-%d", i+1),
			Kind:  kind,
			Color: palette[i%len(palette)],
			Size:  0.8 + 0.2*float64((int(h%7)+i)%4),
			Position: domain.Vec3{
				X: round2(radius * math.Cos(angle)),
				Y: 0,
				Z: round2(radius * math.Sin(angle)),
			},
			Label: label,
		}
	}
	return objects
}

// buildSteps partitions the lesson into the three thematic phases, one
// simulation step per phase with bounded movement lists.
func buildSteps(h uint64, title string, level domain.Level, objects []domain.SceneObject, seedText string) []domain.SimulationStep {
	setup := domain.SimulationStep{
		Objects:    objects,
		Annotation: truncate(fmt.Sprintf("Setup: the pieces of %s take their places.", title), MaxAnnotationLen),
	}
	for i := 0; i < len(objects) && i < 3; i++ {
		setup.Movements = append(setup.Movements, domain.Movement{
			ObjectID: objects[i].ID,
			Type:     domain.MovePulse,
			Target:   objects[i].Position,
			Duration: 1.5,
		})
		if objects[i].Label != "" {
			setup.PointLabels = append(setup.PointLabels, domain.PointLabel{
				Text: objects[i].Label,
				Position: domain.Vec3{
					X: objects[i].Position.X,
					Y: round2(objects[i].Size + 1),
					Z: objects[i].Position.Z,
				},
			})
		}
	}

	transform := domain.SimulationStep{
		Objects:    objects,
		Annotation: truncate(fmt.Sprintf("Transform: watch how %s rearranges under change.", title), MaxAnnotationLen),
	}
	moveTypes := []domain.MovementType{domain.MoveTranslate, domain.MoveOrbit, domain.MoveRotate}
	for i, obj := range objects {
		transform.Movements = append(transform.Movements, domain.Movement{
			ObjectID: obj.ID,
			Type:     moveTypes[(int(h%3)+i)%len(moveTypes)],
			Target: domain.Vec3{
				X: round2(obj.Position.X * 0.5),
				Y: round2(float64(i%3) * 1.5),
				Z: round2(obj.Position.Z * 0.5),
			},
			Duration: float64(2 + i%3),
		})
	}

	validate := domain.SimulationStep{
		Objects:    objects,
		Annotation: truncate(fmt.Sprintf("Validate: check what the %s level of %s has shown.", level, title), MaxAnnotationLen),
	}
	for _, obj := range objects {
		validate.Movements = append(validate.Movements, domain.Movement{
			ObjectID: obj.ID,
			Type:     domain.MovePulse,
			Target:   obj.Position,
			Duration: 1,
		})
	}

	if numericTopicPattern.MatchString(seedText) {
		slope := float64(1 + h%4)
		offset := float64(h % 7)
		validate.MathExpressions = []string{fmt.Sprintf("f(x) = %gx + %g", slope, offset)}

		x := make([]float64, 6)
		y := make([]float64, 6)
		for i := range x {
			x[i] = float64(i)
			y[i] = round2(slope*float64(i) + offset)
		}
		validate.Chart = &domain.ChartData{
			Title:  truncate(fmt.Sprintf("%s over time", title), MaxLabelLen),
			XLabel: "x",
			YLabel: "f(x)",
			X:      x,
			Y:      y,
		}
	}

	return []domain.SimulationStep{setup, transform, validate}
}

// buildNarration produces six lines: intro, description, one per phase, and
// a closing line naming the level.
func buildNarration(title, description string, level domain.Level) []string {
	return []string{
		truncate(fmt.Sprintf("Welcome! Today we explore %s.", title), MaxNarrationLen),
		truncate(description, MaxNarrationLen),
		truncate(fmt.Sprintf("First, in the setup phase, the parts of %s appear one by one.", title), MaxNarrationLen),
		"Next, the transform phase puts everything in motion so you can see the relationships.",
		"Finally, the validate phase lets you check your understanding.",
		truncate(fmt.Sprintf("This lesson is tuned for the %s level. Let's begin.", level), MaxNarrationLen),
	}
}

// buildLevelSet produces the baseline problem set for one level.
func buildLevelSet(level domain.Level, title string, keywords []string, objectCount int) domain.LevelProblemSet {
	answer := keywords[0]
	choices := []string{answer}
	for _, kw := range keywords[1:] {
		if len(choices) == 4 {
			break
		}
		choices = append(choices, kw)
	}
	for _, filler := range defaultKeywords {
		if len(choices) == 4 {
			break
		}
		if !containsString(choices, filler) {
			choices = append(choices, filler)
		}
	}

	countAnswer := strconv.Itoa(objectCount)
	countChoices := []string{
		strconv.Itoa(objectCount - 1),
		countAnswer,
		strconv.Itoa(objectCount + 1),
		strconv.Itoa(objectCount + 2),
	}

	return domain.LevelProblemSet{
		Level:        level,
		PassingScore: passingScores[level],
		Problems: []domain.Problem{
			{
				Question: truncate(fmt.Sprintf("At the %s level, which idea is most central to %s?", level, title), MaxQuestionLen),
				Choices:  choices,
				Answer:   answer,
				Hint:     "Think back to the labels in the setup scene.",
			},
			{
				Question: "How many objects appear in the setup scene?",
				Choices:  countChoices,
				Answer:   countAnswer,
				Hint:     "Count the shapes arranged around the circle.",
			},
			{
				Question: "Which phase of the simulation comes after 'transform'?",
				Choices:  []string{phases[0], phases[1], phases[2]},
				Answer:   phases[2],
			},
		},
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
