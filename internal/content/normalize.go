package content

import (
	"math"

	"github.com/simverse/simverse-api/internal/domain"
)

// DisplayMaxNarration is the narration bound enforced for storage/display.
// The schema accepts up to MaxNarrationLines from the external source; the
// normalizer clips to this tighter bound.
const DisplayMaxNarration = 8

// Normalize reconciles validated external content against the storage and
// display invariants, substituting pieces of the fallback package at the
// smallest necessary granularity. It is a repair pass, not a second
// rejection gate: one malformed step or problem never invalidates the rest
// of an otherwise-good response.
//
// The input is mutated in place and returned. The fallback package must be
// complete (GenerateFallback output always is).
func Normalize(c *domain.GeneratedContent, fallback *domain.GeneratedContent) *domain.GeneratedContent {
	if len(c.Narration) > DisplayMaxNarration {
		c.Narration = c.Narration[:DisplayMaxNarration]
	}

	if len(c.Steps) > MaxSteps {
		c.Steps = c.Steps[:MaxSteps]
	}
	for i := range c.Steps {
		normalizeStep(&c.Steps[i])
	}

	levels := make([]domain.LevelProblemSet, 0, len(domain.Levels))
	for _, level := range domain.Levels {
		set := c.LevelSet(level)
		if set == nil {
			// The external source omitted this level entirely.
			levels = append(levels, *fallback.LevelSet(level))
			continue
		}
		normalized := normalizeLevelSet(*set, fallback.LevelSet(level))
		levels = append(levels, normalized)
	}
	c.Levels = levels

	return c
}

// normalizeStep repairs one simulation step: clips its lists and drops any
// movement that references an object id not declared in this step.
func normalizeStep(step *domain.SimulationStep) {
	if len(step.Objects) > MaxObjectsPerStep {
		step.Objects = step.Objects[:MaxObjectsPerStep]
	}

	declared := make(map[string]bool, len(step.Objects))
	for _, obj := range step.Objects {
		declared[obj.ID] = true
	}

	kept := step.Movements[:0]
	for _, m := range step.Movements {
		if !declared[m.ObjectID] {
			continue
		}
		if len(kept) == MaxMovements {
			break
		}
		kept = append(kept, m)
	}
	step.Movements = kept

	if step.Chart != nil {
		if len(step.Chart.X) != len(step.Chart.Y) || len(step.Chart.X) < 2 {
			step.Chart = nil
		}
	}
}

// normalizeLevelSet repairs one level's problem set, falling back to the
// baseline set when every external problem had to be discarded.
func normalizeLevelSet(set domain.LevelProblemSet, fallback *domain.LevelProblemSet) domain.LevelProblemSet {
	set.PassingScore = math.Round(set.PassingScore)

	kept := make([]domain.Problem, 0, len(set.Problems))
	for _, p := range set.Problems {
		repaired, ok := normalizeProblem(p)
		if ok {
			kept = append(kept, repaired)
		}
	}

	if len(kept) == 0 && fallback != nil {
		kept = fallback.Problems
	}
	set.Problems = kept

	return set
}

// normalizeProblem deduplicates choice text and guarantees the designated
// answer is present among the choices. Returns false when fewer than two
// distinct choices remain.
func normalizeProblem(p domain.Problem) (domain.Problem, bool) {
	seen := map[string]bool{}
	unique := make([]string, 0, len(p.Choices))
	for _, choice := range p.Choices {
		if seen[choice] {
			continue
		}
		seen[choice] = true
		unique = append(unique, choice)
	}

	if !seen[p.Answer] {
		if len(unique) >= MaxChoices {
			// Make room by dropping the last distractor.
			unique = unique[:MaxChoices-1]
		}
		unique = append(unique, p.Answer)
	}

	if len(unique) < MinChoices {
		return p, false
	}

	p.Choices = unique
	return p, true
}
