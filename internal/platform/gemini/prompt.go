package gemini

// defaultPromptTemplate asks the model for a single JSON object matching the
// content contract. The response is still treated as untrusted: the content
// pipeline extracts, validates, and repairs whatever comes back.
const defaultPromptTemplate = `You are a lesson designer for a 3D learning application.

Produce a lesson for the topic below as a single JSON object, with no text
before or after it.

Topic: {{.Title}}
Description: {{.Description}}
Difficulty level: {{.Level}}

The JSON object must have these fields:
- "description": one-paragraph summary of the lesson
- "visual_theme": a short theme tag for the 3D scene
- "narration": 3 to 8 spoken lines, each under 300 characters
- "steps": 3 to 12 simulation steps; each step has:
  - "objects": 1 to 24 objects with "id", "kind" (one of cube, sphere,
    cylinder, cone, torus, plane), "color" (hex), "size" (0 to 10),
    "position" {"x","y","z"} with each coordinate in [-30, 30],
    and optionally "rotation" and "label"
  - "movements": up to 40 entries with "object_id" referencing an object in
    the same step, "type" (one of translate, rotate, scale, orbit, pulse),
    "target" {"x","y","z"}, and "duration" in seconds
  - "annotation": one sentence describing the step
  - optionally "math_expressions" and "chart" {"x": [...], "y": [...]}
- "levels": an entry per difficulty level ("beginner", "intermediate",
  "advanced"), each with "passing_score" between 60 and 95 and "problems":
  1 to 12 multiple-choice problems with "question", "choices" (2 to 6
  distinct strings), "answer" (one of the choices, verbatim), and an
  optional "hint"
`
