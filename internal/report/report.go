package report

import (
	"fmt"
	"strings"

	"promptstudio/internal/storage"
)

// Classification is the alignment label a record gets in the report.
type Classification string

const (
	// Aligned means the style tag appears in the prompt text.
	Aligned Classification = "Aligned"
	// NotFullyAligned means an image exists but the style tag is absent
	// from the prompt text.
	NotFullyAligned Classification = "Not fully aligned"
	// NotApplicable means no image was produced, so there is nothing to
	// judge.
	NotApplicable Classification = "N/A"
)

// timeLayout matches the persisted timestamp format.
const timeLayout = "2006-01-02 15:04:05"

// Scorer classifies how well a record's style tag matches its prompt.
// It only sees text; judging actual image content is somebody else's
// problem, which is why this sits behind an interface: a semantic
// evaluator can replace the heuristic without touching the Generator.
type Scorer interface {
	Score(prompt, style string) Classification
}

// HeuristicScorer classifies with a case-insensitive substring check:
// the record is Aligned when the style tag occurs in the prompt text.
type HeuristicScorer struct{}

// Score implements Scorer.
func (HeuristicScorer) Score(prompt, style string) Classification {
	if strings.Contains(strings.ToLower(prompt), strings.ToLower(style)) {
		return Aligned
	}
	return NotFullyAligned
}

// Generator renders alignment reports from a record snapshot. It holds
// no state beyond the scorer and produces byte-identical output for
// identical input.
type Generator struct {
	scorer Scorer
}

// NewGenerator creates a report Generator using the given scorer.
func NewGenerator(scorer Scorer) *Generator {
	return &Generator{scorer: scorer}
}

// Classify returns the alignment label for a single record. Records
// without an image are N/A regardless of their text.
func (g *Generator) Classify(rec storage.PromptRecord) Classification {
	if rec.ImagePath == "" {
		return NotApplicable
	}
	return g.scorer.Score(rec.Prompt, rec.Style)
}

// Text renders the plain-text evaluation report: a fixed header plus
// one block per record, in input order.
func (g *Generator) Text(records []storage.PromptRecord) string {
	var b strings.Builder
	b.WriteString("Evaluation Report\n")
	b.WriteString(strings.Repeat("=", 20) + "\n")

	for _, rec := range records {
		image := rec.ImagePath
		if image == "" {
			image = "Not generated"
		}
		fmt.Fprintf(&b, "Prompt: %s\nStyle: %s\nImage: %s\nAlignment: %s\nTimestamp: %s\n\n",
			rec.Prompt, rec.Style, image, g.Classify(rec), rec.CreatedAt.Format(timeLayout))
	}

	return b.String()
}

// Markdown renders the same report content as a markdown table, for the
// browser view.
func (g *Generator) Markdown(records []storage.PromptRecord) string {
	var b strings.Builder
	b.WriteString("# Evaluation Report\n\n")

	if len(records) == 0 {
		b.WriteString("No prompts recorded yet.\n")
		return b.String()
	}

	b.WriteString("| Prompt | Style | Image | Alignment | Timestamp |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, rec := range records {
		image := rec.ImagePath
		if image == "" {
			image = "Not generated"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			escapeCell(rec.Prompt), escapeCell(rec.Style), escapeCell(image),
			g.Classify(rec), rec.CreatedAt.Format(timeLayout))
	}

	return b.String()
}

// escapeCell keeps user text from breaking the markdown table.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
