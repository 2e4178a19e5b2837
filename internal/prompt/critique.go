package prompt

import (
	"fmt"
	"strings"

	"adprompt/internal/score"
)

// CritiqueContext is the shared context block rendered into every
// specialist agent prompt within one iteration.
type CritiqueContext struct {
	BrandName         string
	BrandTone         string
	TargetAudience    string
	CallToAction      string
	ProhibitedPhrases []string
	DerivedPaletteHex []string
	ScoreThreshold    float64
	FrameLabels       []string
	Caption           string
}

// BuildAgentPrompt renders the instruction for one specialist agent: the
// shared brand/campaign context, the frame overview, the required JSON
// schema, and finally the dimension-specific system instruction.
func BuildAgentPrompt(ctx CritiqueContext, dimension score.Dimension, systemInstruction string) string {
	palette := "Brand palette not provided; use brand assets to infer."
	if len(ctx.DerivedPaletteHex) > 0 {
		palette = "Brand palette HEX: " + strings.Join(ctx.DerivedPaletteHex, ", ")
	}

	prohibited := "Prohibited phrases: none provided."
	if len(ctx.ProhibitedPhrases) > 0 {
		prohibited = "Prohibited phrases: " + strings.Join(ctx.ProhibitedPhrases, ", ")
	}

	overview := "No frames were extracted; rely on textual context only."
	frames := "N/A"
	if len(ctx.FrameLabels) > 0 {
		overview = fmt.Sprintf("You are provided with %d chronological frame image(s) from the candidate ad.", len(ctx.FrameLabels))
		var lines []string
		for i, label := range ctx.FrameLabels {
			lines = append(lines, fmt.Sprintf("Frame %d: %s", i+1, label))
		}
		frames = strings.Join(lines, "\n")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a specialist agent focused on %s.\n", dimension)
	fmt.Fprintf(&sb, "Brand: %s\n", ctx.BrandName)
	fmt.Fprintf(&sb, "Tone guidance: %s\n", orDefault(ctx.BrandTone, "None provided"))
	fmt.Fprintf(&sb, "Target audience: %s\n", orDefault(ctx.TargetAudience, "General"))
	fmt.Fprintf(&sb, "Call to action: %s\n", orDefault(ctx.CallToAction, "None provided"))
	sb.WriteString(palette + "\n")
	sb.WriteString(prohibited + "\n")
	fmt.Fprintf(&sb, "Score threshold for passing: %g\n", ctx.ScoreThreshold)
	fmt.Fprintf(&sb, "Caption/transcript: %s\n", orDefault(ctx.Caption, "N/A"))
	sb.WriteString("\n" + overview + "\n")
	sb.WriteString("Frames for review:\n")
	sb.WriteString(frames + "\n")
	sb.WriteString("\nReturn JSON strictly matching this schema:\n")
	fmt.Fprintf(&sb, `{
  "dimension": %q,
  "score": number between 0 and 1,
  "status": "pass" | "fail",
  "evidence": {
    "summary": string,
    "citations"?: string[]
  }
}
`, dimension)
	sb.WriteString(systemInstruction)
	return sb.String()
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
