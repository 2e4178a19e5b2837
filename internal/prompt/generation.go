// Package prompt composes the text instructions sent to the generation and
// critique models. Everything here is pure: no I/O, no clocks, identical
// inputs produce identical strings.
package prompt

import (
	"fmt"
	"strings"

	"adprompt/internal/brand"
	"adprompt/internal/score"
)

// GenerationContext carries everything the video generation prompt embeds.
type GenerationContext struct {
	Brand             *brand.Kit
	Campaign          *brand.CampaignBrief
	Iteration         int
	PreviousScorecard *score.Scorecard
	Caption           string
}

// BuildGenerationPrompt renders the full instruction for one generation
// attempt. Brand-name spelling accuracy is the highest-priority block
// because downstream critique treats any misspelling as an automatic fail.
func BuildGenerationPrompt(ctx GenerationContext) string {
	b := ctx.Brand
	c := ctx.Campaign

	palette := "Color palette: use brand-appropriate, modern tones."
	if len(b.DerivedPaletteHex) > 0 {
		palette = "Color palette: " + strings.Join(b.DerivedPaletteHex, ", ")
	}

	tone := b.ToneDescription
	if tone == "" {
		tone = "Maintain confident, upbeat tone consistent with the brand."
	}

	prohibited := "Avoid offensive or misleading language."
	if len(b.ProhibitedPhrases) > 0 {
		prohibited = "Avoid phrases: " + strings.Join(b.ProhibitedPhrases, ", ")
	}

	keywords := strings.Join(c.ToneKeywords, ", ")
	if keywords == "" {
		keywords = "energetic, trustworthy"
	}

	label := "Initial concept"
	if ctx.Iteration > 1 {
		label = fmt.Sprintf("Refinement pass #%d", ctx.Iteration)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are Veo, generating a %s for %s.", label, b.Name)

	if ctx.Caption != "" {
		sb.WriteString("\n\n🎬 USER'S CREATIVE DIRECTION:\n")
		sb.WriteString(ctx.Caption)
		sb.WriteString("\n\nFollow this creative direction closely while adhering to brand requirements below.")
	}

	sb.WriteString("\n\n⚠️ CRITICAL - BRAND NAME ACCURACY:\n")
	fmt.Fprintf(&sb, "The brand name is %q - spell it EXACTLY as shown.\n", b.Name)
	sb.WriteString("Do NOT misspell, modify, or alter the brand name in any way.\n")
	fmt.Fprintf(&sb, "If showing the brand name in text overlays, double-check the spelling matches %q precisely.\n", b.Name)

	fmt.Fprintf(&sb, "\nBrand voice: %s\n", tone)
	fmt.Fprintf(&sb, "Target audience: %s\n", c.Audience)
	fmt.Fprintf(&sb, "Product focus: %s\n", c.ProductDescription)
	fmt.Fprintf(&sb, "Call to action: %s\n", c.CallToAction)
	fmt.Fprintf(&sb, "Tone keywords: %s\n", keywords)
	sb.WriteString(palette + "\n")
	sb.WriteString(prohibited + "\n")
	sb.WriteString(feedbackSection(ctx.PreviousScorecard))

	sb.WriteString("\n\nRequirements:\n")
	fmt.Fprintf(&sb, "- CRITICAL #1: The PRODUCT (%s) MUST be physically visible in the video. If the product is not shown, this is an automatic FAIL.\n", c.ProductDescription)
	fmt.Fprintf(&sb, "- CRITICAL #2: The brand name %q must be spelled EXACTLY correctly in any text overlays or voice-over. Any typo or misspelling is an automatic FAIL.\n", b.Name)
	sb.WriteString("- Showcase the product clearly and prominently within the first second.\n")
	sb.WriteString("- Keep video between 5-10 seconds.\n")
	sb.WriteString("- Highlight CTA on screen text near the end.\n")
	sb.WriteString("- Ensure logo appears cleanly in final frame.\n")
	sb.WriteString("- Avoid hallucinated text or incorrect brand references.\n")
	sb.WriteString("- The product must be recognizable and clearly visible (not abstract, not implied).\n")
	sb.WriteString("\nProduce cinematic camera motion, crisp lighting, and social-ready composition.")

	return sb.String()
}

// feedbackSection partitions the previous scorecard into failing dimensions
// to fix and passing dimensions to preserve, each as explicit bullets.
func feedbackSection(prev *score.Scorecard) string {
	if prev == nil {
		return "No previous critique feedback; this is the first attempt."
	}

	var sb strings.Builder
	sb.WriteString("Previous video attempt had issues - PLEASE FIX THESE IN THIS GENERATION:\n")
	for _, s := range prev.Failing() {
		fmt.Fprintf(&sb, "- %s: %s\n", s.Dimension, s.Evidence.Summary)
	}

	passing := prev.Passing()
	if len(passing) > 0 {
		sb.WriteString("\nKeep these aspects from previous attempt:\n")
		for _, s := range passing {
			fmt.Fprintf(&sb, "- %s: %s\n", s.Dimension, s.Evidence.Summary)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
