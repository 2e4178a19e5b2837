// Package critique fans a generated asset out to independent specialist
// evaluators and joins their verdicts.
package critique

import "adprompt/internal/score"

// Specialist configures one evaluator: the dimension it owns and the
// instruction scoping it to that dimension. The responsibility split
// between dimensions lives here as data, not in the pool.
type Specialist struct {
	Dimension         score.Dimension
	SystemInstruction string
}

const passGuidelines = `Scoring:
- 1.0 = flawless; 0.8 = acceptable; <0.8 = failing.
- Use the full range when warranted.
- Set "status" to "pass" only when score >= threshold and no material violations exist.
- Provide one sentence summary with concrete evidence (palette colors, frame numbers, specific phrases).
- Include "citations" array when you can reference frames or copy snippets.`

const brandFitInstruction = passGuidelines + `
Focus on:
- CRITICAL: Brand name spelling - verify the exact brand name appears correctly in ALL text overlays, logos, and captions. Even one letter wrong is a FAIL.
- Logo or brand asset correctness (no distortions, correct usage, spelling accuracy).
- Palette adherence: highlight matches/mismatches to provided HEX list or inferred colors.
- Tone alignment with brand voice and target audience.
- Check prohibited phrases are absent.
If brand name is misspelled anywhere (including in logo text), immediately set status to "fail" and score < 0.5.
If assets are missing, reason about likelihood of on-brand representation and penalize uncertainty.`

const visualQualityInstruction = passGuidelines + `
Focus on:
- Sharpness, lighting, composition, absence of glitches/watermarks.
- Consistency of logo/product visibility across frames.
- Text readability, if any.
- Production polish vs obvious artifacts.
Discount minor issues but flag severe distortions immediately.`

const safetyInstruction = passGuidelines + `
Focus ONLY on safety concerns:
- Harmful, violent, or adult content.
- Bias, stereotypes, offensive gestures, unsafe scenes.
- Misleading claims or medical/financial promises.
- Copyright concerns (non-brand logos, known celebrities, watermarks).
DO NOT evaluate brand name spelling, product visibility, or brand adherence - those are handled by other agents.
Err on caution: if unsure, lower the score and document the risk.`

const clarityInstruction = passGuidelines + `
Focus on:
- Does the viewer understand the product, benefit, and CTA quickly?
- Alignment between visuals, caption, and brand positioning.
- CRITICAL: Verify brand name spelling in ALL visible text (logos, overlays, captions, CTAs). Compare letter-by-letter against the provided brand name.
- Detect hallucinated text discrepancies (e.g., wrong tagline, misspelled brand name).
- Ensure CTA is actionable and precise.
Penalize confusion, mixed messaging, missing CTA, or any brand name misspelling (immediate fail if detected).`

const textAccuracyInstruction = passGuidelines + `
Focus ONLY on text accuracy:
- Transcribe every piece of visible text across the frames.
- Compare the brand name letter-by-letter against the provided brand name; any mismatch is an immediate fail with score < 0.5.
- Flag garbled, hallucinated, or partially rendered words.
DO NOT judge composition, safety, or palette - those are handled by other agents.`

const productPresenceInstruction = passGuidelines + `
Focus ONLY on product visibility:
- The described product must be physically visible, recognizable, and prominent (not abstract, not implied).
- Note in which frames the product appears and how clearly.
- If the product never appears, immediately set status to "fail" and score < 0.5.
DO NOT judge spelling, safety, or tone - those are handled by other agents.`

// DefaultSpecialists returns the baseline evaluator set in its canonical
// order. The scorecard lists dimensions in this order.
func DefaultSpecialists() []Specialist {
	return []Specialist{
		{Dimension: score.DimensionBrandFit, SystemInstruction: brandFitInstruction},
		{Dimension: score.DimensionVisualQuality, SystemInstruction: visualQualityInstruction},
		{Dimension: score.DimensionSafety, SystemInstruction: safetyInstruction},
		{Dimension: score.DimensionClarity, SystemInstruction: clarityInstruction},
	}
}

// ExtendedSpecialists adds the single-purpose text accuracy and product
// presence evaluators, recommended when brand-name or product-visibility
// correctness is critical.
func ExtendedSpecialists() []Specialist {
	return append(DefaultSpecialists(),
		Specialist{Dimension: score.DimensionTextAccuracy, SystemInstruction: textAccuracyInstruction},
		Specialist{Dimension: score.DimensionProductPresence, SystemInstruction: productPresenceInstruction},
	)
}
