// Package brand holds the brand kit and campaign brief records that drive
// generation. Both are owned by the calling application and passed read-only
// into the loop.
package brand

import "time"

// Kit is one immutable version of a brand identity.
type Kit struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"ownerId"`
	Name                string    `json:"name"`
	ToneDescription     string    `json:"toneDescription,omitempty"`
	TargetAudience      string    `json:"targetAudience,omitempty"`
	PrimaryCallToAction string    `json:"primaryCallToAction,omitempty"`
	ProhibitedPhrases   []string  `json:"prohibitedPhrases,omitempty"`
	DerivedPaletteHex   []string  `json:"derivedPaletteHex,omitempty"`
	LogoPath            string    `json:"logoPath,omitempty"`
	PaletteAssetPath    string    `json:"paletteAssetPath,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// CampaignBrief describes a single campaign under a brand kit.
type CampaignBrief struct {
	ID                 string    `json:"id"`
	BrandKitID         string    `json:"brandKitId"`
	ProductDescription string    `json:"productDescription"`
	Audience           string    `json:"audience"`
	CallToAction       string    `json:"callToAction"`
	ToneKeywords       []string  `json:"toneKeywords"`
	ProductImagePath   string    `json:"productImagePath,omitempty"`
	AdditionalAssets   []string  `json:"additionalAssets,omitempty"`
	RegenLimit         int       `json:"regenLimit"`
	CreatedAt          time.Time `json:"createdAt"`
}
