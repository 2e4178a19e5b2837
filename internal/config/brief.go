package config

import (
	"encoding/json"
	"fmt"
	"os"

	"adprompt/internal/brand"
)

// BriefFile is the JSON document the CLI consumes: one brand kit, one
// campaign, and an optional user caption.
type BriefFile struct {
	Brand    brand.Kit           `json:"brand"`
	Campaign brand.CampaignBrief `json:"campaign"`
	Caption  string              `json:"caption,omitempty"`
}

// LoadBrief reads and validates a brief file.
func LoadBrief(path string) (*BriefFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var brief BriefFile
	if err := json.Unmarshal(data, &brief); err != nil {
		return nil, fmt.Errorf("parse brief %s: %w", path, err)
	}

	if brief.Brand.Name == "" {
		return nil, fmt.Errorf("brief %s: brand.name is required", path)
	}
	if brief.Campaign.ProductDescription == "" {
		return nil, fmt.Errorf("brief %s: campaign.productDescription is required", path)
	}
	return &brief, nil
}
