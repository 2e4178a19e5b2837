package brand

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/image/colornames"
)

var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{3,8}$`)

// NormalizeHex converts a single palette token into a canonical "#RRGGBB"
// value. Tokens may be hex strings with or without a leading '#' (shorthand
// "#ABC" expands, anything longer than six digits truncates to six) or CSS
// color names. Returns "" when the token cannot be interpreted as a color.
func NormalizeHex(token string) string {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ""
	}

	if hexPattern.MatchString(trimmed) {
		hex := strings.TrimPrefix(trimmed, "#")
		if len(hex) == 3 {
			hex = fmt.Sprintf("%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])
		}
		if len(hex) > 6 {
			hex = hex[:6]
		}
		if len(hex) != 6 {
			return ""
		}
		return "#" + strings.ToUpper(hex)
	}

	if c, ok := colornames.Map[strings.ToLower(trimmed)]; ok {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return ""
}

// CollectPalette normalizes a comma-separated list of colors, silently
// dropping tokens that are neither hex values nor recognized color names.
// Duplicates are removed, first occurrence wins, order is preserved.
func CollectPalette(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var palette []string
	seen := make(map[string]struct{})
	for _, token := range strings.Split(raw, ",") {
		hex := NormalizeHex(token)
		if hex == "" {
			continue
		}
		if _, dup := seen[hex]; dup {
			continue
		}
		seen[hex] = struct{}{}
		palette = append(palette, hex)
	}
	return palette
}

// SplitList parses a comma-separated field (prohibited phrases, tone
// keywords) into trimmed non-empty tokens.
func SplitList(raw string) []string {
	var out []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}
