package components

import "regexp"

// FallbackColor is drawn for any colour that fails SafeColor
const FallbackColor = "gray"

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{1,30})$`)

// SafeColor returns c if it is a hex colour or a CSS colour keyword, else FallbackColor.
// Player colours are written into style attributes, so nothing else gets through.
func SafeColor(c string) string {
	if colorPattern.MatchString(c) {
		return c
	}
	return FallbackColor
}
