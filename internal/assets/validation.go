package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects names that are empty or could address another
// file: path separators and dots are not allowed.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, `/\.`):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// SanitizeCSS escapes "</" so a stylesheet cannot end the <style> element
// it is inlined into.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
