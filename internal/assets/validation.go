package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that name can be used as a bare file name.
// Separators and dots are rejected, which rules out traversal and
// extension tricks.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
