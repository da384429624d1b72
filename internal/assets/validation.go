package assets

import (
	"fmt"
	"strings"
)

// nameDeniedChars are rejected in asset names: separators would let a name
// escape the style and template directories, dots would let it swap the
// extension the loaders append.
const nameDeniedChars = `/\.`

// ValidateAssetName checks that a name is a bare identifier safe to join
// into an asset path. Loaders call this before touching any filesystem, so
// "default" passes while "../default" and "default.css" do not.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, nameDeniedChars) {
		return fmt.Errorf("%w: %q contains a separator or dot", ErrInvalidAssetName, name)
	}
	return nil
}
