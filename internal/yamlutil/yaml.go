// Package yamlutil is the single point of contact with the YAML library.
// Callers depend on this package, not on the parser, so the parser can be
// replaced in one place.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps accepted input at 1MB. A metadata file larger than
// that is almost certainly not a metadata file.
var MaxInputSize = 1024 * 1024

var (
	ErrNilData        = errors.New("yamlutil: no input to parse")
	ErrNilDestination = errors.New("yamlutil: destination must be a non-nil pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input too large")
)

// UnmarshalStrict parses data into v, rejecting unknown fields so typos
// in configuration keys fail loudly instead of being ignored.
func UnmarshalStrict(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes, max %d", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
