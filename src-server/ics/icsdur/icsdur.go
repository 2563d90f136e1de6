// The `icsdur` package backs the codec's DurationCodec capability with
// senseyeio/duration, an ISO-8601 duration parser/formatter.
package icsdur

import (
	"fmt"

	"github.com/senseyeio/duration"
)

type Codec struct{}

func New() Codec {
	return Codec{}
}

// Parse a duration literal like `P1DT2H30M`.
func (Codec) Parse(rawValue string) (any, error) {
	result, err := duration.ParseISO8601(rawValue)
	if err != nil {
		return nil, fmt.Errorf("icsdur.Parse: %w", err)
	}
	return result, nil
}

// Format a value previously produced by Parse back into its literal form.
func (Codec) Format(val any) (string, error) {
	result, ok := val.(duration.Duration)
	if !ok {
		return "", fmt.Errorf("icsdur.Format: not a duration: %T", val)
	}
	return result.String(), nil
}
