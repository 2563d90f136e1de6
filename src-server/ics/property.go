package ics

import "strings"

// Parse one logical, non-block line into a Property.
//
// The line splits on the first `:` into key-and-params and raw value; a
// line with no `:` at all fails the decode. Parameters split on `;`, each
// one on its first `=`; anything after that first `=` (base64 padding,
// unquoted `=` inside a value) stays in the parameter value untouched.
func (d *Decoder) parseProperty(line string) (*Property, *CustomError) {
	slice := strings.SplitN(line, ":", 2)
	if len(slice) != 2 {
		return nil, NewCustomError(KindMalformedProperty, "property has no value", map[string]any{
			"content": line,
		})
	}
	fragments := strings.Split(slice[0], ";")
	key := fragments[0]
	rawValue := slice[1]

	// a bare DURATION property parses strictly, unlike the lenient
	// VALUE=DURATION parameter path
	if len(fragments) == 1 && strings.ToUpper(strings.TrimSpace(key)) == "DURATION" {
		val, err := d.Durations.Parse(rawValue)
		if err != nil {
			return nil, NewCustomError(KindMalformedDuration, "can't parse duration value", map[string]any{
				"content": rawValue,
				"err":     err,
			})
		}
		return &Property{
			Key:    NormalizeKey(key),
			Value:  Duration{Val: val, Raw: rawValue},
			Params: []Param{},
		}, nil
	}

	params := make([]Param, 0, len(fragments)-1)
	for _, fragment := range fragments[1:] {
		parts := strings.Split(fragment, "=")
		params = append(params, Param{
			Key:   NormalizeKey(parts[0]),
			Value: strings.Join(parts[1:], "="),
		})
	}

	value, err := d.classifyValue(rawValue, params)
	if err != nil {
		return nil, err
	}
	return &Property{
		Key:    NormalizeKey(key),
		Value:  value,
		Params: params,
	}, nil
}
