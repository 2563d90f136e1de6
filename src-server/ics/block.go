package ics

import "strings"

// Group unfolded logical lines into an entry sequence. Block interiors are
// handled by recursing into the slice between a BEGIN and its matching END;
// along the sibling axis this is a plain index scan, so deeply repeated
// siblings cost no stack.
//
// Sibling blocks sharing a normalized key collapse into a single Block:
// the first occurrence fixes the position in the entry order, every later
// occurrence appends its body.
func (d *Decoder) buildEntries(lines []string) ([]Entry, *CustomError) {
	entries := make([]Entry, 0, len(lines))
	blocks := make(map[string]*Block)

	i := 0
	for i < len(lines) {
		line := lines[i]
		key, ok := blockDelimiter(line, "BEGIN")
		if !ok {
			property, err := d.parseProperty(line)
			if err != nil {
				return nil, err
			}
			entries = append(entries, property)
			i++
			continue
		}

		end, found := matchingEnd(lines, i, key)
		if !found {
			return nil, NewCustomError(KindUnterminatedBlock, "block has no matching END", map[string]any{
				"key": key,
			})
		}
		interior, err := d.buildEntries(lines[i+1 : end])
		if err != nil {
			return nil, err
		}

		normalized := NormalizeKey(key)
		if block, ok := blocks[normalized]; ok {
			block.Bodies = append(block.Bodies, interior)
		} else {
			block := &Block{Key: normalized, Bodies: [][]Entry{interior}}
			blocks[normalized] = block
			entries = append(entries, block)
		}
		i = end + 1
	}
	return entries, nil
}

// Find the END line closing the BEGIN at index `begin`. Nested blocks with
// the same key are skipped by depth counting; blocks with other keys need
// no tracking since only same-key END lines are compared at all.
func matchingEnd(lines []string, begin int, key string) (int, bool) {
	normalized := NormalizeKey(key)
	depth := 1
	for j := begin + 1; j < len(lines); j++ {
		if k, ok := blockDelimiter(lines[j], "BEGIN"); ok && NormalizeKey(k) == normalized {
			depth++
			continue
		}
		if k, ok := blockDelimiter(lines[j], "END"); ok && NormalizeKey(k) == normalized {
			depth--
			if depth == 0 {
				return j, true
			}
		}
	}
	return 0, false
}

// Check whether a line is a `BEGIN:<K>` / `END:<K>` delimiter and return K.
func blockDelimiter(line string, marker string) (string, bool) {
	slice := strings.SplitN(line, ":", 2)
	if len(slice) != 2 {
		return "", false
	}
	if strings.ToUpper(strings.TrimSpace(slice[0])) != marker {
		return "", false
	}
	return strings.TrimSpace(slice[1]), true
}
