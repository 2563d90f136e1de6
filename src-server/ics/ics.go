// The `ics` package decodes and encodes line-folded, BEGIN/END-delimited
// calendar text (iCalendar-style) into an ordered block tree.
//
// # References:
// - RFC5545: https://datatracker.ietf.org/doc/html/rfc5545
//
// # Notes:
// - The decoder keeps everything it reads: unknown properties, duplicate
//   parameters and their order all survive into the Document, so a decoded
//   document re-encodes byte-for-byte (modulo folding and CRLF/LF).
// - Duration literals and the IANA zone database are injected capabilities;
//   the package itself never touches a date/time library beyond `time`.
//
// # Example usage:
//
// Decode a calendar
//	decoder := ics.NewDecoder(tzdb.New(), icsdur.New())
//	doc, err := decoder.Decode(rawText)
//
// Encode it back
//	encoder := ics.Encoder{Durations: icsdur.New()}
//	rawText = encoder.Encode(doc)
package ics

import "strings"

// An Entry is one item inside a block body: either a nested *Block or a
// *Property, in source order.
type Entry interface {
	entry()
}

// The decoded form of a whole input text. Entries holds the top-level
// blocks (and any stray top-level properties) in order of first occurrence.
type Document struct {
	Entries []Entry
}

// Get a top-level block by key. The key is normalized before lookup.
func (d *Document) Block(key string) *Block {
	key = NormalizeKey(key)
	for _, entry := range d.Entries {
		if block, ok := entry.(*Block); ok && block.Key == key {
			return block
		}
	}
	return nil
}

// A named BEGIN/END section. All sibling blocks sharing the same normalized
// key are merged into one Block; Bodies holds each occurrence's entries in
// the order the occurrences appeared.
type Block struct {
	Key    string
	Bodies [][]Entry
}

func (b *Block) entry() {}

// Get the first nested block with the given key, searching every body.
func (b *Block) Block(key string) *Block {
	key = NormalizeKey(key)
	for _, body := range b.Bodies {
		for _, entry := range body {
			if block, ok := entry.(*Block); ok && block.Key == key {
				return block
			}
		}
	}
	return nil
}

// A single `key[;params]:value` line. Params keeps the parameters exactly
// as written (minus key normalization): order preserved, duplicates kept,
// values verbatim including any quote characters.
type Property struct {
	Key    string
	Value  TypedValue
	Params []Param
}

func (p *Property) entry() {}

// Get the first parameter with the given key. The key is normalized
// before lookup.
func (p *Property) Param(key string) (string, bool) {
	key = NormalizeKey(key)
	for _, param := range p.Params {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

// One `key=value` parameter. Key is normalized, Value is verbatim.
type Param struct {
	Key   string
	Value string
}

// Normalize an identifier (block name, property name or parameter name):
// `-` becomes `_`, everything is lower-cased, and the result is capped at
// 255 bytes. Normalizing twice is a no-op.
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.ReplaceAll(key, "-", "_"))
	if len(key) > 255 {
		key = key[:255]
	}
	return key
}

// The inverse of NormalizeKey, used when writing keys back out: `_` becomes
// `-` and everything is upper-cased. Case and truncation are the only
// information NormalizeKey discards.
func DenormalizeKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "_", "-"))
}
