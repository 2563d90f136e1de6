package ics

import "strings"

// Encoder turns a Document back into calendar text, LF-separated with a
// trailing newline. Property lines are rebuilt from the stored parameter
// list (verbatim values, original order, duplicates kept), never from
// re-classifying the typed value, so anything the Decoder produced
// round-trips byte-for-byte (folding aside).
//
// Durations is only consulted for programmatically built Duration values
// that carry no literal text; decoded documents never need it.
type Encoder struct {
	Durations DurationCodec

	// re-fold lines at 75 columns; off by default since folding
	// positions are not recorded and refolding breaks byte-exactness
	Fold bool
}

// Encode a Document. Total over anything Decode produces.
func (e *Encoder) Encode(doc *Document) string {
	var sb strings.Builder
	for _, entry := range doc.Entries {
		e.writeEntry(&sb, entry)
	}
	return sb.String()
}

func (e *Encoder) writeEntry(sb *strings.Builder, entry Entry) {
	switch entry := entry.(type) {
	case *Block:
		key := DenormalizeKey(entry.Key)
		for _, body := range entry.Bodies {
			e.writeLine(sb, "BEGIN:"+key)
			for _, child := range body {
				e.writeEntry(sb, child)
			}
			e.writeLine(sb, "END:"+key)
		}
	case *Property:
		var line strings.Builder
		line.WriteString(DenormalizeKey(entry.Key))
		for _, param := range entry.Params {
			line.WriteString(";")
			line.WriteString(DenormalizeKey(param.Key))
			line.WriteString("=")
			line.WriteString(param.Value)
		}
		line.WriteString(":")
		line.WriteString(e.literal(entry.Value))
		e.writeLine(sb, strings.ReplaceAll(line.String(), "\n", `\n`))
	}
}

func (e *Encoder) writeLine(sb *strings.Builder, line string) {
	if e.Fold {
		line = foldLine(line)
	}
	sb.WriteString(line)
	sb.WriteString("\n")
}

// The literal text form of a typed value. Text, ZonedTime and Duration
// carry their own literal; UTCTime and Date re-derive theirs, which is
// lossless at whole-second/whole-day precision.
func (e *Encoder) literal(value TypedValue) string {
	switch value := value.(type) {
	case Text:
		return value.Raw
	case UTCTime:
		return value.Time.UTC().Format("20060102T150405Z")
	case ZonedTime:
		if value.Raw != "" {
			return value.Raw
		}
		return value.Time.UTC().Format("20060102T150405")
	case Date:
		return value.Time.Format("20060102")
	case Duration:
		if value.Raw != "" {
			return value.Raw
		}
		if e.Durations != nil {
			if formatted, err := e.Durations.Format(value.Val); err == nil {
				return formatted
			}
		}
		return ""
	default:
		return ""
	}
}
