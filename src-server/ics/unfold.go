package ics

import "strings"

// Reverse line folding. Physical lines are split on CRLF or LF; a line
// beginning with exactly one space continues the previous logical line
// (the single space is stripped, nothing is inserted between the parts).
// Once a logical line is complete, every literal two-character `\n` inside
// it is restored to a real newline.
//
// A continuation as the very first line has no predecessor; its content
// simply starts the first logical line. Blank physical lines are dropped.
func unfoldLines(rawText string) []string {
	rawText = strings.ReplaceAll(rawText, "\r\n", "\n")

	logical := make([]string, 0)
	var current string
	for _, line := range strings.Split(rawText, "\n") {
		if strings.HasPrefix(line, " ") {
			current += strings.TrimPrefix(line, " ")
			continue
		}
		if current != "" {
			logical = append(logical, strings.ReplaceAll(current, `\n`, "\n"))
		}
		current = line
	}
	if current != "" {
		logical = append(logical, strings.ReplaceAll(current, `\n`, "\n"))
	}
	return logical
}

// Fold one physical line into 75-character chunks, continuation chunks
// prefixed with a single space. The trailing newline is left to the caller.
func foldLine(line string) string {
	if len(line) <= 75 {
		return line
	}

	slice := func() []string {
		var slice []string
		for i := 0; i < len(line); i += 75 {
			begin := i
			end := i + 75
			if end > len(line) {
				end = len(line)
			}
			slice = append(slice, line[begin:end])
		}
		return slice
	}()
	return strings.Join(slice, "\n ")
}
