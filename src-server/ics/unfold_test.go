package ics

import "testing"

func TestUnfoldLines(t *testing.T) {
	// case: continuation lines merge with no separator inserted
	func() {
		lines := unfoldLines("SUMMARY:hello\n  world\nEND:VEVENT\n")
		if len(lines) != 2 {
			t.Fatal("expected 2 logical lines, got", len(lines))
		}
		// only one leading space is stripped
		if lines[0] != "SUMMARY:hello world" {
			t.Error("unexpected merged line:", lines[0])
		}
	}()

	// case: CRLF separators accepted
	func() {
		lines := unfoldLines("A:1\r\nB:2\r\n")
		if len(lines) != 2 || lines[0] != "A:1" || lines[1] != "B:2" {
			t.Error("unexpected lines:", lines)
		}
	}()

	// case: literal \n restored after the logical line is complete
	func() {
		lines := unfoldLines(`DESCRIPTION:first\nsecond` + "\n")
		if len(lines) != 1 {
			t.Fatal("expected 1 logical line, got", len(lines))
		}
		if lines[0] != "DESCRIPTION:first\nsecond" {
			t.Error("escaped newline not restored:", lines[0])
		}
	}()

	// case: a continuation as the very first line has no predecessor
	func() {
		lines := unfoldLines(" orphan\nA:1\n")
		if len(lines) != 2 || lines[0] != "orphan" || lines[1] != "A:1" {
			t.Error("unexpected lines:", lines)
		}
	}()

	// case: blank physical lines are dropped
	func() {
		lines := unfoldLines("A:1\n\nB:2\n")
		if len(lines) != 2 {
			t.Error("expected 2 logical lines, got", len(lines))
		}
	}()
}

func TestFoldLine(t *testing.T) {
	short := "SUMMARY:short enough"
	if foldLine(short) != short {
		t.Error("short line should not fold")
	}

	long := ""
	for range 40 {
		long += "abcd"
	} // 160 chars
	folded := foldLine(long)
	if folded != long[:75]+"\n "+long[75:150]+"\n "+long[150:] {
		t.Error("unexpected folding:", folded)
	}

	// folding then unfolding is the identity
	lines := unfoldLines(folded + "\n")
	if len(lines) != 1 || lines[0] != long {
		t.Error("fold/unfold not inverse")
	}
}
