package diff

// InlineSpan marks the differing region of a single changed line pair, for
// display only. Offsets are rune indices; the half-open span [OldStart,
// OldEnd) of the old line was replaced by [NewStart, NewEnd) of the new one.
type InlineSpan struct {
	OldStart int
	OldEnd   int
	NewStart int
	NewEnd   int
}

// Inline computes the changed region between two versions of one line by
// stripping the common prefix and suffix. Equal lines yield an empty span.
func Inline(oldLine, newLine string) InlineSpan {
	or := []rune(oldLine)
	nr := []rune(newLine)

	prefix := 0
	for prefix < len(or) && prefix < len(nr) && or[prefix] == nr[prefix] {
		prefix++
	}

	oldEnd, newEnd := len(or), len(nr)
	for oldEnd > prefix && newEnd > prefix && or[oldEnd-1] == nr[newEnd-1] {
		oldEnd--
		newEnd--
	}

	return InlineSpan{
		OldStart: prefix,
		OldEnd:   oldEnd,
		NewStart: prefix,
		NewEnd:   newEnd,
	}
}
