package shaping

import (
	"golang.org/x/text/unicode/bidi"
)

// baseIsRTL applies rules P2 and P3: the first strong character decides the
// paragraph direction. Text without strong characters is left-to-right.
func baseIsRTL(line string) bool {
	for _, r := range line {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return false
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}

// visualOrder reorders one logical line into visual order for a renderer
// that draws strictly left to right.
func visualOrder(line string) (visual string, rtl bool) {
	rtl = baseIsRTL(line)
	if line == "" {
		return line, rtl
	}

	base := 0
	if rtl {
		base = 1
	}
	runes := []rune(line)
	levels := resolveLevels(runes, base)
	for i, r := range runes {
		if levels[i]%2 == 1 {
			runes[i] = mirror(r)
		}
	}
	reorderLine(runes, levels)
	return string(runes), rtl
}

// bidiClasses returns the class of every rune. Explicit embedding, override
// and isolate controls are not honored and count as neutrals, as do
// boundary neutrals.
func bidiClasses(runes []rune) []bidi.Class {
	classes := make([]bidi.Class, len(runes))
	for i, r := range runes {
		props, _ := bidi.LookupRune(r)
		c := props.Class()
		if c == bidi.BN || c >= bidi.Control {
			c = bidi.ON
		}
		classes[i] = c
	}
	return classes
}

// resolveLevels runs the weak (W1-W7), neutral (N1-N2) and implicit (I1-I2)
// rules over a line with no explicit embeddings and applies L1.
func resolveLevels(runes []rune, base int) []int {
	n := len(runes)
	orig := bidiClasses(runes)
	types := make([]bidi.Class, n)
	copy(types, orig)

	sos := bidi.L
	if base%2 == 1 {
		sos = bidi.R
	}

	// W1
	for i := range types {
		if types[i] == bidi.NSM {
			if i == 0 {
				types[i] = sos
			} else {
				types[i] = types[i-1]
			}
		}
	}

	// W2, W3
	last := sos
	for i, t := range types {
		switch t {
		case bidi.L, bidi.R:
			last = t
		case bidi.AL:
			last = t
			types[i] = bidi.R
		case bidi.EN:
			if last == bidi.AL {
				types[i] = bidi.AN
			}
		}
	}

	// W4
	for i := 1; i < n-1; i++ {
		prev, next := types[i-1], types[i+1]
		switch {
		case types[i] == bidi.ES && prev == bidi.EN && next == bidi.EN:
			types[i] = bidi.EN
		case types[i] == bidi.CS && prev == next && (prev == bidi.EN || prev == bidi.AN):
			types[i] = prev
		}
	}

	// W5
	for i := 0; i < n; {
		if types[i] != bidi.ET {
			i++
			continue
		}
		j := i
		for j < n && types[j] == bidi.ET {
			j++
		}
		if (i > 0 && types[i-1] == bidi.EN) || (j < n && types[j] == bidi.EN) {
			fill(types[i:j], bidi.EN)
		}
		i = j
	}

	// W6
	for i, t := range types {
		if t == bidi.ES || t == bidi.ET || t == bidi.CS {
			types[i] = bidi.ON
		}
	}

	// W7
	last = sos
	for i, t := range types {
		switch t {
		case bidi.L, bidi.R:
			last = t
		case bidi.EN:
			if last == bidi.L {
				types[i] = bidi.L
			}
		}
	}

	// N1, N2
	for i := 0; i < n; {
		if !isNeutral(types[i]) {
			i++
			continue
		}
		j := i
		for j < n && isNeutral(types[j]) {
			j++
		}
		before, after := sos, sos
		if i > 0 {
			before = strongDirection(types[i-1])
		}
		if j < n {
			after = strongDirection(types[j])
		}
		if before == after {
			fill(types[i:j], before)
		} else {
			fill(types[i:j], sos)
		}
		i = j
	}

	// I1, I2
	levels := make([]int, n)
	for i, t := range types {
		levels[i] = base
		switch {
		case base%2 == 0 && t == bidi.R:
			levels[i]++
		case base%2 == 0 && (t == bidi.AN || t == bidi.EN):
			levels[i] += 2
		case base%2 == 1 && (t == bidi.L || t == bidi.AN || t == bidi.EN):
			levels[i]++
		}
	}

	// L1
	trailing := true
	for i := n - 1; i >= 0; i-- {
		switch c := orig[i]; {
		case c == bidi.S || c == bidi.B:
			levels[i] = base
			trailing = true
		case trailing && isWhitespace(runes[i], c):
			levels[i] = base
		default:
			trailing = false
		}
	}
	return levels
}

// reorderLine applies rule L2 in place: from the highest level down to the
// lowest odd level, every maximal sequence at that level or higher is
// reversed.
func reorderLine(runes []rune, levels []int) {
	highest, lowestOdd := 0, -1
	for _, l := range levels {
		if l > highest {
			highest = l
		}
		if l%2 == 1 && (lowestOdd < 0 || l < lowestOdd) {
			lowestOdd = l
		}
	}
	if lowestOdd < 0 {
		return
	}

	for level := highest; level >= lowestOdd; level-- {
		for i := 0; i < len(levels); {
			if levels[i] < level {
				i++
				continue
			}
			j := i
			for j < len(levels) && levels[j] >= level {
				j++
			}
			reverseRunes(runes[i:j])
			reverseLevels(levels[i:j])
			i = j
		}
	}
}

func isNeutral(c bidi.Class) bool {
	switch c {
	case bidi.B, bidi.S, bidi.WS, bidi.ON:
		return true
	}
	return false
}

// isWhitespace reports the characters rule L1 resets at the end of a line.
func isWhitespace(r rune, c bidi.Class) bool {
	if c == bidi.WS {
		return true
	}
	props, _ := bidi.LookupRune(r)
	cls := props.Class()
	return cls == bidi.BN || cls >= bidi.Control
}

// strongDirection maps a resolved type to L or R for rule N1. Numbers
// count as R.
func strongDirection(c bidi.Class) bidi.Class {
	if c == bidi.L {
		return bidi.L
	}
	return bidi.R
}

// mirror returns the mirrored glyph of a bracket, or r itself.
func mirror(r rune) rune {
	props, _ := bidi.LookupRune(r)
	if !props.IsBracket() {
		return r
	}
	for _, m := range bidi.ReverseString(string(r)) {
		return m
	}
	return r
}

func fill(types []bidi.Class, c bidi.Class) {
	for i := range types {
		types[i] = c
	}
}

func reverseRunes(s []rune) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseLevels(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
