package style

import "strconv"

// AlignmentFromJc maps a w:jc attribute value onto the rule vocabulary.
// Word writes "both" for justified text.
func AlignmentFromJc(val string) string {
	if val == "both" {
		return AlignJustify
	}
	if ValidAlignment(val) {
		return val
	}
	return ""
}

// JcFromAlignment maps a rule alignment onto the w:jc attribute value.
func JcFromAlignment(a string) string {
	if a == AlignJustify {
		return "both"
	}
	return a
}

// LineSpacingFromLine resolves the w:spacing line/lineRule attribute pair.
// An auto rule at the 240 base value is single spacing; exact and atLeast
// rules carry a point value (twentieths of a point on the wire). Other
// combinations are unresolvable and reported as absent.
func LineSpacingFromLine(line, lineRule string) (LineSpacing, bool) {
	if line == "" {
		return LineSpacing{}, false
	}
	switch lineRule {
	case "", "auto":
		if line == "240" {
			return SingleSpacing(), true
		}
	case "exact", "atLeast":
		if n, err := strconv.ParseFloat(line, 64); err == nil {
			return ExactSpacing(n / 20), true
		}
	}
	return LineSpacing{}, false
}
