package recommend

// LengthMatches reports whether a page count fits the preferred length bucket.
// An unknown page count (<= 0) always matches: absence of data must never
// exclude a candidate. The 200 and 400 boundaries deliberately belong to two
// buckets each.
func LengthMatches(pages int, lengthPref string) bool {
	if pages <= 0 {
		return true
	}

	switch lengthPref {
	case "short":
		return pages <= 200
	case "medium":
		return pages >= 200 && pages <= 400
	case "long":
		return pages >= 400
	default:
		return true
	}
}
