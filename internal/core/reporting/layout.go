package reporting

// Page budgets in millimetres for an A4 sheet with 10mm side margins.
const (
	PortraitUsableWidth  = 190
	LandscapeUsableWidth = 277
)

// MinTotalWidth is the narrowest the table can get: fixed columns at their
// nominal width plus every scalable column at its floor.
func MinTotalWidth(cols []Column) float64 {
	total := 0.0
	for _, c := range cols {
		if c.Fixed {
			total += c.Nominal
		} else {
			total += c.Min
		}
	}
	return total
}

// NeedsLandscape reports whether the schema cannot fit a portrait page even
// with every scalable column at its floor. This is a feasibility fallback,
// not a further shrink: numeric columns are never narrowed.
func NeedsLandscape(cols []Column) bool {
	return MinTotalWidth(cols) > PortraitUsableWidth
}

// NegotiateWidths distributes the usable page width over the columns.
// Fixed columns (numerics and partitions) keep their nominal width.
// Scalable columns shrink or grow proportionally to their share of the
// scalable total, clamped to per-column floor and ceiling; clamped columns
// drop out and the remainder is redistributed over the rest, so the widths
// sum to the usable width exactly unless every scalable column is pinned to
// a bound.
func NegotiateWidths(cols []Column, usableWidth float64) []float64 {
	widths := make([]float64, len(cols))
	remaining := usableWidth
	active := make([]int, 0, len(cols))
	for i, c := range cols {
		if c.Fixed {
			widths[i] = c.Nominal
			remaining -= c.Nominal
		} else {
			active = append(active, i)
		}
	}

	for len(active) > 0 {
		nominalTotal := 0.0
		for _, i := range active {
			nominalTotal += cols[i].Nominal
		}
		scale := remaining / nominalTotal

		clamped := false
		next := active[:0]
		for _, i := range active {
			w := cols[i].Nominal * scale
			switch {
			case w < cols[i].Min:
				widths[i] = cols[i].Min
				remaining -= cols[i].Min
				clamped = true
			case w > cols[i].Max:
				widths[i] = cols[i].Max
				remaining -= cols[i].Max
				clamped = true
			default:
				next = append(next, i)
			}
		}
		if !clamped {
			for _, i := range next {
				widths[i] = cols[i].Nominal * scale
			}
			break
		}
		active = next
	}
	return widths
}

// TruncateToWidth fits s into width under the given measure, appending an
// ellipsis when anything had to be cut. The cut point is found by binary
// search over the rune length so the ellipsis-suffixed string fits exactly.
func TruncateToWidth(measure func(string) float64, s string, width float64) string {
	if measure(s) <= width {
		return s
	}
	const ellipsis = "…"
	runes := []rune(s)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if measure(string(runes[:mid])+ellipsis) <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return string(runes[:lo]) + ellipsis
}

// WrapToWidth greedily wraps s into lines no wider than width, up to
// maxLines. The final line is ellipsis-truncated when text overflows, which
// bounds row height against arbitrarily long notes.
func WrapToWidth(measure func(string) float64, s string, width float64, maxLines int) []string {
	if maxLines <= 0 {
		return nil
	}
	words := splitWords(s)
	if len(words) == 0 {
		return nil
	}

	lines := []string{words[0]}
	for _, w := range words[1:] {
		last := lines[len(lines)-1]
		if measure(last+" "+w) <= width {
			lines[len(lines)-1] = last + " " + w
		} else {
			lines = append(lines, w)
		}
	}

	if len(lines) > maxLines {
		rest := lines[maxLines-1]
		for _, ln := range lines[maxLines:] {
			rest += " " + ln
		}
		lines = append(lines[:maxLines-1], rest)
	}
	for i, ln := range lines {
		if measure(ln) > width {
			lines[i] = TruncateToWidth(measure, ln, width)
		}
	}
	return lines
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
