package grapher

const Ellipsis = "..."

// MeasureFunc reports the width in pixels of a text run.
type MeasureFunc func(string) float64

// FitText truncates text so that it fits in budget pixels, appending an
// ellipsis when characters had to be dropped. Text that already fits is
// returned unchanged.
func FitText(text string, budget float64, measure MeasureFunc) string {
	if measure(text) <= budget {
		return text
	}
	var (
		runes = []rune(text)
		ellip = measure(Ellipsis)
	)
	for len(runes) > 0 && measure(string(runes))+ellip > budget {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + Ellipsis
}
