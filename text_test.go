package grapher

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func fixedWidth(str string) float64 {
	return float64(utf8.RuneCountInString(str)) * 7
}

func TestFitText(t *testing.T) {
	data := []struct {
		Text   string
		Budget float64
		Want   string
	}{
		{Text: "hello", Budget: 35, Want: "hello"},
		{Text: "hello world", Budget: 50, Want: "hell..."},
		{Text: "hello world", Budget: 21, Want: "..."},
		{Text: "ééééé", Budget: 30, Want: "é..."},
		{Text: "", Budget: 0, Want: ""},
	}
	for _, d := range data {
		got := FitText(d.Text, d.Budget, fixedWidth)
		if got != d.Want {
			t.Errorf("%q/%f: text mismatched! want %q, got %q", d.Text, d.Budget, d.Want, got)
		}
	}
}

func TestFitTextProperties(t *testing.T) {
	texts := []string{
		"",
		"x",
		"a chart title",
		"a much longer chart title that will not fit anywhere",
		strings.Repeat("w", 100),
	}
	ellipsis := fixedWidth(Ellipsis)
	for _, text := range texts {
		for budget := ellipsis; budget <= 400; budget += 13 {
			got := FitText(text, budget, fixedWidth)
			if w := fixedWidth(got); w > budget {
				t.Errorf("%q/%f: %q exceeds budget (%f)", text, budget, got, w)
			}
			if again := FitText(got, budget, fixedWidth); again != got {
				t.Errorf("%q/%f: not idempotent: %q then %q", text, budget, got, again)
			}
			if got != text && !strings.HasSuffix(got, Ellipsis) {
				t.Errorf("%q/%f: truncated text without ellipsis: %q", text, budget, got)
			}
		}
	}
}
