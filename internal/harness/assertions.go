package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/covergen/internal/cover"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Layer    string
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Layer != "" {
		fmt.Fprintf(&buf, " [%s]", e.Layer)
	}
	fmt.Fprintf(&buf, "\n  Expected: %s\n  Actual: %s", e.Expected, e.Actual)
	return buf.String()
}

// EvaluateAssertions runs every assertion against doc and returns the
// failure messages in assertion order.
func EvaluateAssertions(doc *cover.Document, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(doc, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(doc *cover.Document, a Assertion) error {
	switch a.Type {
	case AssertFragmentContains:
		return assertFragmentContains(doc, a, true)
	case AssertFragmentExcludes:
		return assertFragmentContains(doc, a, false)
	case AssertElementCount:
		return assertElementCount(doc, a)
	case AssertLayerOrder:
		return assertLayerOrder(doc, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func fragment(doc *cover.Document, a Assertion) (string, error) {
	f, ok := doc.Fragment(a.Layer)
	if !ok {
		return "", &AssertionError{
			Type:     a.Type,
			Layer:    a.Layer,
			Expected: "layer present",
			Actual:   "layer missing from document",
		}
	}
	return f.SVG, nil
}

func assertFragmentContains(doc *cover.Document, a Assertion, want bool) error {
	svg, err := fragment(doc, a)
	if err != nil {
		return err
	}
	if strings.Contains(svg, a.Text) == want {
		return nil
	}
	expected, actual := fmt.Sprintf("contains %q", a.Text), "not found"
	if !want {
		expected, actual = fmt.Sprintf("does not contain %q", a.Text), "found"
	}
	return &AssertionError{Type: a.Type, Layer: a.Layer, Expected: expected, Actual: actual}
}

func assertElementCount(doc *cover.Document, a Assertion) error {
	svg, err := fragment(doc, a)
	if err != nil {
		return err
	}
	got := countElements(svg, a.Element)
	if got == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Layer:    a.Layer,
		Expected: fmt.Sprintf("%d <%s> elements", a.Count, a.Element),
		Actual:   fmt.Sprintf("%d", got),
	}
}

// countElements counts opening tags named element, so "<rect" does not
// also count "<rectangle".
func countElements(svg, element string) int {
	n := 0
	tag := "<" + element
	for i := 0; ; {
		j := strings.Index(svg[i:], tag)
		if j < 0 {
			return n
		}
		end := i + j + len(tag)
		if end == len(svg) || strings.ContainsRune(" \t\n/>", rune(svg[end])) {
			n++
		}
		i = end
	}
}

// assertLayerOrder checks relative order; other layers may intervene.
func assertLayerOrder(doc *cover.Document, a Assertion) error {
	positions := make(map[string]int, len(doc.Fragments))
	for i, f := range doc.Fragments {
		positions[f.Name] = i
	}

	last := -1
	for _, name := range a.Layers {
		pos, ok := positions[name]
		if !ok {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("layer %s present", name),
				Actual:   "missing",
			}
		}
		if pos < last {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("order %v", a.Layers),
				Actual:   fmt.Sprintf("%s appears too early", name),
			}
		}
		last = pos
	}
	return nil
}
