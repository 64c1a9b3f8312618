package patternsyntax

import "testing"

func TestIs(t *testing.T) {
	for _, c := range []rune{'{', '}', '#', '<', '>', '!', '|', 0x2018, 0x2019} {
		if !Is(c) {
			t.Errorf("Is(%q) = false, want true", c)
		}
	}

	for _, c := range []rune{'a', 'Z', '0', '_', ' ', '中'} {
		if Is(c) {
			t.Errorf("Is(%q) = true, want false", c)
		}
	}
}

func TestIsSorted(t *testing.T) {
	for i := 1; i < len(codePoints); i++ {
		if codePoints[i] <= codePoints[i-1] {
			t.Fatalf("codePoints not strictly sorted at index %d: %d <= %d", i, codePoints[i], codePoints[i-1])
		}
	}
}
