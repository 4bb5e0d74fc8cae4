package chart

import "testing"

func TestResolveDisplay_ModalVariantWins(t *testing.T) {
	got := ResolveDisplay([]string{"hello", "Hello", "Hello", "HELLO"})
	if got != "Hello" {
		t.Errorf("Expected modal variant 'Hello', got %q", got)
	}
}

func TestResolveDisplay_TieBrokenByFirstOccurrence(t *testing.T) {
	got := ResolveDisplay([]string{"Artist X", "ARTIST X", "Artist X", "ARTIST X"})
	if got != "Artist X" {
		t.Errorf("Expected first-seen variant 'Artist X', got %q", got)
	}
}

func TestResolveDisplay_NeverSynthesizesCasing(t *testing.T) {
	inputs := []string{"dOwN bAd", "Down Bad", "down bad"}
	got := ResolveDisplay(inputs)

	found := false
	for _, in := range inputs {
		if got == in {
			found = true
		}
	}
	if !found {
		t.Errorf("Resolved spelling %q is not one of the inputs", got)
	}
}

func TestResolveDisplay_Empty(t *testing.T) {
	if got := ResolveDisplay(nil); got != "" {
		t.Errorf("Expected empty string for no candidates, got %q", got)
	}
}
