package transcript

import "testing"

func TestJaccard_PartialOverlap(t *testing.T) {
	// Token sets {a,b,c} and {a,b,d}: intersection 2, union 4
	got := Jaccard("a b c", "a b d")
	if got != 0.5 {
		t.Fatalf("Jaccard = %v, want 0.5", got)
	}
}

func TestJaccard_Symmetric(t *testing.T) {
	a := "the motion carries tonight"
	b := "the motion fails tonight"

	if Jaccard(a, b) != Jaccard(b, a) {
		t.Fatalf("Jaccard(a,b) = %v, Jaccard(b,a) = %v, want equal", Jaccard(a, b), Jaccard(b, a))
	}
}

func TestJaccard_Identity(t *testing.T) {
	text := "we argue therefore we are"
	if got := Jaccard(text, text); got != 1 {
		t.Fatalf("Jaccard(X,X) = %v, want 1", got)
	}
}

func TestJaccard_BothEmpty(t *testing.T) {
	if got := Jaccard("", ""); got != 1 {
		t.Fatalf("Jaccard(\"\",\"\") = %v, want 1", got)
	}
}

func TestJaccard_OneEmpty(t *testing.T) {
	if got := Jaccard("something", ""); got != 0 {
		t.Fatalf("Jaccard with one empty side = %v, want 0", got)
	}
}

func TestJaccard_DuplicatesCollapse(t *testing.T) {
	// Repeated tokens within one text count once
	if got := Jaccard("hear hear the motion", "hear the motion"); got != 1 {
		t.Fatalf("Jaccard with repeated tokens = %v, want 1", got)
	}
}

func TestJaccard_CaseAndPunctuationSensitive(t *testing.T) {
	if got := Jaccard("Motion", "motion"); got != 0 {
		t.Fatalf("Jaccard across case = %v, want 0", got)
	}
	if got := Jaccard("carries.", "carries"); got != 0 {
		t.Fatalf("Jaccard across punctuation = %v, want 0", got)
	}
}
