package correction

import (
	"reflect"
	"testing"
)

func TestExtractKeywordsDeterministic(t *testing.T) {
	in := "La photosynthèse transforme l'énergie lumineuse en énergie chimique."
	a := extractKeywords(in, 0)
	b := extractKeywords(in, 0)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two extractions differ: %v vs %v", a, b)
	}
	if len(a) == 0 {
		t.Fatal("no keywords extracted")
	}
}

func TestExtractKeywordsDropsStopWordsAndShortTokens(t *testing.T) {
	out := extractKeywords("Le chat est sur la table, et il dort dans un panier.", 0)
	for _, k := range out {
		if _, stop := stopWords[k]; stop {
			t.Fatalf("stop-word %q leaked into keywords %v", k, out)
		}
		if len([]rune(k)) < defaultMinTokenLen {
			t.Fatalf("short token %q leaked into keywords %v", k, out)
		}
	}
}

func TestExtractKeywordsLowercasesAndSplits(t *testing.T) {
	out := extractKeywords("Mitochondrie: CENTRALE énergétique (de la cellule)!", 0)
	want := map[string]bool{"mitochondrie": true, "centrale": true, "énergétique": true, "cellule": true}
	if len(out) != len(want) {
		t.Fatalf("keywords = %v", out)
	}
	for _, k := range out {
		if !want[k] {
			t.Fatalf("unexpected keyword %q in %v", k, out)
		}
	}
}

func TestExtractKeywordsDeduplicates(t *testing.T) {
	out := extractKeywords("eau eau EAU Eau", 0)
	if len(out) != 1 || out[0] != "eau" {
		t.Fatalf("keywords = %v, want [eau]", out)
	}
}

func TestKeywordOverlap(t *testing.T) {
	ref := []string{"cellule", "mitochondrie", "énergie"}
	cases := []struct {
		name      string
		submitted []string
		want      float64
	}{
		{"full", []string{"cellule", "mitochondrie", "énergie"}, 1.0},
		{"partial", []string{"mitochondrie", "respiration"}, 1.0 / 3},
		{"none", []string{"volcan"}, 0},
		{"empty submission", nil, 0},
	}
	for _, tc := range cases {
		if got := keywordOverlap(ref, tc.submitted); got != tc.want {
			t.Errorf("%s: overlap = %v, want %v", tc.name, got, tc.want)
		}
	}
	if got := keywordOverlap(nil, []string{"x"}); got != 0 {
		t.Errorf("empty reference: overlap = %v, want 0", got)
	}
}

func TestTextSimilarityBounds(t *testing.T) {
	cases := []struct{ a, b string }{
		{"la mitose", "la mitose"},
		{"La Mitose.", "la mitose"},
		{"abc", "xyz"},
		{"", "quelque chose"},
	}
	for _, tc := range cases {
		got := textSimilarity(tc.a, tc.b)
		if got < 0 || got > 1 {
			t.Errorf("similarity(%q,%q) = %v out of [0,1]", tc.a, tc.b, got)
		}
	}
	if got := textSimilarity("La Mitose.", "la mitose"); got != 1.0 {
		t.Errorf("normalized-identical similarity = %v, want 1", got)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"chat", "chats", 1},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q,%q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
