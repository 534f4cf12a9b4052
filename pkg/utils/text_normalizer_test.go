package utils

import (
	"testing"
)

func TestNormalize_FoldsDiacritics(t *testing.T) {
	result := Normalize("Limón ÁGUILA")
	if result != "limon aguila" {
		t.Errorf("expected 'limon aguila', got %q", result)
	}
}

func TestNormalize_StripsPunctuation(t *testing.T) {
	result := Normalize("¿agua... mineral?")
	if result != "agua mineral" {
		t.Errorf("expected 'agua mineral', got %q", result)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	result := Normalize("  papas \t fritas \n picantes ")
	if result != "papas fritas picantes" {
		t.Errorf("expected 'papas fritas picantes', got %q", result)
	}
}

func TestNormalize_Empty(t *testing.T) {
	if Normalize("") != "" {
		t.Error("expected empty string")
	}
	if Normalize("  \t ¡¡¡ ") != "" {
		t.Error("expected whitespace/punctuation-only input to normalize to empty")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Limón ÁGUILA",
		"té helado (500ml)",
		"  ñoño   Ñandú  ",
		"h2o",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenizeQuery(t *testing.T) {
	tokens := TokenizeQuery("Fruta FRESCA, barata!")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %v", tokens)
	}
	if tokens[0] != "fruta" || tokens[1] != "fresca" || tokens[2] != "barata" {
		t.Errorf("unexpected tokens: %v", tokens)
	}
}

func TestTokenizeQuery_Blank(t *testing.T) {
	if TokenizeQuery("   ") != nil {
		t.Error("expected nil tokens for blank query")
	}
}
