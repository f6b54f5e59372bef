package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenizeLowercases(t *testing.T) {
	got := Tokenize("La Comisión Europea")
	want := []string{"la", "comisión", "europea"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeSeparatesPunctuation(t *testing.T) {
	got := Tokenize("sin embargo, la comisión.")
	want := []string{"sin", "embargo", ",", "la", "comisión", "."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeCollapsesWhitespace(t *testing.T) {
	got := Tokenize("  el \t parlamento\neuropeo ")
	want := []string{"el", "parlamento", "europeo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize("   "); len(got) != 0 {
		t.Errorf("Tokenize of blank text = %v, want empty", got)
	}
}

func TestTokenizeAdjacentPunctuation(t *testing.T) {
	got := Tokenize(`"hola", dijo`)
	want := []string{`"`, "hola", `"`, ",", "dijo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}
