package language

import "testing"

func TestResolve(t *testing.T) {
	cases := map[string]string{
		"":        English,
		"hi":      Hindi,
		"Hindi":   Hindi,
		"हिंदी":   Hindi,
		" MR ":    Marathi,
		"punjabi": Punjabi,
		"ta-IN":   Tamil,
		"fr":      English,
		"klingon": English,
	}
	for in, want := range cases {
		if got := Resolve(in); got != want {
			t.Fatalf("Resolve(%q)=%q want %q", in, got, want)
		}
	}
}

func TestNameAndLabel(t *testing.T) {
	if Name("kn") != "Kannada" {
		t.Fatalf("unexpected name %q", Name("kn"))
	}
	if Label("hi") != "Hindi (हिंदी)" {
		t.Fatalf("unexpected label %q", Label("hi"))
	}
	if Label("en") != "English" {
		t.Fatalf("unexpected label %q", Label("en"))
	}
	if len(Codes()) != 8 {
		t.Fatalf("expected 8 supported languages")
	}
}
