package intent

import "testing"

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return NewClassifier(DefaultVocabulary())
}

func TestClassify_Categories(t *testing.T) {
	c := newTestClassifier(t)
	cases := []struct {
		msg  string
		want Category
	}{
		{"Hello there", Greeting},
		{"namaste ji", Greeting},
		{"नमस्ते", Greeting},
		{"Good morning!", Greeting},
		{"tell me about cricket and movies", NonFarming},
		{"what crop should I grow in this soil", CropRecommendation},
		{"best crop for my region", CropRecommendation},
		{"will it rain tomorrow in pune", Weather},
		{"latest news for wheat farmers", UpdateNews},
		{"what is the mandi price of wheat", MandiPrice},
		{"गेहूं का मंडी भाव क्या है", MandiPrice},
		{"how to apply for pm kisan", Scheme},
		{"my wheat has yellow leaves", Soil},
		{"cost of cultivation for cotton", Economics},
		{"which fertilizer for this field", GeneralFarming},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.msg); got != tc.want {
			t.Fatalf("Classify(%q)=%s want %s", tc.msg, got, tc.want)
		}
	}
}

func TestClassify_EmptyIsRejected(t *testing.T) {
	c := newTestClassifier(t)
	for _, m := range []string{"", "   ", "\n\t"} {
		if got := c.Classify(m); got != NonFarming {
			t.Fatalf("Classify(%q)=%s want non_farming", m, got)
		}
	}
}

func TestClassify_GreetingNeedsWordBoundary(t *testing.T) {
	c := newTestClassifier(t)
	if got := c.Classify("which fertilizer for this field"); got == Greeting {
		t.Fatalf("\"hi\" inside words must not count as a greeting")
	}
}

func TestClassify_GreetingBoundaryIsUnicodeAware(t *testing.T) {
	c := newTestClassifier(t)
	for _, m := range []string{"hí", "éhi there", "hi_there", "2hello"} {
		if got := c.Classify(m); got == Greeting {
			t.Fatalf("Classify(%q) = greeting, want no greeting match", m)
		}
	}
	for _, m := range []string{"hi", "hi, wheat price?", "ok hello!", "(namaste)"} {
		if got := c.Classify(m); got != Greeting {
			t.Fatalf("Classify(%q) = %s, want greeting", m, got)
		}
	}
}

func TestContainsWord(t *testing.T) {
	cases := []struct {
		m, w string
		want bool
	}{
		{"hi there", "hi", true},
		{"this", "hi", false},
		{"this hi", "hi", true},
		{"नमस्ते hi", "hi", true},
		{"अhi", "hi", false},
		{"hié", "hi", false},
		{"", "hi", false},
	}
	for _, tc := range cases {
		if got := containsWord(tc.m, tc.w); got != tc.want {
			t.Fatalf("containsWord(%q, %q) = %v, want %v", tc.m, tc.w, got, tc.want)
		}
	}
}

func TestClassify_FarmingTermNeverRejected(t *testing.T) {
	v := DefaultVocabulary()
	c := NewClassifier(v)
	for _, term := range v.Farming {
		msg := "tell me about cricket and movies and " + term
		if got := c.Classify(msg); got == NonFarming {
			t.Fatalf("message with farming term %q was rejected", term)
		}
	}
}

func TestClassify_GreetingWinsOverRejection(t *testing.T) {
	c := newTestClassifier(t)
	if got := c.Classify("hello, what is the latest movie"); got != Greeting {
		t.Fatalf("expected greeting, got %s", got)
	}
}

func TestClassify_AmbiguousIsAccepted(t *testing.T) {
	c := newTestClassifier(t)
	got := c.Classify("what should I do next")
	if !got.Accepted() {
		t.Fatalf("ambiguous message should be accepted, got %s", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := newTestClassifier(t)
	msg := "what crop should I grow in this soil"
	first := c.Classify(msg)
	for i := 0; i < 50; i++ {
		if got := c.Classify(msg); got != first {
			t.Fatalf("classification changed between calls: %s vs %s", first, got)
		}
	}
}

func TestParseVocabulary_LowercasesAndValidates(t *testing.T) {
	v, err := ParseVocabulary([]byte("greetings: [Hello]\nfarming: [Wheat]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v.Greetings[0] != "hello" || v.Farming[0] != "wheat" {
		t.Fatalf("expected lower-cased terms, got %v %v", v.Greetings, v.Farming)
	}
	if _, err := ParseVocabulary([]byte("non_farming: [movie]\n")); err == nil {
		t.Fatalf("expected error for vocabulary without farming terms")
	}
}
