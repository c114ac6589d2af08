package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/suPer8Hu/krishi-mitra/internal/intent"
)

func testComposer() *Composer {
	return NewComposer(func() time.Time { return time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC) })
}

func TestComposeWrapsEveryIntentInLanguageDirectives(t *testing.T) {
	c := testComposer()
	cats := []intent.Category{
		intent.CropRecommendation, intent.Weather, intent.UpdateNews, intent.MandiPrice,
		intent.Scheme, intent.Soil, intent.Economics, intent.GeneralFarming,
	}
	for _, cat := range cats {
		got := c.Compose(Message{Text: "meri fasal"}, Request{Intent: cat, Language: "hi"})
		if !strings.HasPrefix(got, Directive("hi")) {
			t.Fatalf("%s: prompt does not open with the directive:\n%s", cat, got)
		}
		if !strings.HasSuffix(got, Reminder("hi")) {
			t.Fatalf("%s: prompt does not close with the reminder:\n%s", cat, got)
		}
		if !strings.Contains(got, "Hindi") {
			t.Fatalf("%s: language named by code only", cat)
		}
		if !strings.Contains(got, "meri fasal") {
			t.Fatalf("%s: message missing", cat)
		}
	}
}

func TestComposePassesPreComposedThrough(t *testing.T) {
	c := testComposer()
	pc := Disease(DiseaseRequest{Diseases: []string{"Leaf Blight"}, ImageCount: 2, Language: "en"})
	got := c.Compose(pc, Request{Intent: intent.GeneralFarming, Language: "en"})
	if got != pc.Text {
		t.Fatalf("pre-composed prompt was modified")
	}
	if strings.Count(got, "Respond ONLY in English") != 2 {
		t.Fatalf("disease prompt lacks both language lines:\n%s", got)
	}
}

func TestComposeInsertsContextVerbatim(t *testing.T) {
	c := testComposer()
	ctx := "Wheat prices (source: data.gov.in)\nMSP comparison: Above MSP by ₹125/quintal"
	got := c.Compose(Message{Text: "wheat price"}, Request{Intent: intent.MandiPrice, Language: "en", Context: ctx})
	if !strings.Contains(got, "Here is REAL market data:\n"+ctx) {
		t.Fatalf("context not inserted verbatim:\n%s", got)
	}
	if strings.Index(got, ctx) > strings.Index(got, "Using only this data") {
		t.Fatalf("context must precede the instructions")
	}
}

func TestComposeDegradedWeather(t *testing.T) {
	c := testComposer()
	got := c.Compose(Message{Text: "will it rain"}, Request{Intent: intent.Weather, Language: "en", Location: "Pune,IN", Degraded: true})
	if !strings.Contains(got, "live weather data for Pune,IN is unavailable") {
		t.Fatalf("degraded note missing:\n%s", got)
	}
	if !strings.Contains(got, "Season: Kharif") {
		t.Fatalf("season context missing")
	}

	simple := c.Compose(Message{Text: "will it rain"}, Request{Intent: intent.Weather, Language: "en", Simple: true})
	if len(simple) >= len(got) {
		t.Fatalf("simple template should be shorter")
	}
}

func TestComposePersona(t *testing.T) {
	c := testComposer()
	got := c.Compose(Message{Text: "how to keep cows healthy"}, Request{Intent: intent.GeneralFarming, Language: "xx"})
	if !strings.Contains(got, "Krishi Mitra") || !strings.HasPrefix(got, Directive("en")) {
		t.Fatalf("unexpected persona prompt:\n%s", got)
	}
}

func TestDiseasePromptWithQuestion(t *testing.T) {
	pc := Disease(DiseaseRequest{Diseases: []string{"Rust", "Blight"}, Question: "can I still sell the crop?", Language: "mr"})
	if !strings.Contains(pc.Text, "Detected: Rust, Blight") || !strings.Contains(pc.Text, "can I still sell the crop?") {
		t.Fatalf("unexpected disease prompt:\n%s", pc.Text)
	}
	if !strings.Contains(pc.Text, "1 crop image(s)") {
		t.Fatalf("image count should default to one")
	}
}
