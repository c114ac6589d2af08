package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/suPer8Hu/krishi-mitra/internal/ai"
	"github.com/suPer8Hu/krishi-mitra/internal/knowledge"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/prompt"
	"github.com/suPer8Hu/krishi-mitra/internal/weather"
)

// recordingGenerator answers with replies in order; an error entry fails
// that call. Once replies run out every call fails.
type recordingGenerator struct {
	replies []any
	prompts []string
}

func (g *recordingGenerator) Generate(_ context.Context, p, _ string) (string, error) {
	g.prompts = append(g.prompts, p)
	if len(g.replies) == 0 {
		return "", &ai.GenerationError{Primary: errors.New("down"), Fallback: errors.New("down")}
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	if err, ok := r.(error); ok {
		return "", err
	}
	return r.(string), nil
}

type stubWeather struct {
	report weather.Report
	err    error
	asked  string
}

func (s *stubWeather) Fetch(_ context.Context, loc string) (weather.Report, error) {
	s.asked = loc
	return s.report, s.err
}

type stubMandi struct {
	report knowledge.PriceReport
	asked  string
}

func (s *stubMandi) Prices(_ context.Context, commodity, _, _ string) (knowledge.PriceReport, error) {
	s.asked = commodity
	return s.report, nil
}

func (s *stubMandi) MSPTable() knowledge.MSPInfo {
	return knowledge.MSPInfo{Season: "Rabi", Year: "2025-26", Prices: map[string]int{"wheat": 2275}, Note: "MSP table"}
}

func newTestAdvisor(gen ai.Generator, w WeatherSource, m PriceSource) *Advisor {
	now := func() time.Time { return time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC) }
	return New(Deps{
		Composer:  prompt.NewComposer(now),
		Generator: gen,
		Weather:   w,
		Mandi:     m,
		Calendar:  knowledge.NewCropCalendar(now),
		Log:       logger.Nop(),
	})
}

func TestGreetingDoesNotCallGenerator(t *testing.T) {
	gen := &recordingGenerator{}
	a := newTestAdvisor(gen, nil, nil)
	for _, lang := range []string{"en", "hi", "ta", "unknown"} {
		got := a.Respond(context.Background(), prompt.Message{Text: "namaste"}, lang)
		if got != Greeting(lang) {
			t.Fatalf("lang %s: got %q", lang, got)
		}
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("generator called %d times", len(gen.prompts))
	}
}

func TestNonFarmingIsLocal(t *testing.T) {
	gen := &recordingGenerator{}
	a := newTestAdvisor(gen, nil, nil)
	got := a.Respond(context.Background(), prompt.Message{Text: "tell me about cricket and movies"}, "hi")
	if got != OutOfDomain("hi") {
		t.Fatalf("got %q", got)
	}
	if OutOfDomain("kn") != OutOfDomain("en") {
		t.Fatalf("languages without a translation fall back to English")
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("generator called")
	}
}

func TestMandiPromptCarriesPriceData(t *testing.T) {
	gen := &recordingGenerator{replies: []any{"sell in Khanna"}}
	mandi := &stubMandi{report: knowledge.PriceReport{
		Source:         knowledge.SourceLive,
		Commodity:      "wheat",
		Stats:          knowledge.PriceStats{AvgPrice: 2400, MinPrice: 2300, MaxPrice: 2500, TotalMarkets: 2},
		MSP:            2275,
		MSPComparison:  "Above MSP by ₹125/quintal",
		Recommendation: "HOLD/SELL - Price is slightly above MSP.",
	}}
	a := newTestAdvisor(gen, nil, mandi)

	got := a.Respond(context.Background(), prompt.Message{Text: "what is the mandi price of wheat"}, "en")
	if got != "sell in Khanna" {
		t.Fatalf("got %q", got)
	}
	if mandi.asked != "wheat" {
		t.Fatalf("commodity=%q", mandi.asked)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("prompts=%d", len(gen.prompts))
	}
	p := gen.prompts[0]
	if !strings.Contains(p, "Above MSP by ₹125/quintal") || !strings.Contains(p, mandi.report.Recommendation) {
		t.Fatalf("prompt lacks MSP comparison:\n%s", p)
	}
}

func TestEnrichedIntentFallsBackToRawData(t *testing.T) {
	cases := []struct {
		msg  string
		want string
	}{
		{"how to apply for pm kisan", "Total schemes available: 10"},
		{"my wheat has yellow leaves", "Nitrogen deficiency"},
		{"cost of cultivation for cotton", "Cotton on 1.00 hectare"},
		{"what is the mandi price", "MSP table"},
	}
	for _, tc := range cases {
		a := newTestAdvisor(&recordingGenerator{}, nil, &stubMandi{})
		got := a.Respond(context.Background(), prompt.Message{Text: tc.msg}, "en")
		if !strings.Contains(got, tc.want) {
			t.Fatalf("%q: fallback %q lacks %q", tc.msg, got, tc.want)
		}
	}
}

func TestGeneralFarmingApologyOnFailure(t *testing.T) {
	for _, lang := range []string{"en", "hi", "mr", "pa", "ml", "ta", "te", "kn"} {
		a := newTestAdvisor(&recordingGenerator{}, nil, nil)
		got := a.Respond(context.Background(), prompt.Message{Text: "which fertilizer for this field"}, lang)
		if got != Apology(lang) {
			t.Fatalf("lang %s: got %q", lang, got)
		}
	}
}

func TestWeatherDegradedThenSimpleRetry(t *testing.T) {
	gen := &recordingGenerator{replies: []any{errors.New("first failed"), "simple answer"}}
	w := &stubWeather{err: errors.New("weather api down")}
	a := newTestAdvisor(gen, w, nil)

	got := a.Respond(context.Background(), prompt.Message{Text: "will it rain tomorrow in pune"}, "en")
	if got != "simple answer" {
		t.Fatalf("got %q", got)
	}
	if w.asked != "Pune,IN" {
		t.Fatalf("location=%q", w.asked)
	}
	if len(gen.prompts) != 2 {
		t.Fatalf("prompts=%d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "live weather data for Pune,IN is unavailable") {
		t.Fatalf("first prompt not degraded:\n%s", gen.prompts[0])
	}
	if len(gen.prompts[1]) >= len(gen.prompts[0]) {
		t.Fatalf("retry should use the shorter template")
	}
}

func TestWeatherBothAttemptsFail(t *testing.T) {
	gen := &recordingGenerator{}
	w := &stubWeather{report: weather.Report{Location: "Delhi,IN", Current: weather.Current{City: "Delhi", Temp: 21, Description: "haze"}}}
	a := newTestAdvisor(gen, w, nil)

	got := a.Respond(context.Background(), prompt.Message{Text: "what crop should I grow in this soil"}, "mr")
	if got != Apology("mr") {
		t.Fatalf("got %q", got)
	}
	if len(gen.prompts) != 2 {
		t.Fatalf("expected one retry, prompts=%d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "Conditions: haze") {
		t.Fatalf("weather context missing:\n%s", gen.prompts[0])
	}
}

func TestUpdateIncludesSeasonContext(t *testing.T) {
	gen := &recordingGenerator{replies: []any{"news"}}
	a := newTestAdvisor(gen, nil, nil)
	if got := a.Respond(context.Background(), prompt.Message{Text: "latest news for wheat farmers"}, "en"); got != "news" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(gen.prompts[0], "Month: February") || !strings.Contains(gen.prompts[0], "Recommended crops:") {
		t.Fatalf("season context missing:\n%s", gen.prompts[0])
	}
}

func TestPreComposedGoesStraightToGenerator(t *testing.T) {
	gen := &recordingGenerator{replies: []any{"treat with neem"}}
	a := newTestAdvisor(gen, nil, nil)
	pc := prompt.Disease(prompt.DiseaseRequest{Diseases: []string{"Leaf Rust"}, Language: "en"})

	if got := a.Respond(context.Background(), pc, "en"); got != "treat with neem" {
		t.Fatalf("got %q", got)
	}
	if gen.prompts[0] != pc.Text {
		t.Fatalf("pre-composed prompt was rewritten")
	}

	failing := newTestAdvisor(&recordingGenerator{}, nil, nil)
	if got := failing.Respond(context.Background(), pc, "hi"); got != Apology("hi") {
		t.Fatalf("got %q", got)
	}
}
