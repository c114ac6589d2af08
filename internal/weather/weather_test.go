package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/suPer8Hu/krishi-mitra/internal/cache"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
)

const currentJSON = `{"name":"Pune","sys":{"country":"IN"},"weather":[{"main":"Clouds","description":"broken clouds","icon":"04d"}],"main":{"temp":36.24,"feels_like":38.1,"humidity":40},"wind":{"speed":3.47}}`

const forecastJSON = `{"list":[
{"dt_txt":"2026-07-15 12:00:00","main":{"temp":35},"weather":[{"main":"Clouds","description":"overcast"}]},
{"dt_txt":"2026-07-15 15:00:00","main":{"temp":33},"weather":[{"main":"Rain","description":"light rain"}]},
{"dt_txt":"2026-07-15 18:00:00","main":{"temp":30},"weather":[{"main":"Rain","description":"moderate rain"}]}
]}`

func newTestServer(t *testing.T, forecastStatus int, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("units") != "metric" || r.URL.Query().Get("appid") != "k" {
			t.Errorf("missing query params: %s", r.URL.RawQuery)
		}
		switch r.URL.Path {
		case "/weather":
			_, _ = w.Write([]byte(currentJSON))
		case "/forecast":
			w.WriteHeader(forecastStatus)
			if forecastStatus == http.StatusOK {
				_, _ = w.Write([]byte(forecastJSON))
			} else {
				_, _ = w.Write([]byte(`{"message":"slow down"}`))
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFetchCombinesCurrentAndForecast(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, http.StatusOK, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, "k", cache.NewMemory[Report](), logger.Nop())
	r, err := c.Fetch(context.Background(), "Pune,IN")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if r.Current.City != "Pune" || r.Current.Temp != 36.2 || r.Current.WindSpeed != 3.5 {
		t.Fatalf("unexpected current %+v", r.Current)
	}
	if r.Partial || len(r.Forecast) != 3 {
		t.Fatalf("unexpected forecast %+v", r.Forecast)
	}
	if got := r.RainWithin(2); len(got) != 1 || got[0].Time != "2026-07-15 15:00:00" {
		t.Fatalf("RainWithin(2)=%+v", got)
	}
	if !strings.Contains(r.Brief(), "Rain expected: yes") {
		t.Fatalf("brief:\n%s", r.Brief())
	}

	if _, err := c.Fetch(context.Background(), "Pune,IN"); err != nil {
		t.Fatalf("cached Fetch: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("second fetch should be cached, hits=%d", hits.Load())
	}
}

func TestFetchForecastFailureIsPartial(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, http.StatusTooManyRequests, &hits)
	defer srv.Close()

	c := NewClient(srv.URL, "k", cache.NewMemory[Report](), logger.Nop())
	r, err := c.Fetch(context.Background(), "Pune,IN")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !r.Partial || len(r.Forecast) != 0 {
		t.Fatalf("expected partial report, got %+v", r)
	}
	if !strings.Contains(r.Brief(), "forecast unavailable") {
		t.Fatalf("brief:\n%s", r.Brief())
	}
}

func TestFetchCurrentFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", cache.NewMemory[Report](), logger.Nop())
	_, err := c.Fetch(context.Background(), "Delhi,IN")
	if err == nil || !strings.Contains(err.Error(), "Invalid API key") {
		t.Fatalf("err=%v", err)
	}
}

func TestFetchWithoutKey(t *testing.T) {
	c := NewClient("", "", cache.NewMemory[Report](), logger.Nop())
	if _, err := c.Fetch(context.Background(), "Delhi,IN"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err=%v", err)
	}
}

func TestFetchCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "18.52" || q.Get("lon") != "73.85" || q.Get("q") != "" {
			t.Errorf("coordinates not split: %s", r.URL.RawQuery)
		}
		if r.URL.Path == "/weather" {
			_, _ = w.Write([]byte(currentJSON))
			return
		}
		_, _ = w.Write([]byte(`{"list":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", cache.NewMemory[Report](), logger.Nop())
	if _, err := c.Fetch(context.Background(), "18.52, 73.85"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
}

func TestExtractLocation(t *testing.T) {
	cases := map[string]string{
		"will it rain in Pune tomorrow":        "Pune,IN",
		"weather in tamil nadu":                "Tamil Nadu,IN",
		"ludhiana, punjab forecast":            "Ludhiana,IN",
		"what is the temperature":              DefaultLocation,
		"Madhya Pradesh mein barish kab hogi?": "Madhya Pradesh,IN",
	}
	for msg, want := range cases {
		if got := ExtractLocation(msg); got != want {
			t.Fatalf("ExtractLocation(%q)=%q want %q", msg, got, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	r := Report{
		Current: Current{Temp: 36.2},
		Forecast: []Slot{
			{Time: "a", Main: "Rain"}, {Time: "b", Main: "Clear"}, {Time: "c", Main: "Rain"},
			{Time: "d", Main: "Rain"}, {Time: "e", Main: "Rain"},
		},
	}
	now := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	s := Summarize(r, now)
	rain := s.Predictions["rain"]
	if !rain.Expected || rain.Count != 4 || len(rain.Times) != 3 {
		t.Fatalf("rain prediction %+v", rain)
	}
	if s.Predictions["snow"].Expected {
		t.Fatalf("no snow expected")
	}
	if len(s.HourlyForecast) != 5 {
		t.Fatalf("hourly=%d", len(s.HourlyForecast))
	}
	if len(s.FarmingAdvice) != 2 || !strings.HasPrefix(s.FarmingAdvice[1], "🔥") {
		t.Fatalf("advice=%v", s.FarmingAdvice)
	}

	cold := Summarize(Report{Current: Current{Temp: 4}}, now)
	if len(cold.FarmingAdvice) != 2 || !strings.HasPrefix(cold.FarmingAdvice[0], "☀️") || !strings.HasPrefix(cold.FarmingAdvice[1], "🥶") {
		t.Fatalf("cold advice=%v", cold.FarmingAdvice)
	}
}
