// Package weather fetches OpenWeather conditions for farming advice.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/suPer8Hu/krishi-mitra/internal/cache"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/metrics"
)

const cacheTTL = 5 * time.Minute

var ErrNotConfigured = errors.New("weather: api key not configured")

type Current struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temp        float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Main        string  `json:"main"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Slot is one three-hour forecast entry.
type Slot struct {
	Time        string  `json:"time"`
	Main        string  `json:"main"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Temp        float64 `json:"temp"`
}

func (s Slot) Rain() bool { return strings.Contains(strings.ToLower(s.Main), "rain") }
func (s Slot) Snow() bool { return strings.Contains(strings.ToLower(s.Main), "snow") }

type Report struct {
	Location string  `json:"location"`
	Current  Current `json:"current"`
	Forecast []Slot  `json:"forecast"`
	// Partial is set when the forecast call failed and only current
	// conditions are known.
	Partial   bool      `json:"partial"`
	FetchedAt time.Time `json:"fetched_at"`
}

// RainWithin returns the slots with rain among the first n.
func (r Report) RainWithin(n int) []Slot {
	var out []Slot
	for i, s := range r.Forecast {
		if i == n {
			break
		}
		if s.Rain() {
			out = append(out, s)
		}
	}
	return out
}

// Brief renders current conditions and the 24 hour rain outlook.
func (r Report) Brief() string {
	var b strings.Builder
	city := r.Current.City
	if city == "" {
		city = r.Location
	}
	fmt.Fprintf(&b, "Location: %s\n", city)
	fmt.Fprintf(&b, "Conditions: %s\n", r.Current.Description)
	fmt.Fprintf(&b, "Temperature: %.1f°C (feels like %.1f°C)\n", r.Current.Temp, r.Current.FeelsLike)
	fmt.Fprintf(&b, "Humidity: %d%%\n", r.Current.Humidity)
	fmt.Fprintf(&b, "Wind: %.1f m/s\n", r.Current.WindSpeed)
	switch rain := r.RainWithin(8); {
	case r.Partial:
		b.WriteString("Rain expected: forecast unavailable")
	case len(rain) > 0:
		times := make([]string, 0, len(rain))
		for _, s := range rain {
			times = append(times, s.Time)
		}
		fmt.Fprintf(&b, "Rain expected: yes, in the next 24 hours (%s)", strings.Join(times, ", "))
	default:
		b.WriteString("Rain expected: no rain in the next 24 hours")
	}
	return b.String()
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   cache.Cache[Report]
	log     *logger.Logger
	now     func() time.Time
}

func NewClient(baseURL, apiKey string, c cache.Cache[Report], log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   c,
		log:     log.With("component", "weather"),
		now:     time.Now,
	}
}

type owWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type owCurrent struct {
	Name    string      `json:"name"`
	Weather []owWeather `json:"weather"`
	Main    owMain      `json:"main"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type owForecast struct {
	List []struct {
		DtTxt   string      `json:"dt_txt"`
		Main    owMain      `json:"main"`
		Weather []owWeather `json:"weather"`
	} `json:"list"`
}

// Fetch returns current conditions and the 5 day forecast for location, a
// place name ("Pune,IN") or a "lat,lon" pair. The forecast is best-effort.
func (c *Client) Fetch(ctx context.Context, location string) (Report, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return Report{}, ErrNotConfigured
	}
	location = strings.TrimSpace(location)
	if r, ok := c.cache.Get(ctx, location); ok {
		return r, nil
	}

	var (
		cur         owCurrent
		fc          owForecast
		forecastErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.get(gctx, "weather", location, &cur)
	})
	g.Go(func() error {
		forecastErr = c.get(gctx, "forecast", location, &fc)
		return nil
	})
	err := g.Wait()
	metrics.KnowledgeFetchCounter.WithLabelValues("weather", metrics.Outcome(err)).Inc()
	if err != nil {
		return Report{}, fmt.Errorf("weather: current conditions for %q: %w", location, err)
	}

	report := Report{
		Location:  location,
		Current:   toCurrent(cur),
		FetchedAt: c.now(),
	}
	if forecastErr != nil {
		c.log.Warn("forecast unavailable, returning current conditions only", "location", location, "error", forecastErr)
		report.Partial = true
	} else {
		for _, it := range fc.List {
			s := Slot{Time: it.DtTxt, Temp: round1(it.Main.Temp)}
			if len(it.Weather) > 0 {
				s.Main = it.Weather[0].Main
				s.Description = it.Weather[0].Description
				s.Icon = it.Weather[0].Icon
			}
			report.Forecast = append(report.Forecast, s)
		}
	}

	c.cache.Put(ctx, location, report, cacheTTL)
	return report, nil
}

func (c *Client) get(ctx context.Context, endpoint, location string, out any) error {
	q := url.Values{}
	if lat, lon, ok := parseCoords(location); ok {
		q.Set("lat", lat)
		q.Set("lon", lon)
	} else {
		q.Set("q", location)
	}
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return fmt.Errorf("%s %s: %w", uerr.Op, endpoint, uerr.Err)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Message string `json:"message"`
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = json.Unmarshal(body, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return fmt.Errorf("%s: status %d: %s", endpoint, resp.StatusCode, apiErr.Message)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func toCurrent(c owCurrent) Current {
	out := Current{
		City:      c.Name,
		Country:   c.Sys.Country,
		Temp:      round1(c.Main.Temp),
		FeelsLike: round1(c.Main.FeelsLike),
		Humidity:  c.Main.Humidity,
		WindSpeed: round1(c.Wind.Speed),
	}
	if len(c.Weather) > 0 {
		out.Main = c.Weather[0].Main
		out.Description = c.Weather[0].Description
		out.Icon = c.Weather[0].Icon
	}
	return out
}

// parseCoords accepts "lat,lon" with both parts numeric.
func parseCoords(s string) (string, string, bool) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return "", "", false
	}
	lat, lon = strings.TrimSpace(lat), strings.TrimSpace(lon)
	if _, err := strconv.ParseFloat(lat, 64); err != nil {
		return "", "", false
	}
	if _, err := strconv.ParseFloat(lon, 64); err != nil {
		return "", "", false
	}
	return lat, lon, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
