package weather

import "time"

type Prediction struct {
	Expected bool   `json:"expected"`
	Count    int    `json:"count"`
	Times    []Slot `json:"times"`
}

type Summary struct {
	Current        Current               `json:"current"`
	Predictions    map[string]Prediction `json:"predictions"`
	HourlyForecast []Slot                `json:"hourly_forecast"`
	FarmingAdvice  []string              `json:"farming_advice"`
	Partial        bool                  `json:"partial,omitempty"`
	Timestamp      time.Time             `json:"timestamp"`
}

// Summarize looks 48 hours ahead for rain and snow and adds farming advice.
func Summarize(r Report, now time.Time) Summary {
	var rain, snow, hourly []Slot
	for i, s := range r.Forecast {
		if i == 16 {
			break
		}
		if s.Rain() {
			rain = append(rain, s)
		}
		if s.Snow() {
			snow = append(snow, s)
		}
		if len(hourly) < 8 {
			hourly = append(hourly, s)
		}
	}

	var advice []string
	if len(rain) > 0 {
		advice = append(advice, "🌧️ Rain expected - stop irrigation and ensure drainage")
	}
	if len(snow) > 0 {
		advice = append(advice, "❄️ Snow expected - protect sensitive crops")
	}
	if len(rain) == 0 && len(snow) == 0 {
		advice = append(advice, "☀️ No rain expected - plan irrigation schedule")
	}
	switch {
	case r.Current.Temp > 35:
		advice = append(advice, "🔥 High temperature - provide shade for crops and livestock")
	case r.Current.Temp < 10:
		advice = append(advice, "🥶 Cold weather - protect crops from frost")
	}

	return Summary{
		Current: r.Current,
		Predictions: map[string]Prediction{
			"rain": prediction(rain),
			"snow": prediction(snow),
		},
		HourlyForecast: hourly,
		FarmingAdvice:  advice,
		Partial:        r.Partial,
		Timestamp:      now,
	}
}

func prediction(slots []Slot) Prediction {
	p := Prediction{Expected: len(slots) > 0, Count: len(slots), Times: slots}
	if len(p.Times) > 3 {
		p.Times = p.Times[:3]
	}
	return p
}
