// Package advisor answers a farmer message: it classifies the message,
// gathers supporting data, composes a prompt and calls the generator,
// falling back to local text whenever generation fails.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/suPer8Hu/krishi-mitra/internal/ai"
	"github.com/suPer8Hu/krishi-mitra/internal/intent"
	"github.com/suPer8Hu/krishi-mitra/internal/knowledge"
	"github.com/suPer8Hu/krishi-mitra/internal/language"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/metrics"
	"github.com/suPer8Hu/krishi-mitra/internal/prompt"
	"github.com/suPer8Hu/krishi-mitra/internal/weather"
)

type WeatherSource interface {
	Fetch(ctx context.Context, location string) (weather.Report, error)
}

type PriceSource interface {
	Prices(ctx context.Context, commodity, state, district string) (knowledge.PriceReport, error)
	MSPTable() knowledge.MSPInfo
}

type Deps struct {
	Classifier *intent.Classifier
	Composer   *prompt.Composer
	Generator  ai.Generator
	Weather    WeatherSource
	Mandi      PriceSource
	Schemes    *knowledge.SchemeDirectory
	Soil       *knowledge.SoilAdvisor
	Economics  *knowledge.EconomicsCalculator
	Calendar   *knowledge.CropCalendar
	Log        *logger.Logger
}

type Advisor struct {
	classifier *intent.Classifier
	composer   *prompt.Composer
	gen        ai.Generator
	weather    WeatherSource
	mandi      PriceSource
	schemes    *knowledge.SchemeDirectory
	soil       *knowledge.SoilAdvisor
	economics  *knowledge.EconomicsCalculator
	calendar   *knowledge.CropCalendar
	log        *logger.Logger
}

func New(d Deps) *Advisor {
	a := &Advisor{
		classifier: d.Classifier,
		composer:   d.Composer,
		gen:        d.Generator,
		weather:    d.Weather,
		mandi:      d.Mandi,
		schemes:    d.Schemes,
		soil:       d.Soil,
		economics:  d.Economics,
		calendar:   d.Calendar,
		log:        d.Log,
	}
	if a.classifier == nil {
		a.classifier = intent.NewClassifier(intent.DefaultVocabulary())
	}
	if a.composer == nil {
		a.composer = prompt.NewComposer(nil)
	}
	if a.schemes == nil {
		a.schemes = knowledge.NewSchemeDirectory()
	}
	if a.soil == nil {
		a.soil = knowledge.NewSoilAdvisor()
	}
	if a.economics == nil {
		a.economics = knowledge.NewEconomicsCalculator()
	}
	if a.calendar == nil {
		a.calendar = knowledge.NewCropCalendar(nil)
	}
	if a.log == nil {
		a.log = logger.Nop()
	}
	a.log = a.log.With("component", "advisor")
	return a
}

func (a *Advisor) Classify(msg string) intent.Category {
	return a.classifier.Classify(msg)
}

// Respond always returns text the farmer can read: a generated answer, a
// local fallback built from fetched data, or an apology in lang.
func (a *Advisor) Respond(ctx context.Context, in prompt.Input, lang string) string {
	lang = language.Resolve(lang)

	switch v := in.(type) {
	case prompt.PreComposed:
		return a.generateOr(ctx, v.Text, lang, Apology(lang))
	case prompt.Message:
		return a.respondMessage(ctx, v.Text, lang)
	default:
		a.log.Error("unsupported advisor input", "type", fmt.Sprintf("%T", in))
		return Apology(lang)
	}
}

func (a *Advisor) respondMessage(ctx context.Context, msg, lang string) string {
	cat := a.classifier.Classify(msg)
	metrics.IntentCounter.WithLabelValues(cat.String()).Inc()
	a.log.Debug("classified message", "intent", cat.String(), "lang", lang)

	req := prompt.Request{Intent: cat, Message: msg, Language: lang}
	in := prompt.Message{Text: msg}

	switch cat {
	case intent.NonFarming:
		return OutOfDomain(lang)
	case intent.Greeting:
		return Greeting(lang)

	case intent.CropRecommendation, intent.Weather, intent.UpdateNews:
		a.withLiveContext(ctx, &req)
		text, err := a.generate(ctx, a.composer.Compose(in, req), lang)
		if err == nil {
			return text
		}
		a.log.Warn("generation failed, retrying with simple template", "intent", cat.String(), "error", err)
		simple := req
		simple.Simple = true
		simple.Context = ""
		simple.Degraded = false
		return a.generateOr(ctx, a.composer.Compose(in, simple), lang, Apology(lang))

	case intent.MandiPrice, intent.Scheme, intent.Soil, intent.Economics:
		req.Context = a.enrichment(ctx, cat, msg)
		return a.generateOr(ctx, a.composer.Compose(in, req), lang, req.Context)

	default:
		return a.generateOr(ctx, a.composer.Compose(in, req), lang, Apology(lang))
	}
}

// withLiveContext fills weather, and for update questions the month's
// calendar, into req. A failed weather fetch marks req degraded.
func (a *Advisor) withLiveContext(ctx context.Context, req *prompt.Request) {
	var parts []string
	if req.Intent == intent.UpdateNews {
		parts = append(parts, seasonContext(a.calendar.Month(0)))
	}

	req.Location = weather.ExtractLocation(req.Message)
	if a.weather == nil {
		req.Degraded = true
	} else {
		fetchCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		report, err := a.weather.Fetch(fetchCtx, req.Location)
		cancel()
		if err != nil {
			a.log.Warn("weather context unavailable", "location", req.Location, "error", err)
			req.Degraded = true
		} else {
			parts = append(parts, report.Brief())
		}
	}
	req.Context = strings.Join(parts, "\n\n")
}

func seasonContext(p knowledge.MonthPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Month: %s (%s)\n", p.Month, p.Season)
	if len(p.RecommendedCrops) > 0 {
		fmt.Fprintf(&b, "Recommended crops: %s\n", strings.Join(p.RecommendedCrops, ", "))
	}
	if len(p.Tasks) > 0 {
		b.WriteString("Tasks this month:\n")
		for _, t := range p.Tasks {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}
	for _, al := range p.Alerts {
		fmt.Fprintf(&b, "Alert: %s\n", al)
	}
	return strings.TrimSpace(b.String())
}

// enrichment renders the provider data for cat. Provider failures leave
// whatever partial text was produced.
func (a *Advisor) enrichment(ctx context.Context, cat intent.Category, msg string) string {
	switch cat {
	case intent.MandiPrice:
		if a.mandi == nil {
			return ""
		}
		commodity := knowledge.DetectCommodity(msg)
		if commodity == "" {
			return a.mandi.MSPTable().Brief()
		}
		report, err := a.mandi.Prices(ctx, commodity, "", "")
		if err != nil {
			a.log.Warn("mandi prices unavailable", "commodity", commodity, "error", err)
			return a.mandi.MSPTable().Brief()
		}
		return report.Brief()
	case intent.Scheme:
		return knowledge.BriefSchemes(a.schemes.All(), 5)
	case intent.Soil:
		return a.soil.AnalyzeSymptoms(msg).Brief()
	case intent.Economics:
		crop := a.economics.DetectCrop(msg)
		if crop == "" {
			return a.economics.Compare(knowledge.DefaultComparisonCrops, 1).Brief()
		}
		e, err := a.economics.Calculate(crop, 1, 0, 0)
		if err != nil {
			return a.economics.Compare(knowledge.DefaultComparisonCrops, 1).Brief()
		}
		return e.Brief()
	}
	return ""
}

func (a *Advisor) generate(ctx context.Context, p, lang string) (string, error) {
	if a.gen == nil {
		return "", ai.ErrNotConfigured
	}
	text, err := a.gen.Generate(ctx, p, lang)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty generation")
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// generateOr returns fallback when generation fails; an empty fallback
// becomes the apology.
func (a *Advisor) generateOr(ctx context.Context, p, lang, fallback string) string {
	text, err := a.generate(ctx, p, lang)
	if err == nil {
		return text
	}
	a.log.Warn("generation failed, using fallback", "lang", lang, "error", err)
	if strings.TrimSpace(fallback) == "" {
		return Apology(lang)
	}
	return fallback
}
