// Package prompt builds the text sent to the generation gateway.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/suPer8Hu/krishi-mitra/internal/intent"
	"github.com/suPer8Hu/krishi-mitra/internal/knowledge"
	"github.com/suPer8Hu/krishi-mitra/internal/language"
)

type Request struct {
	Intent   intent.Category
	Message  string
	Language string
	// Location is the place the weather context refers to.
	Location string
	// Context is enrichment already rendered as text; it is inserted verbatim.
	Context string
	// Degraded is set when live context was wanted but could not be fetched.
	Degraded bool
	// Simple selects the shorter retry template.
	Simple bool
}

type Composer struct {
	now func() time.Time
}

func NewComposer(now func() time.Time) *Composer {
	if now == nil {
		now = time.Now
	}
	return &Composer{now: now}
}

// Directive is the opening language instruction of every composed prompt.
func Directive(lang string) string {
	name := language.Name(lang)
	return fmt.Sprintf("CRITICAL: You MUST write your ENTIRE response in %s language ONLY. Do not mix languages.", name)
}

// Reminder closes every composed prompt.
func Reminder(lang string) string {
	return fmt.Sprintf("REMEMBER: Respond ONLY in %s.", language.Name(lang))
}

// Compose returns the prompt for in. PreComposed input is returned unchanged.
func (c *Composer) Compose(in Input, req Request) string {
	if pc, ok := in.(PreComposed); ok {
		return pc.Text
	}
	if m, ok := in.(Message); ok && req.Message == "" {
		req.Message = m.Text
	}
	req.Language = language.Resolve(req.Language)

	var body string
	switch req.Intent {
	case intent.CropRecommendation:
		body = c.crop(req)
	case intent.Weather:
		body = c.weather(req)
	case intent.UpdateNews:
		body = c.update(req)
	case intent.MandiPrice:
		body = mandi(req)
	case intent.Scheme:
		body = scheme(req)
	case intent.Soil:
		body = soil(req)
	case intent.Economics:
		body = economics(req)
	default:
		body = c.persona(req)
	}

	var b strings.Builder
	b.WriteString(Directive(req.Language))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n\n")
	b.WriteString(Reminder(req.Language))
	return b.String()
}

func (c *Composer) season() (string, string) {
	now := c.now()
	return now.Month().String(), knowledge.SeasonFor(now.Month()).Name
}

func liveContext(b *strings.Builder, req Request, what string) {
	where := orDefault(req.Location, "the farmer's area")
	if req.Context != "" {
		fmt.Fprintf(b, "Current data for %s:\n%s\n\n", where, req.Context)
	}
	if req.Degraded {
		fmt.Fprintf(b, "Note: live %s data for %s is unavailable right now. Base the answer on typical conditions for the month and season and say that live data could not be fetched.\n\n", what, where)
	}
}

func (c *Composer) crop(req Request) string {
	month, season := c.season()
	var b strings.Builder
	if req.Simple {
		fmt.Fprintf(&b, "You are an expert Indian agricultural advisor. It is %s, %s season.\n", month, season)
		fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
		b.WriteString("Recommend 3-5 crops suitable to sow now, with one line on why each fits the season. Keep it short and practical.")
		return b.String()
	}

	b.WriteString("You are an expert agricultural advisor helping an Indian farmer choose crops.\n\n")
	fmt.Fprintf(&b, "Current month: %s\nSeason: %s\n\n", month, season)
	liveContext(&b, req, "weather")
	fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
	b.WriteString(`Structure the answer in these sections:
1. Current conditions: what the weather and season mean for sowing now.
2. Top 3-5 recommended crops with reasons.
3. Sowing tips: timing, seed rate and spacing.
4. Care: irrigation and fertilizer basics for the recommended crops.
5. Cautions: weather risks to watch this month.
Use simple language a farmer can follow. Give costs in ₹ where useful.`)
	return b.String()
}

func (c *Composer) weather(req Request) string {
	month, season := c.season()
	var b strings.Builder
	if req.Simple {
		fmt.Fprintf(&b, "You are an agricultural weather advisor. It is %s, %s season.\n", month, season)
		fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
		b.WriteString("Describe the usual weather for this time of year in India and what farmers should do about it. Keep it brief.")
		return b.String()
	}

	b.WriteString("You are an agricultural weather advisor for Indian farmers.\n\n")
	fmt.Fprintf(&b, "Current month: %s\nSeason: %s\n\n", month, season)
	liveContext(&b, req, "weather")
	fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
	b.WriteString(`Answer with:
1. Current weather in plain words.
2. Rain outlook for the next 24 hours.
3. Farming advice for these conditions: irrigation, spraying, harvesting.`)
	return b.String()
}

func (c *Composer) update(req Request) string {
	month, season := c.season()
	var b strings.Builder
	if req.Simple {
		fmt.Fprintf(&b, "You are an agricultural news assistant. It is %s, %s season.\n", month, season)
		fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
		b.WriteString("List the most important farming activities and precautions for this month in 4-6 short points.")
		return b.String()
	}

	b.WriteString("You are an agricultural news and updates assistant for Indian farmers.\n\n")
	fmt.Fprintf(&b, "Current month: %s\nSeason: %s\n\n", month, season)
	liveContext(&b, req, "weather")
	fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
	b.WriteString(`Cover these four sections:
1. Current farming situation for this month and season.
2. Key activities farmers should do now.
3. Weather-related precautions.
4. Market and government updates worth checking (MSP, schemes, insurance deadlines).
Do not invent specific news events or dates.`)
	return b.String()
}

func mandi(req Request) string {
	var b strings.Builder
	b.WriteString("You are an expert agricultural market advisor for Indian farmers.\n\n")
	fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
	if req.Context != "" {
		fmt.Fprintf(&b, "Here is REAL market data:\n%s\n\n", req.Context)
	}
	b.WriteString(`Using only this data, explain:
1. Current prices and how they compare with the MSP.
2. Whether to sell now or wait, and why.
3. Which mandi looks best to sell in.
Quote prices in ₹ per quintal.`)
	return b.String()
}

func scheme(req Request) string {
	var b strings.Builder
	b.WriteString("You are an expert on Indian government schemes for farmers.\n\n")
	fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
	if req.Context != "" {
		fmt.Fprintf(&b, "Available schemes:\n%s\n\n", req.Context)
	}
	b.WriteString("Explain the schemes most relevant to the question: the benefit, who is eligible, and how to apply. Mention the documents to keep ready.")
	return b.String()
}

func soil(req Request) string {
	var b strings.Builder
	b.WriteString("You are a soil health expert advising an Indian farmer.\n\n")
	fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
	if req.Context != "" {
		fmt.Fprintf(&b, "Soil analysis:\n%s\n\n", req.Context)
	}
	b.WriteString("Explain the likely problems, the corrective fertilizer or amendment with doses per acre, and general soil care advice. Include an organic option.")
	return b.String()
}

func economics(req Request) string {
	var b strings.Builder
	b.WriteString("You are a farm economics advisor for Indian farmers.\n\n")
	fmt.Fprintf(&b, "Farmer's question: %s\n\n", req.Message)
	if req.Context != "" {
		fmt.Fprintf(&b, "Crop economics data:\n%s\n\n", req.Context)
	}
	b.WriteString("Explain the cost breakdown, expected yield and income, profit and ROI, and practical ways to improve margins. Use ₹.")
	return b.String()
}

func (c *Composer) persona(req Request) string {
	month, season := c.season()
	var b strings.Builder
	b.WriteString(`You are "Krishi Mitra (कृषि मित्र)", a wise and friendly farming advisor who talks like a respected village elder with more than 30 years of hands-on farming experience.

Response style:
- 2 to 4 short paragraphs, warm and encouraging.
- Use a few relevant emojis (🌾 🌱 💧 🐛).
- When there is a problem to solve, give a step-by-step plan.
- Give costs in ₹ and quantities per acre.
- Offer both an organic and a chemical option where it applies.
- Relate advice to the Indian seasons (Kharif, Rabi, Zaid).
`)
	fmt.Fprintf(&b, "\nIt is %s, %s season.\n", month, season)
	if req.Context != "" {
		fmt.Fprintf(&b, "\nUseful context:\n%s\n", req.Context)
	}
	fmt.Fprintf(&b, "\nFarmer's question: %s", req.Message)
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
