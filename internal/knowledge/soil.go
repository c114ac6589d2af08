package knowledge

import (
	"fmt"
	"math"
	"strings"
)

type nutrientPlan struct {
	N, P, K  float64
	schedule string
}

var cropFertilizer = map[string]nutrientPlan{
	"wheat":     {120, 60, 40, "½N+full P+full K at sowing, ¼N at CRI, ¼N at flowering"},
	"rice":      {120, 60, 60, "½N+full P+full K at transplanting, ¼N at tillering, ¼N at panicle initiation"},
	"maize":     {120, 60, 40, "⅓N+full P+full K at sowing, ⅓N at knee-high, ⅓N at tasseling"},
	"cotton":    {150, 60, 60, "⅓N+full P+full K at sowing, ⅓N at squaring, ⅓N at flowering"},
	"potato":    {150, 100, 120, "½N+full P+⅔K at planting, ½N+⅓K at earthing up"},
	"tomato":    {120, 80, 80, "½N+full P+full K at transplanting, ¼N at 30 days, ¼N at flowering"},
	"onion":     {100, 50, 60, "½N+full P+full K at transplanting, ½N at 30 days"},
	"mustard":   {80, 40, 20, "Full dose at sowing, top dressing at 30 days if needed"},
	"chana":     {20, 60, 20, "Full dose at sowing (being legume, needs less N)"},
	"soybean":   {25, 60, 40, "Full dose at sowing (legume crop)"},
	"sugarcane": {250, 85, 100, "⅓N+full P+⅓K at planting, ⅓N+⅓K at 60 days, ⅓N+⅓K at 90 days"},
}

type FertilizerPlan struct {
	Crop                string             `json:"crop"`
	NPKPerHectare       map[string]float64 `json:"npk_kg_per_hectare"`
	Quantities          map[string]float64 `json:"fertilizer_quantities"`
	ApplicationSchedule string             `json:"application_schedule"`
	OrganicAlternative  string             `json:"organic_alternative"`
}

type SoilAnalysis struct {
	DetectedIssues  []string `json:"detected_issues"`
	Recommendations []string `json:"recommendations"`
	GeneralAdvice   []string `json:"general_advice"`
}

type symptomRule struct {
	words           []string
	issue           string
	recommendations []string
}

var symptomRules = []symptomRule{
	{
		words:           []string{"yellow", "pale", "chlorosis", "पीला", "पिवळा"},
		issue:           "Nitrogen deficiency (yellowing of older leaves)",
		recommendations: []string{"Apply 25-30 kg urea/hectare as top dressing", "Spray 2% urea solution for quick correction"},
	},
	{
		words:           []string{"purple", "reddish", "stunted", "बैंगनी"},
		issue:           "Phosphorus deficiency (purplish coloration, stunted growth)",
		recommendations: []string{"Apply 50 kg DAP/hectare or 100 kg SSP/hectare"},
	},
	{
		words:           []string{"brown edge", "scorched", "tip burn", "marginal burn", "किनारा"},
		issue:           "Potassium deficiency (leaf margin scorching)",
		recommendations: []string{"Apply 40-50 kg MOP/hectare"},
	},
	{
		words:           []string{"acidic", "acid", "low ph", "अम्लीय"},
		issue:           "Acidic soil (low pH)",
		recommendations: []string{"Apply 2-4 quintals lime/hectare before sowing", "Use dolomite for calcium + magnesium correction"},
	},
	{
		words:           []string{"alkaline", "saline", "salt", "white crust", "क्षारीय", "नमकीन"},
		issue:           "Saline/Alkaline soil",
		recommendations: []string{"Apply 5-10 quintals gypsum/hectare", "Grow salt-tolerant crops: barley, beet, cotton"},
	},
	{
		words:           []string{"waterlog", "drainage", "standing water", "जलभराव"},
		issue:           "Waterlogging / poor drainage",
		recommendations: []string{"Improve drainage with channels and raised beds", "Apply organic matter to improve soil structure"},
	},
	{
		words:           []string{"hard", "compacted", "crack", "कठोर", "सख्त"},
		issue:           "Soil compaction",
		recommendations: []string{"Deep ploughing with chisel plough", "Add organic matter: FYM, compost, green manure"},
	},
}

var soilGeneralAdvice = []string{
	"Get Soil Health Card: soilhealth.dac.gov.in (FREE)",
	"Practice crop rotation to maintain soil fertility",
	"Use vermicompost for organic nutrient supply",
	"Avoid burning crop residue - incorporate into soil",
}

type SoilAdvisor struct{}

func NewSoilAdvisor() *SoilAdvisor { return &SoilAdvisor{} }

// Fertilizer converts a crop's NPK need into urea (46% N), DAP (46% P2O5)
// and MOP (60% K2O) per hectare.
func (a *SoilAdvisor) Fertilizer(crop string) (FertilizerPlan, error) {
	crop = strings.ToLower(strings.TrimSpace(crop))
	rec, ok := cropFertilizer[crop]
	if !ok {
		return FertilizerPlan{}, fmt.Errorf("%w: %s", ErrUnknownCrop, crop)
	}
	urea := round1(rec.N / 0.46)
	return FertilizerPlan{
		Crop:          crop,
		NPKPerHectare: map[string]float64{"N": rec.N, "P": rec.P, "K": rec.K},
		Quantities: map[string]float64{
			"urea_kg": urea,
			"dap_kg":  round1(rec.P / 0.46),
			"mop_kg":  round1(rec.K / 0.60),
		},
		ApplicationSchedule: rec.schedule,
		OrganicAlternative:  fmt.Sprintf("Apply 10-15 tonnes FYM/compost + %.0fkg urea for integrated nutrient management", math.Round(urea*0.5)),
	}, nil
}

func (a *SoilAdvisor) FertilizerCrops() []string {
	return []string{"wheat", "rice", "maize", "cotton", "potato", "tomato", "onion", "mustard", "chana", "soybean", "sugarcane"}
}

func (a *SoilAdvisor) AnalyzeSymptoms(text string) SoilAnalysis {
	t := strings.ToLower(text)
	var out SoilAnalysis
	for _, r := range symptomRules {
		for _, w := range r.words {
			if strings.Contains(t, w) {
				out.DetectedIssues = append(out.DetectedIssues, r.issue)
				out.Recommendations = append(out.Recommendations, r.recommendations...)
				break
			}
		}
	}
	if len(out.DetectedIssues) == 0 {
		out.DetectedIssues = []string{"General soil health improvement needed"}
		out.Recommendations = []string{
			"Get soil tested at nearest Krishi Vigyan Kendra (free under Soil Health Card scheme)",
			"Apply 10 tonnes FYM + green manure crop before next season",
		}
	}
	out.GeneralAdvice = soilGeneralAdvice
	return out
}

func (s SoilAnalysis) Brief() string {
	var b strings.Builder
	b.WriteString("Detected issues:\n")
	for _, i := range s.DetectedIssues {
		fmt.Fprintf(&b, "- %s\n", i)
	}
	b.WriteString("Recommendations:\n")
	for _, r := range s.Recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	b.WriteString("General advice:\n")
	for _, g := range s.GeneralAdvice {
		fmt.Fprintf(&b, "- %s\n", g)
	}
	return strings.TrimSpace(b.String())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
