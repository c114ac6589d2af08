package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

type Scheme struct {
	ID          string            `json:"id"`
	Name        map[string]string `json:"name"`
	FullName    string            `json:"full_name"`
	Benefit     string            `json:"benefit"`
	Eligibility string            `json:"eligibility"`
	HowToApply  string            `json:"how_to_apply"`
	Documents   []string          `json:"documents"`
	Category    string            `json:"category"`
	URL         string            `json:"url"`
}

type ScoredScheme struct {
	Scheme
	RelevanceScore int `json:"relevance_score"`
}

// FarmerProfile narrows scheme recommendations. All fields are optional.
type FarmerProfile struct {
	Crop       string `json:"crop" form:"crop"`
	LandSize   string `json:"land_size" form:"land_size"`
	State      string `json:"state" form:"state"`
	FarmerType string `json:"farmer_type" form:"farmer_type"`
}

var schemes = []Scheme{
	{
		ID:          "pm_kisan",
		Name:        map[string]string{"en": "PM-KISAN", "hi": "पीएम-किसान"},
		FullName:    "Pradhan Mantri Kisan Samman Nidhi",
		Benefit:     "₹6,000/year in 3 installments of ₹2,000",
		Eligibility: "All landholding farmer families",
		HowToApply:  "Apply at pmkisan.gov.in or through CSC centers",
		Documents:   []string{"Aadhaar Card", "Land Records", "Bank Account"},
		Category:    "income_support",
		URL:         "https://pmkisan.gov.in/",
	},
	{
		ID:          "pmfby",
		Name:        map[string]string{"en": "PMFBY", "hi": "पीएमएफबीवाई"},
		FullName:    "Pradhan Mantri Fasal Bima Yojana",
		Benefit:     "Crop insurance at 1.5% (Rabi), 2% (Kharif), 5% (Horticulture) premium",
		Eligibility: "All farmers growing notified crops in notified areas",
		HowToApply:  "Apply through banks, CSC, or pmfby.gov.in",
		Documents:   []string{"Aadhaar Card", "Land Records", "Bank Account", "Sowing Certificate"},
		Category:    "insurance",
		URL:         "https://pmfby.gov.in/",
	},
	{
		ID:          "kcc",
		Name:        map[string]string{"en": "KCC", "hi": "किसान क्रेडिट कार्ड"},
		FullName:    "Kisan Credit Card",
		Benefit:     "Credit up to ₹3 lakh at 4% interest (with subsidy). Crop loan, working capital, and post-harvest expenses.",
		Eligibility: "All farmers, sharecroppers, tenant farmers, SHGs",
		HowToApply:  "Apply at any commercial/cooperative bank with land documents",
		Documents:   []string{"Aadhaar Card", "Land Records", "Passport Photo", "Application Form"},
		Category:    "credit",
		URL:         "https://www.pmkisan.gov.in/KCC",
	},
	{
		ID:          "soil_health_card",
		Name:        map[string]string{"en": "Soil Health Card", "hi": "मृदा स्वास्थ्य कार्ड"},
		FullName:    "Soil Health Card Scheme",
		Benefit:     "Free soil testing and nutrient management recommendations every 2 years",
		Eligibility: "All farmers with agricultural land",
		HowToApply:  "Visit soilhealth.dac.gov.in or contact Krishi Vigyan Kendra",
		Documents:   []string{"Aadhaar Card", "Land Details"},
		Category:    "soil_health",
		URL:         "https://soilhealth.dac.gov.in/",
	},
	{
		ID:          "pm_kisan_mandhan",
		Name:        map[string]string{"en": "PM-Kisan Mandhan", "hi": "पीएम किसान मानधन"},
		FullName:    "PM Kisan Maan-Dhan Yojana",
		Benefit:     "₹3,000/month pension after age 60. Government matches farmer contribution.",
		Eligibility: "Small and marginal farmers (18-40 years) with land up to 2 hectares",
		HowToApply:  "Apply at CSC centers or maandhan.in",
		Documents:   []string{"Aadhaar Card", "Bank Account", "Land Records"},
		Category:    "pension",
		URL:         "https://maandhan.in/",
	},
	{
		ID:          "pkvy",
		Name:        map[string]string{"en": "PKVY", "hi": "परम्परागत कृषि विकास योजना"},
		FullName:    "Paramparagat Krishi Vikas Yojana",
		Benefit:     "₹50,000/hectare over 3 years for organic farming. Certification and marketing support.",
		Eligibility: "Farmers willing to adopt organic farming (cluster of 50+ farmers, 50 acres)",
		HowToApply:  "Apply through State Agriculture Department or pgsindia-ncof.gov.in",
		Documents:   []string{"Aadhaar Card", "Land Records", "Farmer Group Registration"},
		Category:    "organic_farming",
		URL:         "https://pgsindia-ncof.gov.in/",
	},
	{
		ID:          "pmksy",
		Name:        map[string]string{"en": "PMKSY", "hi": "प्रधानमंत्री कृषि सिंचाई योजना"},
		FullName:    "Pradhan Mantri Krishi Sinchayee Yojana",
		Benefit:     "55% subsidy (small farmers) / 45% (others) on micro-irrigation (drip/sprinkler)",
		Eligibility: "All farmers with agricultural land",
		HowToApply:  "Apply through State Agriculture/Horticulture Department",
		Documents:   []string{"Aadhaar Card", "Land Records", "7/12 Extract", "Bank Account"},
		Category:    "irrigation",
		URL:         "https://pmksy.gov.in/",
	},
	{
		ID:          "e_nam",
		Name:        map[string]string{"en": "e-NAM", "hi": "ई-नाम"},
		FullName:    "National Agriculture Market (e-NAM)",
		Benefit:     "Online trading platform. Sell produce in any mandi across India. Better price discovery.",
		Eligibility: "All farmers, traders, and commission agents",
		HowToApply:  "Register at enam.gov.in with mandi license",
		Documents:   []string{"Aadhaar Card", "Bank Account", "Mandi License (for traders)"},
		Category:    "market_access",
		URL:         "https://enam.gov.in/",
	},
	{
		ID:          "agri_infra_fund",
		Name:        map[string]string{"en": "AIF", "hi": "कृषि अवसंरचना कोष"},
		FullName:    "Agriculture Infrastructure Fund",
		Benefit:     "3% interest subvention on loans up to ₹2 crore for agri-infrastructure (cold storage, warehouses, processing units)",
		Eligibility: "Farmers, FPOs, PACS, Startups, Agri-entrepreneurs",
		HowToApply:  "Apply through agriinfra.dac.gov.in via any lending institution",
		Documents:   []string{"Aadhaar Card", "Business Plan", "Land Documents", "Bank Account"},
		Category:    "infrastructure",
		URL:         "https://agriinfra.dac.gov.in/",
	},
	{
		ID:          "nfsm",
		Name:        map[string]string{"en": "NFSM", "hi": "राष्ट्रीय खाद्य सुरक्षा मिशन"},
		FullName:    "National Food Security Mission",
		Benefit:     "Subsidized seeds, equipment, training. Up to 50% subsidy on farm implements.",
		Eligibility: "Farmers in identified districts growing rice, wheat, pulses, coarse cereals",
		HowToApply:  "Apply through District Agriculture Officer or State Agriculture Department",
		Documents:   []string{"Aadhaar Card", "Land Records", "Bank Account"},
		Category:    "food_security",
		URL:         "https://nfsm.gov.in/",
	},
}

type SchemeDirectory struct{}

func NewSchemeDirectory() *SchemeDirectory { return &SchemeDirectory{} }

func (d *SchemeDirectory) All() []Scheme {
	out := make([]Scheme, len(schemes))
	copy(out, schemes)
	return out
}

func (d *SchemeDirectory) Get(id string) (Scheme, error) {
	for _, s := range schemes {
		if s.ID == id {
			return s, nil
		}
	}
	return Scheme{}, fmt.Errorf("%w: %s", ErrUnknownScheme, id)
}

// Find scores every scheme against the profile and returns the relevant
// ones, most relevant first. Ties keep catalog order.
func (d *SchemeDirectory) Find(p FarmerProfile) []ScoredScheme {
	var out []ScoredScheme
	for _, s := range schemes {
		score := 0
		switch s.ID {
		case "pm_kisan", "kcc", "soil_health_card", "e_nam":
			score += 3
		case "pmfby":
			if p.Crop != "" {
				score += 3
			}
		case "pmksy":
			score += 2
		case "pm_kisan_mandhan":
			switch p.LandSize {
			case "small", "marginal", "<2":
				score += 3
			}
		case "pkvy":
			if strings.Contains(strings.ToLower(p.FarmerType), "organic") {
				score += 3
			}
		case "agri_infra_fund", "nfsm":
			score++
		}
		if score > 0 {
			out = append(out, ScoredScheme{Scheme: s, RelevanceScore: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RelevanceScore > out[j].RelevanceScore })
	return out
}

// Brief lists the first n schemes as "name: benefit" lines plus the total.
func BriefSchemes(all []Scheme, n int) string {
	var b strings.Builder
	for i, s := range all {
		if i == n {
			break
		}
		fmt.Fprintf(&b, "- %s (%s): %s\n", s.Name["en"], s.FullName, s.Benefit)
	}
	fmt.Fprintf(&b, "Total schemes available: %d", len(all))
	return b.String()
}
