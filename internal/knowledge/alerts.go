package knowledge

import (
	"sort"
	"strings"
	"time"
)

const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

type Alert struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Severity      string    `json:"severity"`
	Title         string    `json:"title"`
	TitleHi       string    `json:"title_hi"`
	Message       string    `json:"message"`
	MessageHi     string    `json:"message_hi"`
	CropsAffected []string  `json:"crops_affected,omitempty"`
	Regions       []string  `json:"regions,omitempty"`
	ValidUntil    time.Time `json:"valid_until"`
}

// Localized returns title and message in lang; only English and Hindi exist.
func (a Alert) Localized(lang string) (string, string) {
	if lang == "hi" {
		return a.TitleHi, a.MessageHi
	}
	return a.Title, a.Message
}

var severityRank = map[string]int{SeverityCritical: 0, SeverityWarning: 1, SeverityInfo: 2}

type AlertBoard struct {
	now func() time.Time
}

func NewAlertBoard(now func() time.Time) *AlertBoard {
	if now == nil {
		now = time.Now
	}
	return &AlertBoard{now: now}
}

// Active returns the alerts for the current month, critical first. A crop
// filter drops crop-specific alerts for other crops.
func (b *AlertBoard) Active(crop string) []Alert {
	now := b.now()
	month := now.Month()
	year := now.Year()
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	var alerts []Alert

	if month == time.February {
		alerts = append(alerts,
			Alert{
				ID:            "wheat_rust_feb",
				Type:          "pest",
				Severity:      SeverityWarning,
				Title:         "🦠 Yellow Rust Alert - Wheat",
				TitleHi:       "🦠 पीला रतुआ चेतावनी - गेहूं",
				Message:       "Yellow rust (Puccinia striiformis) risk is HIGH in north India. Scout wheat fields for yellow-orange pustules on leaves. Spray Propiconazole 25EC (1ml/liter) immediately if spotted.",
				MessageHi:     "उत्तर भारत में पीला रतुआ (Puccinia striiformis) का खतरा अधिक है। गेहूं के खेतों में पत्तियों पर पीले-नारंगी दानों की जांच करें। दिखने पर तुरंत Propiconazole 25EC (1ml/लीटर) का छिड़काव करें।",
				CropsAffected: []string{"wheat"},
				Regions:       []string{"Punjab", "Haryana", "UP", "Rajasthan"},
				ValidUntil:    date(year, time.March, 15),
			},
			Alert{
				ID:            "mustard_aphid_feb",
				Type:          "pest",
				Severity:      SeverityWarning,
				Title:         "🐛 Aphid Attack Alert - Mustard",
				TitleHi:       "🐛 माहू कीट चेतावनी - सरसों",
				Message:       "Mustard aphid (Lipaphis erysimi) infestation peaking. Apply Imidacloprid 17.8SL (0.3ml/liter) or neem oil spray (5ml/liter) as organic alternative.",
				MessageHi:     "सरसों में माहू कीट का प्रकोप चरम पर है। Imidacloprid 17.8SL (0.3ml/लीटर) या नीम तेल (5ml/लीटर) का छिड़काव करें।",
				CropsAffected: []string{"mustard"},
				Regions:       []string{"Rajasthan", "UP", "MP", "Haryana"},
				ValidUntil:    date(year, time.March, 10),
			},
		)
	}

	alerts = append(alerts, Alert{
		ID:            "fall_armyworm",
		Type:          "pest",
		Severity:      SeverityInfo,
		Title:         "🐛 Fall Armyworm - Maize (Year-round Vigilance)",
		TitleHi:       "🐛 फॉल आर्मीवर्म - मक्का (साल भर सतर्कता)",
		Message:       "Fall Armyworm (Spodoptera frugiperda) is a continuous threat to maize. Use pheromone traps for early detection. Apply Emamectin Benzoate 5SG if ETL exceeded.",
		MessageHi:     "फॉल आर्मीवर्म मक्का के लिए निरंतर खतरा है। शीघ्र पहचान के लिए फेरोमोन ट्रैप लगाएं। ETL पार होने पर Emamectin Benzoate 5SG का उपयोग करें।",
		CropsAffected: []string{"maize", "bajra", "jowar"},
		Regions:       []string{"All India"},
		ValidUntil:    date(year, time.December, 31),
	})

	switch month {
	case time.December, time.January, time.February:
		until := year
		if month == time.December {
			until++
		}
		alerts = append(alerts, Alert{
			ID:         "cold_wave",
			Type:       "weather",
			Severity:   SeverityWarning,
			Title:      "🥶 Cold Wave / Frost Risk",
			TitleHi:    "🥶 शीत लहर / पाला जोखिम",
			Message:    "Cold wave conditions likely in north India. Protect crops with light irrigation in evening. Use smoke barriers around orchards. Keep livestock warm.",
			MessageHi:  "उत्तर भारत में शीत लहर की संभावना। शाम को हल्की सिंचाई से फसलों की सुरक्षा करें। बागों के चारों ओर धुएं का प्रयोग करें।",
			Regions:    []string{"Punjab", "Haryana", "UP", "Rajasthan", "MP", "Bihar"},
			ValidUntil: date(until, time.February, 28),
		})
	case time.April, time.May, time.June:
		alerts = append(alerts, Alert{
			ID:         "heatwave",
			Type:       "weather",
			Severity:   SeverityCritical,
			Title:      "🔥 Heatwave Warning",
			TitleHi:    "🔥 लू चेतावनी",
			Message:    "Extreme heat expected. Irrigate early morning/late evening only. Provide shade to nurseries and livestock. Ensure water availability for animals.",
			MessageHi:  "अत्यधिक गर्मी की संभावना। सिंचाई केवल सुबह/शाम करें। नर्सरी और पशुओं को छाया प्रदान करें।",
			Regions:    []string{"Rajasthan", "Gujarat", "MP", "Maharashtra", "AP", "Telangana"},
			ValidUntil: date(year, time.June, 30),
		})
	}

	alerts = append(alerts, Alert{
		ID:         "msp_procurement",
		Type:       "market",
		Severity:   SeverityInfo,
		Title:      "💰 MSP Procurement Season Active",
		TitleHi:    "💰 MSP खरीद सीजन चालू",
		Message:    "Government MSP procurement is active for rabi crops. Register at nearest APMC mandi or e-NAM portal. Wheat MSP: ₹2,275/qtl, Mustard: ₹5,650/qtl, Chana: ₹5,440/qtl.",
		MessageHi:  "रबी फसलों के लिए सरकारी MSP खरीद चालू है। निकटतम APMC मंडी या e-NAM पोर्टल पर पंजीकरण करें। गेहूं MSP: ₹2,275/क्विंटल, सरसों: ₹5,650/क्विंटल।",
		ValidUntil: date(year, time.April, 30),
	})

	if month >= time.January && month <= time.March {
		alerts = append(alerts, Alert{
			ID:         "pmfby_rabi_deadline",
			Type:       "deadline",
			Severity:   SeverityCritical,
			Title:      "📋 PMFBY Rabi Insurance - Apply Now!",
			TitleHi:    "📋 PMFBY रबी बीमा - अभी आवेदन करें!",
			Message:    "Last date to apply for PMFBY Rabi crop insurance is approaching. Apply through your bank or CSC center. Premium: 1.5% for wheat, 2% for mustard.",
			MessageHi:  "PMFBY रबी फसल बीमा के लिए आवेदन की अंतिम तिथि निकट है। बैंक या CSC केंद्र के माध्यम से आवेदन करें।",
			ValidUntil: date(year, time.March, 31),
		})
	}

	alerts = append(alerts, Alert{
		ID:         "pm_kisan_check",
		Type:       "deadline",
		Severity:   SeverityInfo,
		Title:      "📋 PM-KISAN: Check Your Installment Status",
		TitleHi:    "📋 PM-KISAN: अपनी किस्त की स्थिति जांचें",
		Message:    "Check if you received your PM-KISAN installment of ₹2,000. Visit pmkisan.gov.in or call helpline 155261. If not received, contact your local agriculture office.",
		MessageHi:  "जांचें कि क्या आपको ₹2,000 की PM-KISAN किस्त मिली। pmkisan.gov.in पर जाएं या हेल्पलाइन 155261 पर कॉल करें।",
		ValidUntil: date(year, time.December, 31),
	})

	if crop = strings.ToLower(strings.TrimSpace(crop)); crop != "" {
		filtered := alerts[:0]
		for _, a := range alerts {
			if len(a.CropsAffected) == 0 || contains(a.CropsAffected, crop) {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})
	return alerts
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
