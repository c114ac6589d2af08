package knowledge

import "time"

type Season struct {
	Name    string       `json:"season"`
	Months  []time.Month `json:"-"`
	Sowing  string       `json:"sowing_period"`
	Harvest string       `json:"harvest_period"`
	Crops   []string     `json:"recommended_crops"`
}

// Seasons in lookup order; boundary months belong to the first match.
var Seasons = []Season{
	{
		Name:    "Kharif",
		Months:  []time.Month{time.June, time.July, time.August, time.September, time.October},
		Sowing:  "June-July",
		Harvest: "October-November",
		Crops:   []string{"rice", "maize", "cotton", "soybean", "groundnut", "bajra", "jowar", "tur", "moong", "urad", "sugarcane"},
	},
	{
		Name:    "Rabi",
		Months:  []time.Month{time.October, time.November, time.December, time.January, time.February, time.March},
		Sowing:  "October-November",
		Harvest: "March-April",
		Crops:   []string{"wheat", "mustard", "chana", "barley", "peas", "linseed", "potato", "onion"},
	},
	{
		Name:    "Zaid",
		Months:  []time.Month{time.March, time.April, time.May, time.June},
		Sowing:  "March-April",
		Harvest: "June-July",
		Crops:   []string{"watermelon", "muskmelon", "cucumber", "moong", "fodder"},
	},
}

func SeasonFor(m time.Month) Season {
	for _, s := range Seasons {
		for _, sm := range s.Months {
			if sm == m {
				return s
			}
		}
	}
	return Season{Name: "Transition"}
}

type MonthPlan struct {
	Month            string   `json:"month"`
	MonthNumber      int      `json:"month_number"`
	Season           string   `json:"season"`
	Tasks            []string `json:"tasks"`
	Alerts           []string `json:"alerts"`
	RecommendedCrops []string `json:"recommended_crops"`
}

type monthEntry struct {
	season string
	tasks  []string
	alerts []string
}

var monthlyCalendar = map[time.Month]monthEntry{
	time.January: {
		season: "Rabi (Peak)",
		tasks: []string{
			"🌾 Apply 2nd dose of urea to wheat (CRI stage)",
			"💧 Give irrigation to wheat, mustard, chickpea",
			"🧪 Spray fungicide for rust prevention in wheat",
			"🥔 Earthing up in potato crop",
			"🌱 Prepare nursery for spring vegetables",
			"📊 Monitor aphid attack in mustard",
		},
		alerts: []string{"Frost warning - protect crops with light irrigation in evening"},
	},
	time.February: {
		season: "Rabi (Late)",
		tasks: []string{
			"🌾 Apply 3rd irrigation to wheat at flowering stage",
			"🧪 Spray for yellow rust in wheat if spotted",
			"🥔 Harvest early potato varieties",
			"🌿 Start preparing for Zaid season vegetables",
			"📋 Apply for PMFBY crop insurance for upcoming season",
			"🐄 Vaccinate livestock before summer",
		},
		alerts: []string{"Temperature rising - plan irrigation schedule carefully"},
	},
	time.March: {
		season: "Rabi Harvest + Zaid Sowing",
		tasks: []string{
			"🌾 Harvest wheat, mustard, and chickpea",
			"🍉 Sow Zaid crops: watermelon, muskmelon, cucumber",
			"💰 Sell rabi produce at mandi - check MSP rates",
			"🌱 Prepare summer vegetable nursery",
			"🔧 Service farm equipment before monsoon",
			"📊 Get soil tested at Krishi Vigyan Kendra",
		},
		alerts: []string{"Heatwave alert - arrange shade for nurseries and livestock"},
	},
	time.April: {
		season: "Zaid + Pre-Kharif Prep",
		tasks: []string{
			"🍉 Manage Zaid crops - regular irrigation needed",
			"🌿 Deep ploughing for kharif season preparation",
			"🧪 Apply lime/gypsum to soil if pH imbalanced",
			"🏗️ Repair bunds, channels, and farm structures",
			"🌱 Procure quality seeds for kharif sowing",
			"📋 Register on e-NAM for better market access",
		},
		alerts: []string{"Extreme heat - irrigate in early morning or evening only"},
	},
	time.May: {
		season: "Pre-Monsoon Preparation",
		tasks: []string{
			"🍉 Harvest Zaid crops",
			"🌿 Complete field preparation - ploughing, leveling",
			"💊 Treat seeds with fungicide before sowing",
			"🧪 Apply FYM/compost to fields (10-15 tonnes/hectare)",
			"🌧️ Clean drainage channels before monsoon",
			"🛒 Purchase fertilizers, pesticides for kharif season",
		},
		alerts: []string{"Pre-monsoon showers possible - be ready for early sowing"},
	},
	time.June: {
		season: "Kharif Sowing",
		tasks: []string{
			"🌾 Sow rice nursery, transplant after 25 days",
			"🌽 Direct sow maize, bajra, jowar",
			"🫘 Sow pulses: moong, urad, tur/arhar",
			"🥜 Sow groundnut, soybean, cotton",
			"💧 Setup drip/sprinkler irrigation systems",
			"📋 Apply for PMFBY kharif crop insurance",
		},
		alerts: []string{"Monsoon onset - sow within 1 week of adequate rainfall"},
	},
	time.July: {
		season: "Kharif (Early Growth)",
		tasks: []string{
			"🌾 Transplant rice paddy to main field",
			"🧪 Apply 1st dose of fertilizer (DAP/NPK)",
			"🌿 Weed management - inter-cultivation",
			"📊 Monitor for stem borer in rice, bollworm in cotton",
			"💧 Ensure proper drainage in waterlogged fields",
			"🐛 Setup pheromone traps for pest monitoring",
		},
		alerts: []string{"Heavy rainfall expected - ensure proper drainage"},
	},
	time.August: {
		season: "Kharif (Active Growth)",
		tasks: []string{
			"🧪 Apply 2nd dose of urea/fertilizer",
			"🐛 Intensive pest and disease surveillance",
			"🌿 Remove weeds, apply weedicide if needed",
			"🌾 Top dressing in rice at tillering stage",
			"📊 Check for leaf curl virus in cotton/chilli",
			"🏪 Start planning storage for upcoming harvest",
		},
		alerts: []string{"Flood risk in low-lying areas - move stored grain to safety"},
	},
	time.September: {
		season: "Kharif (Maturation)",
		tasks: []string{
			"🌾 Monitor crop maturity signs",
			"🧪 Apply potash for grain filling in rice/maize",
			"📊 Check moisture level for harvest timing",
			"🏗️ Prepare threshing floor and storage",
			"🌱 Start rabi nursery preparation",
			"💰 Check mandi prices for selling strategy",
		},
		alerts: []string{"Cyclone/late monsoon risk - secure crop and equipment"},
	},
	time.October: {
		season: "Kharif Harvest + Rabi Sowing",
		tasks: []string{
			"🌾 Harvest rice, cotton, soybean, maize",
			"🌾 Sow wheat, mustard after monsoon withdrawal",
			"🫘 Sow chickpea (chana), lentils (masoor)",
			"🧅 Plant onion sets/seedlings",
			"💰 Sell kharif produce - compare mandi prices",
			"🧪 Apply basal dose fertilizer for rabi crops",
		},
		alerts: []string{"Post-monsoon pest surge - watch for armyworm"},
	},
	time.November: {
		season: "Rabi Sowing (Peak)",
		tasks: []string{
			"🌾 Complete wheat sowing (last recommended date)",
			"🌿 Sow mustard, gram, barley",
			"🥔 Plant potato in north India",
			"💧 First irrigation to wheat (21 days after sowing)",
			"🧪 Apply pre-emergence herbicide in wheat",
			"📋 Apply for PM-KISAN installment if not received",
		},
		alerts: []string{"Fog season approaching - plan spray timing accordingly"},
	},
	time.December: {
		season: "Rabi (Early Growth)",
		tasks: []string{
			"🌾 2nd irrigation to wheat (CRI stage - 40-45 days)",
			"🧪 Apply 1st top dressing of urea to wheat",
			"📊 Scout for aphids in mustard, cut worm in chickpea",
			"🐄 Ensure warm shelter for livestock",
			"🌿 Weed management in rabi crops",
			"📋 Check PM-KISAN installment status",
		},
		alerts: []string{"Cold wave warning - protect crops and livestock"},
	},
}

type CropCalendar struct {
	now func() time.Time
}

func NewCropCalendar(now func() time.Time) *CropCalendar {
	if now == nil {
		now = time.Now
	}
	return &CropCalendar{now: now}
}

type SeasonInfo struct {
	Season
	CurrentMonth string `json:"current_month"`
}

func (c *CropCalendar) CurrentSeason() SeasonInfo {
	m := c.now().Month()
	return SeasonInfo{Season: SeasonFor(m), CurrentMonth: m.String()}
}

// Month returns the plan for month (1-12); zero means the current month.
func (c *CropCalendar) Month(month int) MonthPlan {
	m := time.Month(month)
	if month < 1 || month > 12 {
		m = c.now().Month()
	}
	e := monthlyCalendar[m]
	return MonthPlan{
		Month:            m.String(),
		MonthNumber:      int(m),
		Season:           e.season,
		Tasks:            e.tasks,
		Alerts:           e.alerts,
		RecommendedCrops: c.CurrentSeason().Crops,
	}
}

func (c *CropCalendar) Year() []MonthPlan {
	out := make([]MonthPlan, 0, 12)
	for m := 1; m <= 12; m++ {
		out = append(out, c.Month(m))
	}
	return out
}
