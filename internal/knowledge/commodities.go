package knowledge

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Commodity struct {
	Key   string
	Names map[string]string
}

// Commodities in detection order.
var Commodities = []Commodity{
	{"wheat", map[string]string{"en": "Wheat", "hi": "गेहूं", "mr": "गहू", "pa": "ਕਣਕ", "ta": "கோதுமை", "te": "గోధుమ", "kn": "ಗೋಧಿ"}},
	{"rice", map[string]string{"en": "Rice", "hi": "चावल", "mr": "तांदूळ", "pa": "ਚਾਵਲ", "ta": "அரிசி", "te": "బియ్యం", "kn": "ಅಕ್ಕಿ"}},
	{"onion", map[string]string{"en": "Onion", "hi": "प्याज", "mr": "कांदा", "pa": "ਪਿਆਜ਼", "ta": "வெங்காயம்", "te": "ఉల్లిపాయ", "kn": "ಈರುಳ್ಳಿ"}},
	{"potato", map[string]string{"en": "Potato", "hi": "आलू", "mr": "बटाटा", "pa": "ਆਲੂ", "ta": "உருளைக்கிழங்கு", "te": "బంగాళాదుంప", "kn": "ಆಲೂಗಡ್ಡೆ"}},
	{"tomato", map[string]string{"en": "Tomato", "hi": "टमाटर", "mr": "टोमॅटो", "pa": "ਟਮਾਟਰ", "ta": "தக்காளி", "te": "టమాటా", "kn": "ಟೊಮ್ಯಾಟೊ"}},
	{"soybean", map[string]string{"en": "Soybean", "hi": "सोयाबीन", "mr": "सोयाबीन", "pa": "ਸੋਇਆਬੀਨ"}},
	{"cotton", map[string]string{"en": "Cotton", "hi": "कपास", "mr": "कापूस", "pa": "ਕਪਾਹ"}},
	{"sugarcane", map[string]string{"en": "Sugarcane", "hi": "गन्ना", "mr": "ऊस", "pa": "ਗੰਨਾ"}},
	{"mustard", map[string]string{"en": "Mustard", "hi": "सरसों", "mr": "मोहरी", "pa": "ਸਰ੍ਹੋਂ"}},
	{"chana", map[string]string{"en": "Chickpea", "hi": "चना", "mr": "हरभरा", "pa": "ਛੋਲੇ"}},
	{"maize", map[string]string{"en": "Maize", "hi": "मक्का", "mr": "मका", "pa": "ਮੱਕੀ"}},
	{"bajra", map[string]string{"en": "Pearl Millet", "hi": "बाजरा", "mr": "बाजरी", "pa": "ਬਾਜਰਾ"}},
	{"jowar", map[string]string{"en": "Sorghum", "hi": "ज्वार", "mr": "ज्वारी", "pa": "ਜਵਾਰ"}},
	{"turmeric", map[string]string{"en": "Turmeric", "hi": "हल्दी", "mr": "हळद", "pa": "ਹਲਦੀ"}},
	{"chilli", map[string]string{"en": "Red Chilli", "hi": "लाल मिर्च", "mr": "लाल मिरची", "pa": "ਲਾਲ ਮਿਰਚ"}},
	{"garlic", map[string]string{"en": "Garlic", "hi": "लहसुन", "mr": "लसूण", "pa": "ਲਸਣ"}},
	{"banana", map[string]string{"en": "Banana", "hi": "केला", "mr": "केळे", "pa": "ਕੇਲਾ"}},
	{"mango", map[string]string{"en": "Mango", "hi": "आम", "mr": "आंबा", "pa": "ਅੰਬ"}},
}

// MSP is the 2025-26 minimum support price in ₹ per quintal.
var MSP = map[string]int{
	// Rabi
	"wheat": 2275, "mustard": 5650, "chana": 5440, "masoor": 6425,
	"safflower": 5800, "barley": 1850,
	// Kharif
	"rice": 2300, "jowar": 3371, "bajra": 2625, "maize": 2090,
	"cotton": 7121, "soybean": 4892, "groundnut": 6377,
	"moong": 8558, "urad": 7000, "tur": 7000, "sugarcane": 340,
}

var StateMandis = map[string][]string{
	"maharashtra":    {"Mumbai", "Pune", "Nashik", "Nagpur", "Aurangabad", "Solapur", "Kolhapur"},
	"punjab":         {"Ludhiana", "Amritsar", "Jalandhar", "Patiala", "Bathinda", "Moga", "Khanna"},
	"haryana":        {"Karnal", "Hisar", "Ambala", "Rohtak", "Sonipat", "Panipat"},
	"uttar pradesh":  {"Lucknow", "Agra", "Kanpur", "Varanasi", "Allahabad", "Meerut"},
	"madhya pradesh": {"Indore", "Bhopal", "Jabalpur", "Gwalior", "Ujjain", "Dewas"},
	"rajasthan":      {"Jaipur", "Jodhpur", "Kota", "Ajmer", "Udaipur", "Bikaner"},
	"gujarat":        {"Ahmedabad", "Rajkot", "Surat", "Junagadh", "Gondal", "Unjha"},
	"karnataka":      {"Bangalore", "Hubli", "Mysore", "Belgaum", "Davangere", "Shimoga"},
	"tamil nadu":     {"Chennai", "Coimbatore", "Madurai", "Salem", "Trichy", "Erode"},
	"andhra pradesh": {"Hyderabad", "Guntur", "Kurnool", "Vijayawada", "Warangal"},
	"west bengal":    {"Kolkata", "Siliguri", "Burdwan", "Hooghly"},
	"bihar":          {"Patna", "Muzaffarpur", "Gaya", "Bhagalpur"},
	"kerala":         {"Kochi", "Thrissur", "Kozhikode", "Thiruvananthapuram"},
}

type priceRange struct{ min, max float64 }

// Reference ranges in ₹/quintal, used when live prices are unavailable.
var referenceRanges = map[string]priceRange{
	"wheat": {2200, 2800}, "rice": {2100, 3500}, "onion": {800, 3500},
	"potato": {600, 2000}, "tomato": {500, 4000}, "soybean": {4200, 5500},
	"cotton": {6500, 8000}, "mustard": {5000, 6500}, "chana": {4800, 6200},
	"maize": {1800, 2500}, "bajra": {2200, 3000}, "jowar": {2800, 3800},
	"turmeric": {7000, 15000}, "chilli": {8000, 25000}, "garlic": {3000, 12000},
	"sugarcane": {300, 400}, "banana": {800, 2500}, "mango": {2000, 8000},
}

func commodityByKey(key string) (Commodity, bool) {
	for _, c := range Commodities {
		if c.Key == key {
			return c, true
		}
	}
	return Commodity{}, false
}

func CommodityKeys() []string {
	out := make([]string, 0, len(Commodities))
	for _, c := range Commodities {
		out = append(out, c.Key)
	}
	return out
}

// DetectCommodity finds the first commodity named in msg, by key or by any
// of its localized names. Latin names must appear as whole words so that
// "price" does not match "rice".
func DetectCommodity(msg string) string {
	m := strings.ToLower(msg)
	for _, c := range Commodities {
		if containsWord(m, c.Key) {
			return c.Key
		}
		for _, name := range c.Names {
			if containsWord(m, strings.ToLower(name)) {
				return c.Key
			}
		}
	}
	return ""
}

func containsWord(s, w string) bool {
	if w == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(s[from:], w)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(w)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		if !isASCIILetter(before) && wordEnds(s[end:]) {
			return true
		}
		from = start + 1
	}
}

// wordEnds allows a plural "s" or "es" before the boundary.
func wordEnds(rest string) bool {
	for _, suffix := range []string{"", "s", "es"} {
		if !strings.HasPrefix(rest, suffix) {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest[len(suffix):]); !isASCIILetter(r) {
			return true
		}
	}
	return false
}

func isASCIILetter(r rune) bool {
	return r < utf8.RuneSelf && unicode.IsLetter(r)
}

// LocalizedCrops lists every commodity with its name in lang, falling back to English.
func LocalizedCrops(lang string) []map[string]string {
	out := make([]map[string]string, 0, len(Commodities))
	for _, c := range Commodities {
		name, ok := c.Names[lang]
		if !ok {
			name = c.Names["en"]
		}
		out = append(out, map[string]string{"key": c.Key, "name": name, "en": c.Names["en"]})
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
