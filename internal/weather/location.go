package weather

import "strings"

const DefaultLocation = "Delhi,IN"

// Checked in order; cities before states.
var knownLocations = []struct{ key, query string }{
	{"delhi", "Delhi,IN"}, {"mumbai", "Mumbai,IN"}, {"pune", "Pune,IN"},
	{"bangalore", "Bangalore,IN"}, {"hyderabad", "Hyderabad,IN"},
	{"chennai", "Chennai,IN"}, {"kolkata", "Kolkata,IN"}, {"ahmedabad", "Ahmedabad,IN"},
	{"jaipur", "Jaipur,IN"}, {"lucknow", "Lucknow,IN"}, {"chandigarh", "Chandigarh,IN"},
	{"bhopal", "Bhopal,IN"}, {"indore", "Indore,IN"}, {"nagpur", "Nagpur,IN"},
	{"patna", "Patna,IN"}, {"ludhiana", "Ludhiana,IN"}, {"amritsar", "Amritsar,IN"},
	{"punjab", "Punjab,IN"}, {"haryana", "Haryana,IN"}, {"maharashtra", "Maharashtra,IN"},
	{"gujarat", "Gujarat,IN"}, {"rajasthan", "Rajasthan,IN"}, {"karnataka", "Karnataka,IN"},
	{"tamil nadu", "Tamil Nadu,IN"}, {"kerala", "Kerala,IN"}, {"west bengal", "West Bengal,IN"},
	{"uttar pradesh", "Uttar Pradesh,IN"}, {"madhya pradesh", "Madhya Pradesh,IN"},
}

// ExtractLocation picks the first known Indian city or state named in msg.
func ExtractLocation(msg string) string {
	m := strings.ToLower(msg)
	for _, l := range knownLocations {
		if strings.Contains(m, l.key) {
			return l.query
		}
	}
	return DefaultLocation
}
