package intent

// Category is the routing decision for a farmer message.
type Category int

const (
	NonFarming Category = iota
	Greeting
	CropRecommendation
	Weather
	UpdateNews
	MandiPrice
	Scheme
	Soil
	Economics
	GeneralFarming
)

var categoryNames = map[Category]string{
	NonFarming:         "non_farming",
	Greeting:           "greeting",
	CropRecommendation: "crop_recommendation",
	Weather:            "weather",
	UpdateNews:         "update_news",
	MandiPrice:         "mandi_price",
	Scheme:             "scheme",
	Soil:               "soil",
	Economics:          "economics",
	GeneralFarming:     "general_farming",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// Accepted reports whether the message is in scope for the advisor.
func (c Category) Accepted() bool {
	return c != NonFarming
}
