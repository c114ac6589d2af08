package knowledge

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type cropEconomics struct {
	costPerHa float64
	yieldQtl  float64
	msp       float64
}

var cropEconomicsTable = map[string]cropEconomics{
	"wheat":     {45000, 45, 2275},
	"rice":      {55000, 50, 2300},
	"maize":     {35000, 55, 2090},
	"cotton":    {60000, 20, 7121},
	"soybean":   {35000, 18, 4892},
	"mustard":   {30000, 15, 5650},
	"chana":     {30000, 18, 5440},
	"potato":    {100000, 250, 0},
	"onion":     {80000, 200, 0},
	"tomato":    {90000, 300, 0},
	"sugarcane": {80000, 700, 340},
	"bajra":     {25000, 25, 2625},
	"jowar":     {25000, 22, 3371},
	"turmeric":  {150000, 60, 0},
	"garlic":    {120000, 80, 0},
}

// Crops in the order they are offered to users.
var economicsCrops = []string{
	"wheat", "rice", "maize", "cotton", "soybean", "mustard", "chana", "potato",
	"onion", "tomato", "sugarcane", "bajra", "jowar", "turmeric", "garlic",
}

// DefaultComparisonCrops are compared when a question names no known crop.
var DefaultComparisonCrops = []string{"wheat", "rice", "cotton", "soybean", "potato"}

type Economics struct {
	Crop         string  `json:"crop"`
	AreaHectares float64 `json:"area_hectares"`
	AreaAcres    float64 `json:"area_acres"`
	AreaBigha    float64 `json:"area_bigha"`

	TotalCost       float64 `json:"total_input_cost"`
	CostPerHectare  float64 `json:"cost_per_hectare"`
	CostPerQuintal  float64 `json:"cost_per_quintal"`
	TotalYield      float64 `json:"total_quintals"`
	YieldPerHectare float64 `json:"yield_per_hectare"`

	SellingPrice float64 `json:"selling_price_per_quintal"`
	MSP          float64 `json:"msp_per_quintal"`
	TotalRevenue float64 `json:"total_revenue"`

	NetProfit        float64 `json:"net_profit"`
	ROIPercent       float64 `json:"roi_percentage"`
	BreakevenPrice   float64 `json:"breakeven_price"`
	ProfitPerHectare float64 `json:"profit_per_hectare"`

	Recommendation string `json:"recommendation"`
}

type Comparison struct {
	AreaHectares float64     `json:"area_hectares"`
	Crops        []Economics `json:"comparisons"`
	BestCrop     string      `json:"best_crop,omitempty"`
	BestROI      float64     `json:"best_roi"`
}

type EconomicsCalculator struct{}

func NewEconomicsCalculator() *EconomicsCalculator { return &EconomicsCalculator{} }

func (c *EconomicsCalculator) Crops() []string {
	out := make([]string, len(economicsCrops))
	copy(out, economicsCrops)
	return out
}

// DetectCrop returns the first crop with economics data named in msg.
func (c *EconomicsCalculator) DetectCrop(msg string) string {
	m := strings.ToLower(msg)
	for _, crop := range economicsCrops {
		if containsWord(m, crop) {
			return crop
		}
	}
	return ""
}

// Calculate estimates cost, revenue and ROI for area hectares of crop.
// sellingPrice and inputCostPerHa override the defaults when positive; the
// default price is the MSP, or zero for crops without one.
func (c *EconomicsCalculator) Calculate(crop string, area, sellingPrice, inputCostPerHa float64) (Economics, error) {
	crop = strings.ToLower(strings.TrimSpace(crop))
	d, ok := cropEconomicsTable[crop]
	if !ok {
		return Economics{}, fmt.Errorf("%w: %s", ErrUnknownCrop, crop)
	}
	if area <= 0 {
		area = 1
	}
	cost := d.costPerHa
	if inputCostPerHa > 0 {
		cost = inputCostPerHa
	}
	price := d.msp
	if sellingPrice > 0 {
		price = sellingPrice
	}

	totalCost := cost * area
	totalYield := d.yieldQtl * area
	revenue := totalYield * price
	profit := revenue - totalCost
	roi := 0.0
	if totalCost > 0 {
		roi = profit / totalCost * 100
	}
	costPerQtl := 0.0
	if totalYield > 0 {
		costPerQtl = totalCost / totalYield
	}

	return Economics{
		Crop:             crop,
		AreaHectares:     area,
		AreaAcres:        round2(area * 2.471),
		AreaBigha:        round2(area * 4),
		TotalCost:        math.Round(totalCost),
		CostPerHectare:   math.Round(cost),
		CostPerQuintal:   math.Round(costPerQtl),
		TotalYield:       round1(totalYield),
		YieldPerHectare:  round1(d.yieldQtl),
		SellingPrice:     math.Round(price),
		MSP:              d.msp,
		TotalRevenue:     math.Round(revenue),
		NetProfit:        math.Round(profit),
		ROIPercent:       round1(roi),
		BreakevenPrice:   math.Round(costPerQtl),
		ProfitPerHectare: math.Round(profit / area),
		Recommendation:   economicsAdvice(crop, roi, d.msp),
	}, nil
}

// Compare calculates every known crop in crops and sorts by ROI, best first.
func (c *EconomicsCalculator) Compare(crops []string, area float64) Comparison {
	if area <= 0 {
		area = 1
	}
	out := Comparison{AreaHectares: area}
	for _, crop := range crops {
		e, err := c.Calculate(crop, area, 0, 0)
		if err != nil {
			continue
		}
		out.Crops = append(out.Crops, e)
	}
	sort.SliceStable(out.Crops, func(i, j int) bool { return out.Crops[i].ROIPercent > out.Crops[j].ROIPercent })
	if len(out.Crops) > 0 {
		out.BestCrop = out.Crops[0].Crop
		out.BestROI = out.Crops[0].ROIPercent
	}
	return out
}

func economicsAdvice(crop string, roi, msp float64) string {
	name := titleCase(crop)
	switch {
	case roi > 50:
		return fmt.Sprintf("Excellent ROI of %.0f%%! %s is highly profitable at current prices. Consider increasing area.", roi, name)
	case roi > 20:
		return fmt.Sprintf("Good ROI of %.0f%%. %s is profitable. Focus on reducing input costs and increasing yield.", roi, name)
	case roi > 0:
		return fmt.Sprintf("Marginal ROI of %.0f%%. Consider switching to higher-value crops or reducing costs through organic inputs.", roi)
	default:
		return fmt.Sprintf("Negative ROI of %.0f%%. Consider alternative crops, reducing input costs, or selling at MSP (₹%.0f/qtl) if available.", roi, msp)
	}
}

func (e Economics) Brief() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s on %.2f hectare (%.2f acre)\n", titleCase(e.Crop), e.AreaHectares, e.AreaAcres)
	fmt.Fprintf(&b, "Input cost: ₹%.0f (₹%.0f/hectare, ₹%.0f/quintal)\n", e.TotalCost, e.CostPerHectare, e.CostPerQuintal)
	fmt.Fprintf(&b, "Expected yield: %.1f quintal (%.1f quintal/hectare)\n", e.TotalYield, e.YieldPerHectare)
	fmt.Fprintf(&b, "Selling price: ₹%.0f/quintal, revenue ₹%.0f\n", e.SellingPrice, e.TotalRevenue)
	fmt.Fprintf(&b, "Net profit: ₹%.0f, ROI %.1f%%, breakeven ₹%.0f/quintal\n", e.NetProfit, e.ROIPercent, e.BreakevenPrice)
	fmt.Fprintf(&b, "Advice: %s", e.Recommendation)
	return b.String()
}

func (c Comparison) Brief() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crop comparison for %.2f hectare, best ROI first:\n", c.AreaHectares)
	for _, e := range c.Crops {
		fmt.Fprintf(&b, "- %s: cost ₹%.0f, revenue ₹%.0f, profit ₹%.0f, ROI %.1f%%\n",
			titleCase(e.Crop), e.TotalCost, e.TotalRevenue, e.NetProfit, e.ROIPercent)
	}
	if c.BestCrop != "" {
		fmt.Fprintf(&b, "Best: %s (ROI %.1f%%)", titleCase(c.BestCrop), c.BestROI)
	}
	return strings.TrimSpace(b.String())
}
