package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/suPer8Hu/krishi-mitra/internal/cache"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/metrics"
)

const (
	SourceLive      = "data.gov.in"
	SourceReference = "market_intelligence"
	SourceCatalog   = "reference_data"

	mandiCacheTTL = 30 * time.Minute
)

type PriceRecord struct {
	State       string  `json:"state"`
	District    string  `json:"district,omitempty"`
	Market      string  `json:"market"`
	Commodity   string  `json:"commodity"`
	Variety     string  `json:"variety,omitempty"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	ModalPrice  float64 `json:"modal_price"`
	ArrivalDate string  `json:"arrival_date,omitempty"`
}

type PriceStats struct {
	AvgPrice     float64 `json:"avg_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	TotalMarkets int     `json:"total_markets"`
}

type PriceReport struct {
	Source         string            `json:"source"`
	Commodity      string            `json:"commodity,omitempty"`
	CommodityNames map[string]string `json:"commodity_names,omitempty"`
	Prices         []PriceRecord     `json:"prices,omitempty"`
	Stats          PriceStats        `json:"statistics"`
	MSP            int               `json:"msp,omitempty"`
	MSPComparison  string            `json:"msp_comparison,omitempty"`
	Trend          string            `json:"trend,omitempty"`
	Recommendation string            `json:"recommendation,omitempty"`
	// Set when the commodity is not known; lists what is.
	Available []string       `json:"available_commodities,omitempty"`
	MSPTable  map[string]int `json:"msp_data,omitempty"`
	FetchedAt time.Time      `json:"timestamp"`
}

type MSPInfo struct {
	Season string         `json:"season"`
	Year   string         `json:"year"`
	Prices map[string]int `json:"msp_prices"`
	Note   string         `json:"note"`
}

type MandiService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   cache.Cache[PriceReport]
	log     *logger.Logger

	now    func() time.Time
	jitter func(spread float64) float64
}

func NewMandiService(baseURL, apiKey string, c cache.Cache[PriceReport], log *logger.Logger) *MandiService {
	return &MandiService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   c,
		log:     log,
		now:     time.Now,
		jitter: func(spread float64) float64 {
			return (rand.Float64()*2 - 1) * spread
		},
	}
}

func (s *MandiService) DetectCommodity(msg string) string {
	return DetectCommodity(msg)
}

// Prices returns live APMC prices when available and reference prices
// otherwise. The error is non-nil only when ctx is done.
func (s *MandiService) Prices(ctx context.Context, commodity, state, district string) (PriceReport, error) {
	commodity = strings.ToLower(strings.TrimSpace(commodity))
	state = strings.ToLower(strings.TrimSpace(state))
	district = strings.ToLower(strings.TrimSpace(district))

	key := fmt.Sprintf("%s_%s_%s", commodity, state, district)
	if r, ok := s.cache.Get(ctx, key); ok {
		return r, nil
	}

	report, err := s.Live(ctx, commodity, state, district)
	metrics.KnowledgeFetchCounter.WithLabelValues("mandi", metrics.Outcome(err)).Inc()
	if err == nil {
		s.cache.Put(ctx, key, report, mandiCacheTTL)
		return report, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return PriceReport{}, ctxErr
	}
	s.log.Warn("mandi live fetch failed, using reference prices", "commodity", commodity, "state", state, "error", err)
	return s.Reference(commodity, state), nil
}

type flexFloat float64

// data.gov.in sends prices as strings.
func (f *flexFloat) UnmarshalJSON(b []byte) error {
	str := strings.Trim(string(b), `"`)
	if str == "" || str == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type mandiRecord struct {
	State       string    `json:"state"`
	District    string    `json:"district"`
	Market      string    `json:"market"`
	Commodity   string    `json:"commodity"`
	Variety     string    `json:"variety"`
	MinPrice    flexFloat `json:"min_price"`
	MaxPrice    flexFloat `json:"max_price"`
	ModalPrice  flexFloat `json:"modal_price"`
	ArrivalDate string    `json:"arrival_date"`
}

type mandiResp struct {
	Records []mandiRecord `json:"records"`
}

// Live queries the data.gov.in APMC price resource.
func (s *MandiService) Live(ctx context.Context, commodity, state, district string) (PriceReport, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return PriceReport{}, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("api-key", s.apiKey)
	q.Set("format", "json")
	q.Set("limit", "50")
	q.Set("offset", "0")
	if commodity != "" {
		q.Set("filters[commodity]", titleCase(commodity))
	}
	if state != "" {
		q.Set("filters[state]", titleCase(state))
	}
	if district != "" {
		q.Set("filters[district]", titleCase(district))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return PriceReport{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return PriceReport{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return PriceReport{}, fmt.Errorf("mandi api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded mandiResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return PriceReport{}, fmt.Errorf("mandi api: decode: %w", err)
	}
	if len(decoded.Records) == 0 {
		return PriceReport{}, fmt.Errorf("mandi api: no records for %q", commodity)
	}
	return s.fromRecords(decoded.Records, commodity), nil
}

func (s *MandiService) fromRecords(records []mandiRecord, commodity string) PriceReport {
	if len(records) > 20 {
		records = records[:20]
	}
	prices := make([]PriceRecord, 0, len(records))
	var modal []float64
	for _, r := range records {
		prices = append(prices, PriceRecord{
			State:       r.State,
			District:    r.District,
			Market:      r.Market,
			Commodity:   r.Commodity,
			Variety:     r.Variety,
			MinPrice:    float64(r.MinPrice),
			MaxPrice:    float64(r.MaxPrice),
			ModalPrice:  float64(r.ModalPrice),
			ArrivalDate: r.ArrivalDate,
		})
		if r.ModalPrice > 0 {
			modal = append(modal, float64(r.ModalPrice))
		}
	}

	var stats PriceStats
	stats.TotalMarkets = len(prices)
	if len(modal) > 0 {
		sum := 0.0
		stats.MinPrice, stats.MaxPrice = modal[0], modal[0]
		for _, p := range modal {
			sum += p
			stats.MinPrice = math.Min(stats.MinPrice, p)
			stats.MaxPrice = math.Max(stats.MaxPrice, p)
		}
		stats.AvgPrice = round2(sum / float64(len(modal)))
	}

	msp := MSP[commodity]
	report := PriceReport{
		Source:         SourceLive,
		Commodity:      commodity,
		Prices:         prices,
		Stats:          stats,
		MSP:            msp,
		Recommendation: SellingAdvice(stats.AvgPrice, msp),
		FetchedAt:      s.now(),
	}
	if c, ok := commodityByKey(commodity); ok {
		report.CommodityNames = c.Names
	}
	if msp > 0 && stats.AvgPrice > 0 {
		report.MSPComparison = mspComparison(stats.AvgPrice, msp)
	}
	return report
}

// Reference builds indicative prices from known ranges when live data is
// unavailable. Unknown commodities get the catalog of known ones instead.
func (s *MandiService) Reference(commodity, state string) PriceReport {
	rng, ok := referenceRanges[commodity]
	if !ok {
		return PriceReport{
			Source:    SourceCatalog,
			Available: CommodityKeys(),
			MSPTable:  MSP,
			FetchedAt: s.now(),
		}
	}

	modal := math.Round((rng.min+rng.max)/2 + s.jitter(200))
	msp := MSP[commodity]
	c, _ := commodityByKey(commodity)

	states := []string{state}
	if state == "" {
		states = []string{"maharashtra", "punjab", "madhya pradesh", "uttar pradesh", "rajasthan"}
	}

	var prices []PriceRecord
	for _, st := range states {
		mandis, ok := StateMandis[st]
		if !ok {
			mandis = []string{titleCase(st)}
		}
		if len(mandis) > 3 {
			mandis = mandis[:3]
		}
		for _, m := range mandis {
			v := s.jitter(300)
			prices = append(prices, PriceRecord{
				State:      titleCase(st),
				Market:     m,
				Commodity:  c.Names["en"],
				MinPrice:   math.Round(rng.min + v*0.5),
				MaxPrice:   math.Round(rng.max + v*0.5),
				ModalPrice: math.Round(modal + v),
			})
		}
	}

	report := PriceReport{
		Source:         SourceReference,
		Commodity:      commodity,
		CommodityNames: c.Names,
		Prices:         prices,
		Stats: PriceStats{
			AvgPrice:     modal,
			MinPrice:     rng.min,
			MaxPrice:     rng.max,
			TotalMarkets: len(prices),
		},
		MSP:            msp,
		Trend:          "stable",
		Recommendation: SellingAdvice(modal, msp),
		FetchedAt:      s.now(),
	}
	if msp > 0 {
		report.MSPComparison = mspComparison(modal, msp)
	}
	return report
}

func (s *MandiService) MSPTable() MSPInfo {
	season := "Kharif"
	switch s.now().Month() {
	case time.October, time.November, time.December, time.January, time.February, time.March:
		season = "Rabi"
	}
	return MSPInfo{
		Season: season,
		Year:   "2025-26",
		Prices: MSP,
		Note:   fmt.Sprintf("Minimum Support Prices for %s season 2025-26 (Rs/quintal)", season),
	}
}

func SellingAdvice(price float64, msp int) string {
	if msp <= 0 {
		return "Monitor prices closely and sell when satisfied with the rate."
	}
	ratio := price / float64(msp)
	switch {
	case ratio > 1.2:
		return fmt.Sprintf("SELL NOW - Price is %.0f%% above MSP. Good time to sell.", (ratio-1)*100)
	case ratio > 1.0:
		return "HOLD/SELL - Price is slightly above MSP. Consider selling if storage costs are high."
	case ratio > 0.9:
		return "HOLD - Price is near MSP. Consider selling at government procurement centers."
	default:
		return "HOLD - Price is below MSP. Sell at government APMC mandi for MSP guarantee."
	}
}

func mspComparison(price float64, msp int) string {
	dir := "Below"
	if price > float64(msp) {
		dir = "Above"
	}
	return fmt.Sprintf("%s MSP by ₹%.0f/quintal", dir, math.Abs(price-float64(msp)))
}

// Brief renders the report as plain text for prompts and raw replies.
func (r PriceReport) Brief() string {
	var b strings.Builder
	if r.Source == SourceCatalog {
		b.WriteString("Commodity not recognised. Prices are available for: ")
		b.WriteString(strings.Join(r.Available, ", "))
		b.WriteString("\n\nMSP 2025-26 (₹/quintal):\n")
		keys := make([]string, 0, len(r.MSPTable))
		for k := range r.MSPTable {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: ₹%d\n", titleCase(k), r.MSPTable[k])
		}
		return strings.TrimSpace(b.String())
	}

	name := r.CommodityNames["en"]
	if name == "" {
		name = titleCase(r.Commodity)
	}
	if name == "" {
		name = "Commodity"
	}
	fmt.Fprintf(&b, "%s prices (source: %s)\n", name, r.Source)
	fmt.Fprintf(&b, "Average modal price: ₹%.0f/quintal (range ₹%.0f - ₹%.0f across %d markets)\n",
		r.Stats.AvgPrice, r.Stats.MinPrice, r.Stats.MaxPrice, r.Stats.TotalMarkets)
	if r.MSP > 0 {
		fmt.Fprintf(&b, "MSP: ₹%d/quintal\n", r.MSP)
	}
	if r.MSPComparison != "" {
		fmt.Fprintf(&b, "MSP comparison: %s\n", r.MSPComparison)
	}
	if r.Trend != "" {
		fmt.Fprintf(&b, "Trend: %s\n", r.Trend)
	}
	if len(r.Prices) > 0 {
		b.WriteString("Markets:\n")
		for i, p := range r.Prices {
			if i == 10 {
				break
			}
			fmt.Fprintf(&b, "- %s, %s: modal ₹%.0f (₹%.0f - ₹%.0f)\n", p.Market, p.State, p.ModalPrice, p.MinPrice, p.MaxPrice)
		}
	}
	if r.Recommendation != "" {
		fmt.Fprintf(&b, "Recommendation: %s\n", r.Recommendation)
	}
	return strings.TrimSpace(b.String())
}

func (m MSPInfo) Brief() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.Note)
	keys := make([]string, 0, len(m.Prices))
	for k := range m.Prices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: ₹%d\n", titleCase(k), m.Prices[k])
	}
	return strings.TrimSpace(b.String())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
