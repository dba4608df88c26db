package types

type Bar struct {
	Timestamp string  `json:"t"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    int64   `json:"v"`
}

// Date returns the calendar-day part of the bar timestamp.
func (b Bar) Date() string {
	if len(b.Timestamp) >= 10 {
		return b.Timestamp[:10]
	}
	return b.Timestamp
}

// IndicatorSet holds the indicator values aligned to a single bar.
// A nil field means the lookback window did not cover this bar yet;
// consumers must skip nil values rather than treat them as zero.
type IndicatorSet struct {
	SMA20      *float64
	SMA50      *float64
	SMA150     *float64
	SMA200     *float64
	EMA12      *float64
	EMA26      *float64
	RSI        *float64
	MACD       *float64
	MACDSignal *float64
	MACDDiff   *float64
	BBUpper    *float64
	BBMiddle   *float64
	BBLower    *float64
	CCI        *float64
}

type SetupSignal int

const (
	SignalNone SetupSignal = 0
	SignalBuy  SetupSignal = 1
	SignalSell SetupSignal = -1
)

// SetupState is the per-bar output of the Demark setup counter.
// At most one of the two counts is non-zero on any bar.
type SetupState struct {
	BuySetupCount  int
	SellSetupCount int
	Signal         SetupSignal
}

// SignalMarker is a chart annotation for a completed setup.
type SignalMarker struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
	Value int     `json:"value"`
}

type SignalResult struct {
	TechnicalScore float64
	Signals        map[string]string
}

type Recommendation struct {
	Label          string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
	TechnicalScore float64 `json:"technicalScore"`
	SentimentScore float64 `json:"sentimentScore"`
	CombinedScore  float64 `json:"combinedScore"`
	Description    string  `json:"description"`
}

// CompanyInfo is the market-data snapshot used for ranking metrics.
// Zero-valued fields fall back to neutral metrics downstream.
type CompanyInfo struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	CurrentPrice     float64 `json:"currentPrice"`
	FiftyTwoWeekLow  float64 `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh float64 `json:"fiftyTwoWeekHigh"`
	Volume           int64   `json:"volume"`
	AverageVolume    int64   `json:"averageVolume"`
	MarketCap        int64   `json:"marketCap"`
}

type NewsArticle struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Source    string  `json:"source"`
	Sentiment float64 `json:"sentiment"`
	Date      string  `json:"date"`
	Summary   string  `json:"summary"`
}

// AnalysisReport is the full single-symbol result assembled by the analyzer.
type AnalysisReport struct {
	Symbol         string            `json:"symbol"`
	Company        CompanyInfo       `json:"company"`
	Recommendation Recommendation    `json:"recommendationDetail"`
	Signals        map[string]string `json:"signals"`
	BuyMarkers     []SignalMarker    `json:"buySignals"`
	SellMarkers    []SignalMarker    `json:"sellSignals"`
	Articles       []NewsArticle     `json:"newsArticles"`
	Bars           []Bar             `json:"-"`
}

// ScreeningResult is one ranked row of a screening run.
type ScreeningResult struct {
	Symbol              string  `json:"symbol"`
	Name                string  `json:"name"`
	CurrentPrice        float64 `json:"currentPrice"`
	Recommendation      string  `json:"recommendation"`
	CombinedScore       float64 `json:"combinedScore"`
	TechnicalScore      float64 `json:"technicalScore"`
	SentimentScore      float64 `json:"sentimentScore"`
	Confidence          float64 `json:"confidence"`
	PricePosition52w    float64 `json:"pricePosition52w"`
	VolumeRatio         float64 `json:"volumeRatio"`
	Momentum20d         float64 `json:"momentum20d"`
	AttractivenessScore float64 `json:"attractivenessScore"`
	Description         string  `json:"description"`
}
