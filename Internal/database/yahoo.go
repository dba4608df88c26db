package datafeed

import (
	"fmt"

	"github.com/piquette/finance-go/equity"

	"github.com/graymarsh/stocksage/Internal/types"
)

// GetCompanyInfo fetches the quote snapshot used for ranking metrics.
// Any individual missing field stays zero; downstream metric math maps
// zeros to neutral values, so a sparse quote is not an error.
func GetCompanyInfo(symbol string) (types.CompanyInfo, error) {
	q, err := equity.Get(symbol)
	if err != nil {
		return types.CompanyInfo{}, fmt.Errorf("fetching quote for %s: %w", symbol, err)
	}
	if q == nil {
		return types.CompanyInfo{Symbol: symbol, Name: symbol}, nil
	}

	name := q.ShortName
	if name == "" {
		name = symbol
	}

	return types.CompanyInfo{
		Symbol:           symbol,
		Name:             name,
		CurrentPrice:     q.RegularMarketPrice,
		FiftyTwoWeekLow:  q.FiftyTwoWeekLow,
		FiftyTwoWeekHigh: q.FiftyTwoWeekHigh,
		Volume:           int64(q.RegularMarketVolume),
		AverageVolume:    int64(q.AverageDailyVolume3Month),
		MarketCap:        int64(q.MarketCap),
	}, nil
}
