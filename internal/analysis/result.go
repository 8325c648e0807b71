package analysis

import "strconv"

// Comparison describes the last close price relative to the average price.
type Comparison string

const (
	Higher Comparison = "higher"
	Lower  Comparison = "lower"
	Equal  Comparison = "equal"
)

// Result is the payload served for GET /token_analysis.
type Result struct {
	Symbol         string     `json:"symbol"`
	LastClosePrice string     `json:"last_close_price"`
	AveragePrice   string     `json:"average_price"`
	Comparison     Comparison `json:"comparison"`
}

// Compare classifies closePrice against avgPrice.
func Compare(closePrice, avgPrice float64) Comparison {
	switch {
	case closePrice > avgPrice:
		return Higher
	case closePrice < avgPrice:
		return Lower
	default:
		return Equal
	}
}

// FormatPrice renders a price with exactly two decimals.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
