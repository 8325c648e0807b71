package analysis

import (
	"errors"
	"fmt"
)

// ErrUpstreamData matches every *UpstreamError via errors.Is.
var ErrUpstreamData = errors.New("bad upstream data")

// Dataset names the upstream dataset that was missing or unusable.
type Dataset string

const (
	DatasetKlines       Dataset = "Kline"
	DatasetAveragePrice Dataset = "average price"
)

// UpstreamError reports that a dataset needed for the analysis of Symbol
// could not be fetched or parsed.
type UpstreamError struct {
	Symbol  string
	Dataset Dataset
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Unable to fetch %s data for %s", e.Dataset, e.Symbol)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamData
}
