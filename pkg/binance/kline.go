package binance

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseKlineList converts raw /api/v3/klines rows into []Kline, keeping the
// exchange order (oldest first). Any incomplete or malformed row fails the
// whole list, so positions always match what the exchange sent.
func ParseKlineList(raw [][]json.RawMessage) ([]Kline, error) {
	out := make([]Kline, 0, len(raw))

	for i, row := range raw {
		if len(row) < 7 {
			return nil, fmt.Errorf("kline row %d: incomplete, %d fields", i, len(row))
		}

		k, err := parseKlineRow(row)
		if err != nil {
			return nil, fmt.Errorf("kline row %d: %w", i, err)
		}
		out = append(out, k)
	}
	return out, nil
}

func parseKlineRow(row []json.RawMessage) (Kline, error) {
	var (
		k   Kline
		err error
	)
	if k.OpenTime, err = millis(row[0]); err != nil {
		return Kline{}, fmt.Errorf("open time: %w", err)
	}
	if k.Open, err = decimalText(row[1]); err != nil {
		return Kline{}, fmt.Errorf("open: %w", err)
	}
	if k.High, err = decimalText(row[2]); err != nil {
		return Kline{}, fmt.Errorf("high: %w", err)
	}
	if k.Low, err = decimalText(row[3]); err != nil {
		return Kline{}, fmt.Errorf("low: %w", err)
	}
	if k.Close, err = decimalText(row[4]); err != nil {
		return Kline{}, fmt.Errorf("close: %w", err)
	}
	if k.Volume, err = decimalText(row[5]); err != nil {
		return Kline{}, fmt.Errorf("volume: %w", err)
	}
	if k.CloseTime, err = millis(row[6]); err != nil {
		return Kline{}, fmt.Errorf("close time: %w", err)
	}
	return k, nil
}

// decimalText accepts either a JSON string ("42500.00") or a bare JSON number.
func decimalText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	if n == "" {
		return "", fmt.Errorf("empty decimal field")
	}
	return n.String(), nil
}

func millis(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n.Int64()
}
