package models

// CandleDTO is one OHLCV bar from the history endpoint, tagged for CSV
// export.
type CandleDTO struct {
	Timestamp string  `json:"timestamp" csv:"timestamp"`
	Open      float64 `json:"open" csv:"open"`
	High      float64 `json:"high" csv:"high"`
	Low       float64 `json:"low" csv:"low"`
	Close     float64 `json:"close" csv:"close"`
	Volume    float64 `json:"volume" csv:"volume"`
}
