package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// QuoteRefreshMessage asks the worker to fetch a fresh price for a symbol.
// It carries no price; the worker resolves the quote itself.
type QuoteRefreshMessage struct {
	Symbol    string         `json:"symbol"`
	Type      core.AssetType `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewQuoteRefreshMessage(symbol string, typ core.AssetType) *QuoteRefreshMessage {
	return &QuoteRefreshMessage{
		Symbol:    symbol,
		Type:      typ,
		Timestamp: time.Now().UTC(),
	}
}

func (m *QuoteRefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func QuoteRefreshMessageFromJSON(data []byte) (*QuoteRefreshMessage, error) {
	var msg QuoteRefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
