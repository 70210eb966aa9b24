package amqp

import (
	"encoding/json"
	"time"
)

// TransactionAddedMessage announces a newly recorded transaction.
// It carries only the id; the worker loads the full record from the
// store, which stays the source of truth.
type TransactionAddedMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionAddedMessage(id int64) *TransactionAddedMessage {
	return &TransactionAddedMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *TransactionAddedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionAddedMessageFromJSON(data []byte) (*TransactionAddedMessage, error) {
	var msg TransactionAddedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
