package amqp

import "testing"

func TestTransactionAddedMessageRoundTrip(t *testing.T) {
	msg := NewTransactionAddedMessage(42)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := TransactionAddedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("expected id 42, got %d", got.ID)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("expected a timestamp")
	}

	if _, err := TransactionAddedMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
