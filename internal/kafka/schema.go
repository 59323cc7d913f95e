package kafka

import (
	"strconv"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderFrameID  = "frame_id"
	HeaderError    = "error"
	HeaderAttempts = "attempts"
)

// EventNotification is published once per scored frame. Changed is omitted
// in legacy mode.
type EventNotification struct {
	Event   int   `json:"event"`
	Changed *bool `json:"changed,omitempty"`
}

// DeadLetter copies the raw frame and annotates it with why it was dropped.
func DeadLetter(m kafka.Message, frameID string, attempts int, cause error) kafka.Message {
	headers := append([]kafka.Header{}, m.Headers...)
	headers = append(headers,
		kafka.Header{Key: HeaderFrameID, Value: []byte(frameID)},
		kafka.Header{Key: HeaderAttempts, Value: []byte(strconv.Itoa(attempts))},
	)
	if cause != nil {
		headers = append(headers, kafka.Header{Key: HeaderError, Value: []byte(cause.Error())})
	}
	return kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: headers,
	}
}

// Header returns the value of the first header with the given key.
func Header(m kafka.Message, key string) (string, bool) {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}
