package adapter

import (
	"crypto/sha256"
	"encoding/hex"
)

// ExternalEventRecord is the serializable projection of an external event.
// The payload hash lets a bundle consumer verify integrity before replay.
type ExternalEventRecord struct {
	EventID     EventID           `json:"event_id"`
	EventTime   EventTime         `json:"event_time"`
	Kind        ExternalEventKind `json:"kind"`
	Payload     []byte            `json:"payload"`
	PayloadHash string            `json:"payload_hash"`
}

// RecordEvent projects an event into its archival record, hashing the
// payload.
func RecordEvent(ev ExternalEvent) ExternalEventRecord {
	return ExternalEventRecord{
		EventID:     ev.EventID,
		EventTime:   ev.At,
		Kind:        ev.Kind,
		Payload:     append([]byte(nil), ev.Payload...),
		PayloadHash: HashPayload(ev.Payload),
	}
}

// Rehydrate reconstructs an external event with an empty execution context.
func (r ExternalEventRecord) Rehydrate() ExternalEvent {
	return WithPayload(r.EventID, r.Kind, r.EventTime, r.Payload)
}

// ValidateHash reports whether the recorded hash still matches the payload.
func (r ExternalEventRecord) ValidateHash() bool {
	return r.PayloadHash == HashPayload(r.Payload)
}

// HashPayload returns the lowercase hex SHA-256 of the payload bytes.
func HashPayload(payload []byte) string {
	digest := sha256.Sum256(payload)
	return hex.EncodeToString(digest[:])
}
