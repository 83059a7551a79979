package domain

import "time"

// Stream names
const (
	StreamStampsChanged   = "stream:stamps:changed"
	StreamLedgerRefreshed = "stream:ledger:refreshed"
)

// Действия над штампом, публикуемые в стрим
const (
	StampActionCreated  = "stamp.created"
	StampActionUpdated  = "stamp.updated"
	StampActionDeleted  = "stamp.deleted"
	StampActionRedacted = "stamp.redacted"
)

// StampChangedEvent - событие изменения штампа
type StampChangedEvent struct {
	StampID    string    `json:"stamp_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// IsValid проверяет, что событие можно обработать
func (e *StampChangedEvent) IsValid() bool {
	if e.StampID == "" {
		return false
	}
	switch e.Action {
	case StampActionCreated, StampActionUpdated, StampActionDeleted, StampActionRedacted:
		return true
	default:
		return false
	}
}

// LedgerRefreshedEvent - результат пересчёта журнала
type LedgerRefreshedEvent struct {
	TotalStamps int       `json:"total_stamps"`
	TotalKm     int       `json:"total_km"`
	Rank        string    `json:"rank"`
	Triggers    int       `json:"triggers"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
