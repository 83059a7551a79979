package ledger

import (
	"strings"
	"time"

	"github.com/travel-ledger/internal/domain"
)

// TimePreference задаёт, какое из двух времён штампа считается основным.
//
// У штампа два независимых времени: date (дата события со слов пользователя)
// и created_at (момент создания записи). Маршрут строится в порядке создания
// записей, а сортировка стран "по свежести" - по дате события. Оба варианта
// разрешаются здесь и только здесь.
type TimePreference int

const (
	// PreferCreatedAt: created_at, если задан, иначе date, иначе 0
	PreferCreatedAt TimePreference = iota
	// PreferEventDate: date, если разбирается и не 0, иначе created_at, иначе 0
	PreferEventDate
)

func (p TimePreference) String() string {
	switch p {
	case PreferCreatedAt:
		return "created_at"
	case PreferEventDate:
		return "event_date"
	default:
		return "unknown"
	}
}

// EffectiveTime возвращает время штампа в миллисекундах Unix.
// Неразбираемые и отсутствующие значения дают 0 ("самый старый").
func EffectiveTime(s domain.Stamp, pref TimePreference) int64 {
	created := CreatedMillis(s)
	event := EventDateMillis(s.Date)

	switch pref {
	case PreferEventDate:
		if event != 0 {
			return event
		}
		return created
	default:
		if created != 0 {
			return created
		}
		return event
	}
}

// CreatedMillis - created_at с точностью до секунды, 0 если не задан
func CreatedMillis(s domain.Stamp) int64 {
	if s.CreatedAt == nil {
		return 0
	}
	return s.CreatedAt.Unix() * 1000
}

// EventDateMillis разбирает дату события (YYYY-MM-DD в UTC или RFC 3339).
// Всё остальное даёт 0.
func EventDateMillis(date string) int64 {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0
	}

	if t, err := time.Parse(domain.DateLayout, date); err == nil {
		return t.UnixMilli()
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.UnixMilli()
	}

	return 0
}
