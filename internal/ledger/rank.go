package ledger

import "github.com/travel-ledger/internal/domain"

// rankTable - пороги уровней сверху вниз, первый подходящий выигрывает
var rankTable = []domain.Rank{
	{Name: "GHOST", Level: "05", ColorToken: "#ffffff", Title: "Ghost", Numeral: "V", MinStamps: 50},
	{Name: "OPERATIVE", Level: "04", ColorToken: "#ff4d4d", Title: "Operative", Numeral: "IV", MinStamps: 30},
	{Name: "VANGUARD", Level: "03", ColorToken: "#bc13fe", Title: "Vanguard", Numeral: "III", MinStamps: 15},
	{Name: "RESIDENT", Level: "02", ColorToken: "#00f2ff", Title: "Resident", Numeral: "II", MinStamps: 5},
	{Name: "INITIATE", Level: "01", ColorToken: "#71717a", Title: "Initiate", Numeral: "I", MinStamps: 0},
}

// RankFor возвращает уровень для количества штампов.
// Отрицательное количество считается нулём.
func RankFor(count int) domain.Rank {
	for _, r := range rankTable {
		if count >= r.MinStamps {
			return r
		}
	}
	return rankTable[len(rankTable)-1]
}

// NextRank возвращает текущий уровень, следующий уровень и сколько штампов до него
// осталось. Для высшего уровня Next равен nil.
func NextRank(count int) domain.RankProgress {
	if count < 0 {
		count = 0
	}

	progress := domain.RankProgress{Current: RankFor(count)}
	for i := len(rankTable) - 1; i >= 0; i-- {
		if rankTable[i].MinStamps > count {
			next := rankTable[i]
			progress.Next = &next
			progress.Remaining = next.MinStamps - count
			break
		}
	}

	return progress
}
