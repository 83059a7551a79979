package ledger

import (
	"fmt"
	"strings"

	"github.com/travel-ledger/internal/domain"
)

const shareFooter = "nocturne.app"

// Summarize считает статистику журнала: уникальные города и страны, расстояние,
// уровень, разбивку по категориям, последний штамп и текст для экспорта.
func Summarize(stamps []domain.Stamp) domain.LedgerSummary {
	summary := domain.LedgerSummary{
		TotalStamps: len(stamps),
		TotalKm:     TotalTravelKm(stamps),
		Rank:        NextRank(len(stamps)),
		Categories:  CategoryBreakdown(stamps),
	}

	cities := make(map[string]struct{})
	countries := make(map[string]struct{})
	var latest *domain.Stamp
	var latestAt int64

	for i := range stamps {
		s := stamps[i]
		if key := CityKey(s.City); key != "" {
			cities[key] = struct{}{}
		}
		if country := NormalizeCountry(s.Country); country != "" {
			countries[country] = struct{}{}
		}

		at := EffectiveTime(s, PreferCreatedAt)
		if latest == nil || at > latestAt {
			latest = &s
			latestAt = at
		}
	}

	summary.UniqueCities = len(cities)
	summary.UniqueCountries = len(countries)
	summary.Latest = latest
	summary.ShareText = ShareText(len(stamps), latest)

	return summary
}

// CategoryBreakdown - доли категорий в фиксированном порядке, только ненулевые
func CategoryBreakdown(stamps []domain.Stamp) []domain.CategoryStat {
	stats := make([]domain.CategoryStat, 0, len(domain.Categories))
	if len(stamps) == 0 {
		return stats
	}

	counts := make(map[string]int)
	for _, s := range stamps {
		counts[strings.ToUpper(strings.TrimSpace(s.Category))]++
	}

	for _, category := range domain.Categories {
		count := counts[category]
		if count == 0 {
			continue
		}
		stats = append(stats, domain.CategoryStat{
			Label:      category,
			Count:      count,
			Percentage: float64(count) / float64(len(stamps)) * 100,
			Color:      domain.GenreColors[category],
		})
	}

	return stats
}

// ShareText - текст экспорта паспорта
func ShareText(total int, latest *domain.Stamp) string {
	var b strings.Builder
	b.WriteString("NOCTURNE PASSPORT EXPORT\n")
	fmt.Fprintf(&b, "Total Logs: %d\n", total)
	if latest != nil {
		fmt.Fprintf(&b, "Latest: %s | %s\n", latest.Venue, latest.City)
	}
	b.WriteString("--------------------------\n")
	b.WriteString(shareFooter)
	return b.String()
}
