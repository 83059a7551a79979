package ledger

import (
	"sort"
	"strings"

	"github.com/travel-ledger/internal/domain"
)

// CountrySort - порядок стран в паспорте
type CountrySort string

const (
	SortAlpha  CountrySort = "ALPHA"
	SortRecent CountrySort = "RECENT"

	// WorldwideGroup - группа для штампов без страны
	WorldwideGroup = "WORLDWIDE"
	// CategoryAll - значение фильтра категории "все"
	CategoryAll = "ALL"
)

// ParseCountrySort разбирает режим сортировки; неизвестное значение даёт SortAlpha
func ParseCountrySort(v string) CountrySort {
	if CountrySort(strings.ToUpper(strings.TrimSpace(v))) == SortRecent {
		return SortRecent
	}
	return SortAlpha
}

// GroupOptions - фильтры и сортировка паспорта. Все фильтры объединяются по И.
type GroupOptions struct {
	SearchText  string
	CountrySort CountrySort
	Category    string
	// CityFilters: каноническая страна -> разрешённые города (upper case). Пустой список - без фильтра.
	CityFilters map[string][]string
}

type countryBucket struct {
	key    string
	stamps []domain.Stamp
	newest int64
}

// GroupAndSort группирует штампы по стране и упорядочивает страны и штампы внутри них.
// Входной срез не меняется.
func GroupAndSort(stamps []domain.Stamp, opts GroupOptions) []domain.CountryGroup {
	search := strings.ToUpper(strings.TrimSpace(opts.SearchText))
	category := strings.ToUpper(strings.TrimSpace(opts.Category))
	if category == CategoryAll {
		category = ""
	}

	buckets := make(map[string]*countryBucket)
	order := make([]*countryBucket, 0)

	for _, s := range stamps {
		if !matchesSearch(s, search) {
			continue
		}
		if category != "" && strings.ToUpper(strings.TrimSpace(s.Category)) != category {
			continue
		}

		key := strings.ToUpper(s.Country)
		if strings.TrimSpace(key) == "" {
			key = WorldwideGroup
		}

		b, ok := buckets[key]
		if !ok {
			b = &countryBucket{key: key}
			buckets[key] = b
			order = append(order, b)
		}
		b.stamps = append(b.stamps, s)
		if t := EffectiveTime(s, PreferEventDate); t > b.newest {
			b.newest = t
		}
	}

	switch opts.CountrySort {
	case SortRecent:
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].newest > order[j].newest
		})
	default:
		sort.SliceStable(order, func(i, j int) bool {
			return order[i].key < order[j].key
		})
	}

	groups := make([]domain.CountryGroup, 0, len(order))
	for _, b := range order {
		sort.SliceStable(b.stamps, func(i, j int) bool {
			return EventDateMillis(b.stamps[i].Date) > EventDateMillis(b.stamps[j].Date)
		})

		allowed := cityAllowList(cityFilterFor(opts.CityFilters, b.key))
		filtered := make([]domain.Stamp, 0, len(b.stamps))
		for _, s := range b.stamps {
			if len(allowed) > 0 {
				if _, ok := allowed[CityKey(s.City)]; !ok {
					continue
				}
			}
			filtered = append(filtered, s)
		}

		if len(filtered) == 0 {
			continue
		}

		groups = append(groups, domain.CountryGroup{
			Country: b.key,
			Cities:  uniqueCities(b.stamps),
			Total:   len(b.stamps),
			Stamps:  filtered,
		})
	}

	return groups
}

// ParseCityFilters разбирает фильтры вида "COUNTRY:CITY"; записи без двоеточия игнорируются
func ParseCityFilters(values []string) map[string][]string {
	filters := make(map[string][]string)
	for _, v := range values {
		country, city, ok := strings.Cut(v, ":")
		if !ok {
			continue
		}
		country = NormalizeCountry(country)
		city = CityKey(city)
		if country == "" || city == "" {
			continue
		}
		filters[country] = append(filters[country], city)
	}
	return filters
}

// cityFilterFor ищет фильтр по ключу группы, а для несохранённых в каноническом виде стран - по нормализованному
func cityFilterFor(filters map[string][]string, key string) []string {
	if cities, ok := filters[key]; ok {
		return cities
	}
	return filters[NormalizeCountry(key)]
}

func matchesSearch(s domain.Stamp, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(NormalizeCountry(s.Country), search) ||
		strings.Contains(strings.ToUpper(s.City), search)
}

func cityAllowList(cities []string) map[string]struct{} {
	if len(cities) == 0 {
		return nil
	}
	allowed := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		allowed[CityKey(c)] = struct{}{}
	}
	return allowed
}

func uniqueCities(stamps []domain.Stamp) []string {
	seen := make(map[string]struct{})
	cities := make([]string, 0)
	for _, s := range stamps {
		key := CityKey(s.City)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cities = append(cities, key)
	}
	return cities
}
