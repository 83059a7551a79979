package ledger

import (
	"sort"
	"strings"
	"sync"
)

// countryAliases сопоставляет вариант написания страны с каноническим ключом.
// Каждый канонический ключ обязан присутствовать в таблице как ключ сам на себя,
// иначе NormalizeCountry перестанет быть идемпотентной.
var countryAliases = map[string]string{
	// North America
	"USA":           "USA",
	"UNITED STATES": "USA",
	"U.S.A.":        "USA",

	// Europe
	"UK":              "UK",
	"UNITED KINGDOM":  "UK",
	"GREAT BRITAIN":   "UK",
	"ENGLAND":         "UK",
	"UKRAINE":         "UKRAINE",
	"NETHERLANDS":     "NETHERLANDS",
	"HOLLAND":         "NETHERLANDS",
	"NORTH MACEDONIA": "MACEDONIA",
	"MACEDONIA":       "MACEDONIA",
	"KOSOVE":          "KOSOVO",
	"KOSOVO":          "KOSOVO",
	"CZECHIA":         "CZECH REPUBLIC",
	"CZECH REPUBLIC":  "CZECH REPUBLIC",
	"TURKEY":          "TÜRKİYE",
	"TÜRKIYE":         "TÜRKİYE",
	"TÜRKİYE":         "TÜRKİYE",

	// Middle East & Asia
	"UAE":                                   "UAE",
	"UNITED ARAB EMIRATES":                  "UAE",
	"EMIRATES":                              "UAE",
	"ROK":                                   "SOUTH KOREA",
	"KOREA":                                 "SOUTH KOREA",
	"REPUBLIC OF KOREA":                     "SOUTH KOREA",
	"SOUTH KOREA":                           "SOUTH KOREA",
	"DPRK":                                  "NORTH KOREA",
	"DEMOCRATIC PEOPLE'S REPUBLIC OF KOREA": "NORTH KOREA",
	"DEMOCRATIC PEOPLES REPUBLIC OF KOREA":  "NORTH KOREA",
	"NORTH KOREA":                           "NORTH KOREA",
	"VIET NAM":                              "VIETNAM",
	"VIETNAM":                               "VIETNAM",
	"PRC":                                   "CHINA",
	"CHINA":                                 "CHINA",

	// Others
	"RUSSIAN FEDERATION": "RUSSIA",
	"RUSSIA":             "RUSSIA",
}

// aliasesByLength - ключи таблицы по убыванию длины (при равной длине - лексикографически).
// Длинные многословные алиасы проверяются раньше коротких, чтобы "UK" не сработал
// внутри постороннего слова.
var aliasesByLength = sync.OnceValue(func() []string {
	keys := make([]string, 0, len(countryAliases))
	for k := range countryAliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
})

// NormalizeCountry приводит произвольное название страны к каноническому ключу.
// Неизвестные страны возвращаются как есть (trim + upper case), пустой ввод - "".
func NormalizeCountry(raw string) string {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return ""
	}

	if canonical, ok := countryAliases[name]; ok {
		return canonical
	}

	for _, alias := range aliasesByLength() {
		if strings.Contains(name, alias) {
			return countryAliases[alias]
		}
	}

	return name
}

// CanonicalCountries возвращает отсортированный список канонических ключей
func CanonicalCountries() []string {
	seen := make(map[string]struct{}, len(countryAliases))
	for _, canonical := range countryAliases {
		seen[canonical] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
