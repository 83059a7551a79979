// Package docs Travel Ledger API.
//
// Журнал путешествий: штампы (место + город + страна + дата) и производные
// представления - карта городов, паспорт по странам, маршрут и сводка.
//
// Основные возможности:
// - CRUD штампов с нормализацией стран и определением координат
// - Подсказка города и страны по координатам
// - Карта городов, паспорт, маршрут и уровень путешественника
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
