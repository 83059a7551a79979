package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Состояние сервиса",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/v1/stamps": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stamps"],
                "summary": "Список штампов",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StampListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Stamps"],
                "summary": "Создание штампа",
                "parameters": [
                    {"description": "Новый штамп", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateStampRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Stamp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/stamps/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stamps"],
                "summary": "Получение штампа по ID",
                "parameters": [{"type": "string", "description": "ID штампа", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Stamp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Stamps"],
                "summary": "Обновление штампа",
                "parameters": [
                    {"type": "string", "description": "ID штампа", "name": "id", "in": "path", "required": true},
                    {"description": "Поля штампа", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateStampRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Stamp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Stamps"],
                "summary": "Удаление штампа",
                "parameters": [{"type": "string", "description": "ID штампа", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/stamps/{id}/image": {
            "delete": {
                "tags": ["Stamps"],
                "summary": "Удаление изображения штампа",
                "parameters": [{"type": "string", "description": "ID штампа", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/geocode/reverse": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Geocode"],
                "summary": "Обратное геокодирование",
                "parameters": [
                    {"description": "Координаты точки", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ReverseGeocodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.LocationSuggestion"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/ledger/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Ledger"],
                "summary": "Сводка журнала",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/api/v1/ledger/hubs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Ledger"],
                "summary": "Города на карте",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/api/v1/ledger/passport": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Ledger"],
                "summary": "Паспорт по странам",
                "parameters": [
                    {"type": "string", "description": "Подстрока страны или города", "name": "q", "in": "query"},
                    {"type": "string", "default": "ALPHA", "description": "Порядок стран (ALPHA, RECENT)", "name": "sort", "in": "query"},
                    {"type": "string", "description": "Категория (ALL - без фильтра)", "name": "category", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Фильтр городов COUNTRY:CITY", "name": "city", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/api/v1/ledger/route": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Ledger"],
                "summary": "Маршрут путешествий",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        }
    },
    "definitions": {
        "domain.Stamp": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "city": {"type": "string"},
                "country": {"type": "string"},
                "country_raw": {"type": "string"},
                "venue": {"type": "string"},
                "activity": {"type": "string"},
                "category": {"type": "string"},
                "date": {"type": "string", "example": "2024-03-01"},
                "created_at": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "color": {"type": "string"},
                "image": {"type": "string"},
                "points": {"type": "integer"}
            }
        },
        "domain.LocationSuggestion": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "country": {"type": "string"}
            }
        },
        "dto.CreateStampRequest": {
            "type": "object",
            "required": ["city"],
            "properties": {
                "city": {"type": "string", "maxLength": 120},
                "country": {"type": "string", "maxLength": 120},
                "venue": {"type": "string", "maxLength": 200},
                "activity": {"type": "string", "maxLength": 2000},
                "category": {"type": "string", "maxLength": 40},
                "date": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "image": {"type": "string"}
            }
        },
        "dto.UpdateStampRequest": {
            "type": "object",
            "required": ["city"],
            "properties": {
                "city": {"type": "string", "maxLength": 120},
                "country": {"type": "string", "maxLength": 120},
                "venue": {"type": "string", "maxLength": 200},
                "activity": {"type": "string", "maxLength": 2000},
                "category": {"type": "string", "maxLength": 40},
                "date": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "image": {"type": "string"}
            }
        },
        "dto.ReverseGeocodeRequest": {
            "type": "object",
            "required": ["lat", "lng"],
            "properties": {
                "lat": {"type": "number"},
                "lng": {"type": "number"}
            }
        },
        "dto.StampListResponse": {
            "type": "object",
            "properties": {
                "stamps": {"type": "array", "items": {"$ref": "#/definitions/domain.Stamp"}},
                "total": {"type": "integer"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Travel Ledger API",
	Description:      "Журнал путешествий: штампы и производные представления (карта, паспорт, маршрут, сводка).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
