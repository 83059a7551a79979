package dto

// CreateStampRequest - запрос на создание штампа
type CreateStampRequest struct {
	City     string   `json:"city" validate:"notblank,max=120"`
	Country  string   `json:"country" validate:"max=120"`
	Venue    string   `json:"venue" validate:"max=200"`
	Activity string   `json:"activity" validate:"max=2000"`
	Category string   `json:"category" validate:"max=40"`
	Date     string   `json:"date,omitempty" validate:"omitempty,stampdate"`
	Lat      *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng      *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	Image    string   `json:"image,omitempty" validate:"max=5000000"`
}

// UpdateStampRequest - запрос на редактирование штампа.
// Цвет и очки назначаются при создании и не редактируются.
type UpdateStampRequest struct {
	City     string   `json:"city" validate:"notblank,max=120"`
	Country  string   `json:"country" validate:"max=120"`
	Venue    string   `json:"venue" validate:"max=200"`
	Activity string   `json:"activity" validate:"max=2000"`
	Category string   `json:"category" validate:"max=40"`
	Date     string   `json:"date" validate:"omitempty,stampdate"`
	Lat      *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng      *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	Image    *string  `json:"image,omitempty" validate:"omitempty,max=5000000"`
}

// ReverseGeocodeRequest - запрос подсказки города по координатам
type ReverseGeocodeRequest struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

// PassportQuery - фильтры паспорта
type PassportQuery struct {
	Search   string
	Sort     string
	Category string
	// Cities - фильтры вида "COUNTRY:CITY"
	Cities []string
}
