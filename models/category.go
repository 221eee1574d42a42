package models

// Категории транзакций — закрытый набор значений.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryHousing       = "Housing"
	CategoryEntertainment = "Entertainment"
	CategoryOther         = "Other"
)

var categories = map[string]bool{
	CategoryFood:          true,
	CategoryTransport:     true,
	CategoryHousing:       true,
	CategoryEntertainment: true,
	CategoryOther:         true,
}

func ValidCategory(name string) bool {
	return categories[name]
}
