package model

// Category groups dishes on the card.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Dish is a single orderable item.
type Dish struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	CategoryID  *int64
	ImageURL    string
	Available   bool
	PrepMinutes int
}

// Menu is a fixed price bundle of dishes.
type Menu struct {
	ID          int64
	Name        string
	Description string
	FixedPrice  int64
	Active      bool
	DishIDs     []int64
}
