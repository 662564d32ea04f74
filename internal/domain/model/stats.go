package model

// GlobalStats aggregates headline indicators.
type GlobalStats struct {
	Revenue       int64
	PaidOrders    int64
	AverageRating float64
}

// DishPopularity counts units sold for a dish.
type DishPopularity struct {
	DishID   int64
	Name     string
	Quantity int64
}

// DailyRevenue is the succeeded payment total for one day.
type DailyRevenue struct {
	Day     string
	Revenue int64
}

// Dashboard bundles every statistics view.
type Dashboard struct {
	Global    GlobalStats
	TopDishes []DishPopularity
	Revenue   []DailyRevenue
}
