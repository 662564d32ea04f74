package dto

// GlobalStatsResponse holds the headline indicators.
type GlobalStatsResponse struct {
	Revenue       int64   `json:"chiffre_affaires"`
	PaidOrders    int64   `json:"commandes_payees"`
	AverageRating float64 `json:"note_moyenne"`
}

// DishPopularityResponse counts units sold for a dish.
type DishPopularityResponse struct {
	DishID   int64  `json:"plat_id"`
	Name     string `json:"nom"`
	Quantity int64  `json:"quantite"`
}

// DailyRevenueResponse is the revenue of one day.
type DailyRevenueResponse struct {
	Day     string `json:"jour"`
	Revenue int64  `json:"chiffre_affaires"`
}

// DashboardResponse bundles every statistic.
type DashboardResponse struct {
	Global    GlobalStatsResponse      `json:"global"`
	TopDishes []DishPopularityResponse `json:"plats_populaires"`
	Revenue   []DailyRevenueResponse   `json:"revenus_journaliers"`
}
