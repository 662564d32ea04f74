package dto

// CategoryRequest creates or replaces a category.
type CategoryRequest struct {
	Name        string `json:"nom" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse describes a category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"nom"`
	Description string `json:"description"`
}

// DishRequest creates or replaces a dish.
type DishRequest struct {
	Name        string `json:"nom" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"prix"`
	CategoryID  *int64 `json:"categorie_id"`
	ImageURL    string `json:"image_url"`
	Available   *bool  `json:"disponible"`
	PrepMinutes int    `json:"temps_preparation"`
}

// DishResponse describes a dish.
type DishResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"nom"`
	Description string `json:"description"`
	Price       int64  `json:"prix"`
	CategoryID  *int64 `json:"categorie_id"`
	ImageURL    string `json:"image_url,omitempty"`
	Available   bool   `json:"disponible"`
	PrepMinutes int    `json:"temps_preparation"`
}

// MenuRequest creates or replaces a menu bundle.
type MenuRequest struct {
	Name        string  `json:"nom" binding:"required"`
	Description string  `json:"description"`
	FixedPrice  int64   `json:"prix_fixe"`
	Active      *bool   `json:"actif"`
	DishIDs     []int64 `json:"plats"`
}

// MenuResponse describes a menu bundle.
type MenuResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nom"`
	Description string  `json:"description"`
	FixedPrice  int64   `json:"prix_fixe"`
	Active      bool    `json:"actif"`
	DishIDs     []int64 `json:"plats"`
}
