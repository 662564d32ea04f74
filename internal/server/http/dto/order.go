package dto

import "time"

// LineRequest adds a dish or a menu to an order. Exactly one of DishID and
// MenuID must be set; a zero unit price means the catalog price.
type LineRequest struct {
	DishID    *int64 `json:"plat_id"`
	MenuID    *int64 `json:"menu_id"`
	Quantity  int    `json:"quantite" binding:"required"`
	UnitPrice int64  `json:"prix_unitaire"`
	Notes     string `json:"notes"`
}

// OrderRequest opens an order. Staff may place it on behalf of ClientID.
type OrderRequest struct {
	ClientID int64         `json:"client_id"`
	TableID  int64         `json:"table_id" binding:"required"`
	Type     string        `json:"type"`
	Notes    string        `json:"notes"`
	Lines    []LineRequest `json:"lignes"`
}

// OrderUpdateRequest edits descriptive order fields.
type OrderUpdateRequest struct {
	ClientID *int64  `json:"client_id"`
	TableID  *int64  `json:"table_id"`
	ServerID *int64  `json:"serveur_id"`
	Type     *string `json:"type"`
	Notes    *string `json:"notes"`
}

// LineResponse describes an order line.
type LineResponse struct {
	ID        int64  `json:"id"`
	DishID    *int64 `json:"plat_id,omitempty"`
	MenuID    *int64 `json:"menu_id,omitempty"`
	Quantity  int    `json:"quantite"`
	UnitPrice int64  `json:"prix_unitaire"`
	Subtotal  int64  `json:"sous_total"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"statut"`
}

// OrderResponse describes an order with its lines.
type OrderResponse struct {
	ID        int64          `json:"id"`
	ClientID  int64          `json:"client_id"`
	TableID   int64          `json:"table_id"`
	ServerID  *int64         `json:"serveur_id,omitempty"`
	CookID    *int64         `json:"cuisinier_id,omitempty"`
	Status    string         `json:"statut"`
	Total     int64          `json:"montant_total"`
	Type      string         `json:"type,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Lines     []LineResponse `json:"lignes,omitempty"`
}
