package dto

// TableRequest creates or replaces a table.
type TableRequest struct {
	Number   int    `json:"numero" binding:"required"`
	Capacity int    `json:"capacite" binding:"required"`
	Status   string `json:"statut"`
}

// TableResponse describes a table.
type TableResponse struct {
	ID       int64  `json:"id"`
	Number   int    `json:"numero"`
	Capacity int    `json:"capacite"`
	Status   string `json:"statut"`
	QRCode   string `json:"qr_code"`
}
