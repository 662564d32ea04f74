package model

type TableStatus string

const (
	TableStatusFree     TableStatus = "libre"
	TableStatusOccupied TableStatus = "occupee"
	TableStatusReserved TableStatus = "reservee"
)

// Table is a physical restaurant table.
type Table struct {
	ID       int64
	Number   int
	Capacity int
	Status   TableStatus
	QRCode   string
}
