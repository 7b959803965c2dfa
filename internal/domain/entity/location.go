package entity

import "github.com/shopspring/decimal"

// Location representa un slot de almacenamiento con sus capacidades físicas.
// Estática durante una corrida de slotting. TempZone vacío = zona desconocida.
type Location struct {
	ID          string // slot_id, ej. "A01-A-01"
	CompanyID   string
	WarehouseID string
	AisleID     string
	TempZone    string
	MaxWeight   decimal.Decimal // kg
}
