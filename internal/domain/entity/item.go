package entity

import "github.com/shopspring/decimal"

// Item representa un SKU del maestro de ítems de una bodega, ya validado aguas arriba.
// LocationID vacío significa que el ítem no tiene ubicación asignada.
type Item struct {
	ID          string // sku_id, único por bodega
	CompanyID   string
	WarehouseID string
	Category    string
	Weight      decimal.Decimal // kg
	TempReq     string          // clase de temperatura requerida (Ambient, Chilled, Frozen...)
	OrderCount  int             // pedidos históricos (velocidad), >= 0
	LocationID  string
}

// Assigned indica si el ítem referencia una ubicación.
func (i *Item) Assigned() bool {
	return i.LocationID != ""
}
