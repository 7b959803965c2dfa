package entity

import "time"

// Warehouse bodega cuyo layout de slots se optimiza.
// CongestionAislePrefix identifica el pasillo de alta congestión (resultado del análisis
// de tráfico de pickers); vacío si la bodega aún no lo tiene configurado.
type Warehouse struct {
	ID                    string
	CompanyID             string
	Name                  string
	CongestionAislePrefix string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
