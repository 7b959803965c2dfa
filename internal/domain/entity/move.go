package entity

// Move registra un movimiento comprometido por el motor: Item → ubicación destino.
// Los movimientos solo se agregan, nunca se revisan.
type Move struct {
	Sequence       int // orden de commit, 1 = primer movimiento (mayor prioridad)
	ItemID         string
	FromLocationID string // vacío si el ítem no tenía ubicación
	ToLocationID   string
	Score          int
	Kinds          []ViolationKind
	Relaxed        bool // se descartó la preferencia de congestión para resolver una restricción dura
}
