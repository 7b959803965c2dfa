package slotting

import (
	"fmt"

	"github.com/jhoicas/slotting-api/internal/domain"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
)

// Config parámetros de una corrida.
type Config struct {
	CongestionAislePrefix string // obligatorio
	VelocityTopN          int    // top-N ítems por pedidos que deben evitar el pasillo de congestión
}

// Snapshot datos validados sobre los que corre el motor. El motor no modifica los ítems:
// la ubicación viva de cada ítem vive en la Assignment del Result.
type Snapshot struct {
	Items     []*entity.Item
	Locations []*entity.Location
}

// WarningCode tipo de advertencia de calidad de datos.
type WarningCode string

const (
	// WarningMissingLocation el ítem referencia un slot que no existe; se trata como sin ubicación.
	WarningMissingLocation WarningCode = "MISSING_LOCATION"
	// WarningDuplicateOccupancy dos ítems referencian el mismo slot; lo conserva el último
	// del maestro y la advertencia nombra al desplazado con su slot original.
	WarningDuplicateOccupancy WarningCode = "DUPLICATE_OCCUPANCY"
)

// Warning advertencia de calidad de datos (no bloquea la corrida).
type Warning struct {
	Code       WarningCode
	ItemID     string
	LocationID string
	Message    string
}

// Unresolved ítem que no pudo reubicarse; conserva su ubicación original.
type Unresolved struct {
	ItemID     string
	LocationID string
	Kinds      []entity.ViolationKind
	Score      int
	Reason     string
}

// Result estado final de la corrida.
type Result struct {
	Assignment *Assignment
	Pool       *Pool
	Velocity   VelocitySet
	Candidates []Candidate
	Initial    map[string]ViolationSet // violaciones de la asignación inicial
	Final      map[string]ViolationSet // reclasificación de la asignación final
	Moves      []entity.Move
	Unresolved []Unresolved
	Warnings   []Warning
}

// Engine motor voraz de reasignación. Es dueño exclusivo de Assignment y Pool durante Run.
type Engine struct {
	cfg   Config
	model *ConstraintModel
}

// NewEngine valida la configuración y construye el motor.
func NewEngine(cfg Config) (*Engine, error) {
	model, err := NewConstraintModel(cfg.CongestionAislePrefix)
	if err != nil {
		return nil, fmt.Errorf("prefijo de pasillo de congestión requerido: %w", err)
	}
	if cfg.VelocityTopN < 0 {
		return nil, fmt.Errorf("velocity top-N negativo: %w", domain.ErrInvalidInput)
	}
	return &Engine{cfg: cfg, model: model}, nil
}

// Model modelo de restricciones usado por el motor.
func (e *Engine) Model() *ConstraintModel { return e.model }

// Run ejecuta una única pasada sobre los candidatos en orden de prioridad.
// Solo retorna error por datos estructuralmente inválidos o por un invariante roto;
// los ítems no ubicables se acumulan en Result.Unresolved.
func (e *Engine) Run(s Snapshot) (*Result, error) {
	locIndex, err := validateSnapshot(s)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Assignment: NewAssignment(),
		Pool:       NewPool(s.Locations),
	}
	if err := e.loadAssignment(s, locIndex, res); err != nil {
		return nil, err
	}

	res.Velocity = TopVelocity(s.Items, e.cfg.VelocityTopN)
	classifier := NewClassifier(e.model, locIndex, res.Velocity)
	res.Initial = classifier.Classify(s.Items, res.Assignment)
	res.Candidates = Rank(s.Items, res.Initial)

	for _, c := range res.Candidates {
		if err := e.relocate(res, c, locIndex); err != nil {
			return nil, err
		}
	}

	res.Final = classifier.Classify(s.Items, res.Assignment)

	if res.Assignment.Occupied()+res.Pool.Len() != len(s.Locations) || !res.Assignment.Consistent() {
		return nil, fmt.Errorf("%w: ocupadas=%d libres=%d total=%d",
			domain.ErrInvariantViolation, res.Assignment.Occupied(), res.Pool.Len(), len(s.Locations))
	}
	return res, nil
}

// loadAssignment construye la asignación inicial y libera en el pool los slots no referenciados.
func (e *Engine) loadAssignment(s Snapshot, locIndex map[string]*entity.Location, res *Result) error {
	for _, it := range s.Items {
		if !it.Assigned() {
			continue
		}
		if _, ok := locIndex[it.LocationID]; !ok {
			res.Warnings = append(res.Warnings, Warning{
				Code:       WarningMissingLocation,
				ItemID:     it.ID,
				LocationID: it.LocationID,
				Message:    "el slot referenciado no existe; se trata como sin ubicación",
			})
			continue
		}
		if other, taken := res.Assignment.ItemAt(it.LocationID); taken {
			res.Assignment.Release(other)
			res.Warnings = append(res.Warnings, Warning{
				Code:       WarningDuplicateOccupancy,
				ItemID:     other,
				LocationID: it.LocationID,
				Message:    "slot reasignado a " + it.ID + " (última fila del maestro); " + other + " queda sin ubicación",
			})
		}
		if err := res.Assignment.Assign(it.ID, it.LocationID); err != nil {
			return err
		}
	}
	for _, loc := range res.Pool.locations {
		if _, occupied := res.Assignment.ItemAt(loc.ID); occupied {
			continue
		}
		if err := res.Pool.Add(loc); err != nil {
			return err
		}
	}
	return nil
}

// relocate busca destino para un candidato y, si lo encuentra, compromete el movimiento.
func (e *Engine) relocate(res *Result, c Candidate, locIndex map[string]*entity.Location) error {
	item := c.Item
	avoid := res.Velocity.Has(item.ID)

	dest, ok := res.Pool.First(func(loc *entity.Location) bool {
		return e.model.FullyCompatible(item, loc, avoid)
	})
	relaxed := false
	if !ok && c.Hard() {
		// Una restricción dura se resuelve aunque el ítem quede en el pasillo de congestión.
		dest, ok = res.Pool.First(func(loc *entity.Location) bool {
			return e.model.MinimallyCompatible(item, loc)
		})
		relaxed = ok
	}

	current, _ := res.Assignment.LocationOf(item.ID)
	if !ok {
		reason := "sin slot libre compatible en temperatura y peso"
		if !c.Hard() {
			reason = "sin slot libre compatible fuera del pasillo de congestión"
		}
		res.Unresolved = append(res.Unresolved, Unresolved{
			ItemID:     item.ID,
			LocationID: current,
			Kinds:      c.Violations.Kinds(),
			Score:      c.Score,
			Reason:     reason,
		})
		return nil
	}

	if old, held := res.Assignment.Release(item.ID); held {
		if err := res.Pool.Add(locIndex[old]); err != nil {
			return err
		}
	}
	if err := res.Pool.Remove(dest.ID); err != nil {
		return err
	}
	if err := res.Assignment.Assign(item.ID, dest.ID); err != nil {
		return err
	}
	res.Moves = append(res.Moves, entity.Move{
		Sequence:       len(res.Moves) + 1,
		ItemID:         item.ID,
		FromLocationID: current,
		ToLocationID:   dest.ID,
		Score:          c.Score,
		Kinds:          c.Violations.Kinds(),
		Relaxed:        relaxed,
	})
	return nil
}

func validateSnapshot(s Snapshot) (map[string]*entity.Location, error) {
	locIndex := make(map[string]*entity.Location, len(s.Locations))
	for _, loc := range s.Locations {
		if loc == nil || loc.ID == "" {
			return nil, fmt.Errorf("slot sin ID: %w", domain.ErrInvalidInput)
		}
		if _, dup := locIndex[loc.ID]; dup {
			return nil, fmt.Errorf("slot duplicado %s: %w", loc.ID, domain.ErrInvalidInput)
		}
		locIndex[loc.ID] = loc
	}
	seen := make(map[string]struct{}, len(s.Items))
	for _, it := range s.Items {
		if it == nil || it.ID == "" {
			return nil, fmt.Errorf("ítem sin ID: %w", domain.ErrInvalidInput)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("ítem duplicado %s: %w", it.ID, domain.ErrInvalidInput)
		}
		seen[it.ID] = struct{}{}
		if it.OrderCount < 0 {
			return nil, fmt.Errorf("ítem %s con pedidos negativos: %w", it.ID, domain.ErrInvalidInput)
		}
		if it.Weight.IsNegative() {
			return nil, fmt.Errorf("ítem %s con peso negativo: %w", it.ID, domain.ErrInvalidInput)
		}
	}
	return locIndex, nil
}
