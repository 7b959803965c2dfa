package slotting

import "github.com/jhoicas/slotting-api/internal/domain/entity"

// Classifier evalúa cada ítem asignado contra su ubicación actual.
type Classifier struct {
	model     *ConstraintModel
	locations map[string]*entity.Location
	velocity  VelocitySet
}

// NewClassifier construye el clasificador sobre el índice de ubicaciones conocidas.
func NewClassifier(model *ConstraintModel, locations map[string]*entity.Location, velocity VelocitySet) *Classifier {
	return &Classifier{model: model, locations: locations, velocity: velocity}
}

// Evaluate devuelve las violaciones de item si ocupara loc.
func (c *Classifier) Evaluate(item *entity.Item, loc *entity.Location) ViolationSet {
	return ViolationSet{
		Temperature: !c.model.TemperatureCompatible(item, loc),
		Weight:      !c.model.WeightCompatible(item, loc),
		Congestion:  c.velocity.Has(item.ID) && c.model.IsCongestionZone(loc),
	}
}

// Classify recorre los ítems y evalúa los que la asignación ubica.
// Devuelve un conjunto (posiblemente vacío) por cada ítem asignado; los no asignados no aparecen.
func (c *Classifier) Classify(items []*entity.Item, asg *Assignment) map[string]ViolationSet {
	out := make(map[string]ViolationSet, len(items))
	for _, it := range items {
		locID, ok := asg.LocationOf(it.ID)
		if !ok {
			continue
		}
		loc, ok := c.locations[locID]
		if !ok {
			continue
		}
		out[it.ID] = c.Evaluate(it, loc)
	}
	return out
}
