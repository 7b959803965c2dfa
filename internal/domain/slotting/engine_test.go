package slotting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/slotting-api/internal/domain"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
	"github.com/jhoicas/slotting-api/internal/domain/slotting"
)

func newEngine(t *testing.T, topN int) *slotting.Engine {
	t.Helper()
	e, err := slotting.NewEngine(slotting.Config{CongestionAislePrefix: testCongestionPrefix, VelocityTopN: topN})
	require.NoError(t, err)
	return e
}

func finalLocation(t *testing.T, res *slotting.Result, itemID string) string {
	t.Helper()
	loc, _ := res.Assignment.LocationOf(itemID)
	return loc
}

func movesOf(res *slotting.Result, itemID string) []entity.Move {
	var out []entity.Move
	for _, m := range res.Moves {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out
}

// assertInvariants: sin doble ocupación y conservación pool ∪ ocupadas = todas.
func assertInvariants(t *testing.T, s slotting.Snapshot, res *slotting.Result) {
	t.Helper()
	assert.True(t, res.Assignment.Consistent())
	assert.Equal(t, len(s.Locations), res.Assignment.Occupied()+res.Pool.Len())

	seen := map[string]string{}
	for _, it := range s.Items {
		loc, ok := res.Assignment.LocationOf(it.ID)
		if !ok {
			continue
		}
		prev, dup := seen[loc]
		assert.False(t, dup, "slot %s ocupado por %s y %s", loc, prev, it.ID)
		seen[loc] = it.ID
		assert.False(t, res.Pool.Contains(loc), "slot ocupado %s no puede estar libre", loc)
	}
}

func TestNewEngine_ConfigInvalida(t *testing.T) {
	_, err := slotting.NewEngine(slotting.Config{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = slotting.NewEngine(slotting.Config{CongestionAislePrefix: "B", VelocityTopN: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Escenario 1: Frozen en slot Ambient del pasillo congestionado, alta velocidad.
func TestRun_TemperaturaYCongestion_DestinoFueraDeCongestion(t *testing.T) {
	s := slotting.Snapshot{
		Items: []*entity.Item{newItem("X1", 12, "Frozen", 50, "A01")},
		Locations: []*entity.Location{
			newLoc("A01", "B01", "Ambient", 100),
			newLoc("F01", "B02", "Frozen", 50), // ordena primero pero es zona de congestión
			newLoc("F02", "C01", "Frozen", 50),
		},
	}
	res, err := newEngine(t, 1).Run(s)
	require.NoError(t, err)

	assert.Equal(t, slotting.ViolationSet{Temperature: true, Congestion: true}, res.Initial["X1"])
	require.Len(t, res.Moves, 1)
	assert.Equal(t, entity.Move{
		Sequence:       1,
		ItemID:         "X1",
		FromLocationID: "A01",
		ToLocationID:   "F02",
		Score:          1050,
		Kinds:          []entity.ViolationKind{entity.ViolationTemperatureMismatch, entity.ViolationCongestionRisk},
	}, res.Moves[0])
	assert.True(t, res.Pool.Contains("A01"), "el slot de origen vuelve al pool")
	assertInvariants(t, s, res)
}

// Escenario 2: exceso de peso sin alta velocidad; la congestión no restringe el destino.
func TestRun_SoloPeso_IgnoraPreferenciaDeCongestion(t *testing.T) {
	s := slotting.Snapshot{
		Items: []*entity.Item{newItem("X2", 500, "Ambient", 0, "C04")},
		Locations: []*entity.Location{
			newLoc("B10", "B03", "Ambient", 600),
			newLoc("C04", "C02", "Ambient", 100),
			newLoc("C05", "C02", "Ambient", 200),
		},
	}
	res, err := newEngine(t, 10).Run(s)
	require.NoError(t, err)

	assert.Equal(t, slotting.ViolationSet{Weight: true}, res.Initial["X2"])
	require.Len(t, res.Moves, 1)
	assert.Equal(t, "B10", res.Moves[0].ToLocationID)
	assert.False(t, res.Moves[0].Relaxed)
	assertInvariants(t, s, res)
}

// Escenario 3: ningún slot libre cumple la temperatura.
func TestRun_ItemNoUbicable_ConservaUbicacionYNoAborta(t *testing.T) {
	s := slotting.Snapshot{
		Items: []*entity.Item{
			newItem("X3", 5, "Frozen", 0, "A01"),
			newItem("X9", 5, "Ambient", 0, "F01"),
		},
		Locations: []*entity.Location{
			newLoc("A01", "A01", "Ambient", 100),
			newLoc("A02", "A01", "Ambient", 100),
			newLoc("F01", "C01", "Chilled", 100),
		},
	}
	res, err := newEngine(t, 10).Run(s)
	require.NoError(t, err)

	require.Len(t, res.Unresolved, 1)
	assert.Equal(t, "X3", res.Unresolved[0].ItemID)
	assert.Equal(t, "A01", res.Unresolved[0].LocationID)
	assert.Equal(t, "A01", finalLocation(t, res, "X3"))
	assert.Empty(t, movesOf(res, "X3"))

	// El ítem siguiente se procesa igual.
	assert.Equal(t, "A02", finalLocation(t, res, "X9"))
	assert.True(t, res.Final["X3"].Temperature, "la violación sigue contando")
	assertInvariants(t, s, res)
}

// Escenario 4: dos candidatos compiten por el mismo slot libre; el de mayor score gana
// y el slot que libera queda disponible para el siguiente.
func TestRun_PrioridadYEncadenamiento(t *testing.T) {
	s := slotting.Snapshot{
		Items: []*entity.Item{
			newItem("X5", 5, "Ambient", 50, "B05"),
			newItem("X4", 5, "Chilled", 0, "A01"),
		},
		Locations: []*entity.Location{
			newLoc("A01", "A01", "Ambient", 100),
			newLoc("B05", "B01", "Ambient", 100),
			newLoc("Z01", "C01", "", 100),
		},
	}
	res, err := newEngine(t, 1).Run(s)
	require.NoError(t, err)

	require.Len(t, res.Candidates, 2)
	assert.Equal(t, "X4", res.Candidates[0].Item.ID)
	assert.Equal(t, 1000, res.Candidates[0].Score)
	assert.Equal(t, 50, res.Candidates[1].Score)

	require.Len(t, res.Moves, 2)
	assert.Equal(t, "X4", res.Moves[0].ItemID)
	assert.Equal(t, "Z01", res.Moves[0].ToLocationID)
	assert.Equal(t, "X5", res.Moves[1].ItemID)
	assert.Equal(t, "A01", res.Moves[1].ToLocationID, "X5 toma el slot que X4 liberó")
	assert.Equal(t, 1, res.Pool.Len())
	assert.True(t, res.Pool.Contains("B05"))
	assertInvariants(t, s, res)
}

// Restricción dura + congestión: si no hay destino fuera del pasillo, se relaja la preferencia.
func TestRun_RelajacionSoloParaRestriccionesDuras(t *testing.T) {
	s := slotting.Snapshot{
		Items: []*entity.Item{
			newItem("HARD", 5, "Frozen", 80, "B01"),
			newItem("SOFT", 5, "Ambient", 60, "B02"),
		},
		Locations: []*entity.Location{
			newLoc("B01", "B01", "Ambient", 100),
			newLoc("B02", "B01", "Ambient", 100),
			newLoc("B03", "B02", "Frozen", 100),
			newLoc("B04", "B02", "Ambient", 100),
		},
	}
	res, err := newEngine(t, 2).Run(s)
	require.NoError(t, err)

	require.Len(t, res.Moves, 1)
	assert.Equal(t, "HARD", res.Moves[0].ItemID)
	assert.Equal(t, "B03", res.Moves[0].ToLocationID)
	assert.True(t, res.Moves[0].Relaxed)
	assert.False(t, res.Final["HARD"].Temperature)
	assert.True(t, res.Final["HARD"].Congestion, "sigue en zona de congestión, pero la restricción dura quedó resuelta")

	require.Len(t, res.Unresolved, 1)
	assert.Equal(t, "SOFT", res.Unresolved[0].ItemID, "una preferencia blanda nunca se relaja")
	assert.Equal(t, "B02", finalLocation(t, res, "SOFT"))
	assertInvariants(t, s, res)
}

func TestRun_AdvertenciasDeCalidadDeDatos(t *testing.T) {
	s := slotting.Snapshot{
		Items: []*entity.Item{
			newItem("GHOST", 5, "Ambient", 0, "X99"),
			newItem("FIRST", 5, "Ambient", 0, "A01"),
			newItem("SECOND", 5, "Ambient", 0, "A01"),
			newItem("NONE", 5, "Ambient", 0, ""),
		},
		Locations: []*entity.Location{
			newLoc("A01", "A01", "Ambient", 100),
			newLoc("A02", "A01", "Ambient", 100),
		},
	}
	res, err := newEngine(t, 0).Run(s)
	require.NoError(t, err)

	require.Len(t, res.Warnings, 2)
	assert.Equal(t, slotting.WarningMissingLocation, res.Warnings[0].Code)
	assert.Equal(t, "GHOST", res.Warnings[0].ItemID)
	assert.Equal(t, slotting.WarningDuplicateOccupancy, res.Warnings[1].Code)
	assert.Equal(t, "FIRST", res.Warnings[1].ItemID)
	assert.Equal(t, "A01", res.Warnings[1].LocationID, "la advertencia conserva el slot original del desplazado")

	assert.Empty(t, finalLocation(t, res, "FIRST"))
	assert.Equal(t, "A01", finalLocation(t, res, "SECOND"))
	assert.Empty(t, finalLocation(t, res, "GHOST"))
	assert.Empty(t, res.Candidates)
	assert.True(t, res.Pool.Contains("A02"))
	assertInvariants(t, s, res)
}

func TestRun_SnapshotInvalido(t *testing.T) {
	e := newEngine(t, 5)
	cases := map[string]slotting.Snapshot{
		"ítem duplicado": {
			Items:     []*entity.Item{newItem("S1", 1, "", 0, ""), newItem("S1", 1, "", 0, "")},
			Locations: []*entity.Location{newLoc("A01", "A", "", 1)},
		},
		"slot duplicado": {
			Locations: []*entity.Location{newLoc("A01", "A", "", 1), newLoc("A01", "A", "", 1)},
		},
		"pedidos negativos": {
			Items: []*entity.Item{newItem("S1", 1, "", -3, "")},
		},
		"peso negativo": {
			Items: []*entity.Item{newItem("S1", -1, "", 0, "")},
		},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.Run(s)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// warehouseSnapshot bodega mediana con todos los tipos de violación mezclados.
func warehouseSnapshot() slotting.Snapshot {
	return slotting.Snapshot{
		Items: []*entity.Item{
			newItem("S01", 12, "Frozen", 120, "B01-A-01"),
			newItem("S02", 500, "Ambient", 3, "C01-A-01"),
			newItem("S03", 8, "Chilled", 95, "B01-A-02"),
			newItem("S04", 4, "Ambient", 200, "B02-A-01"),
			newItem("S05", 4, "Ambient", 150, "B02-A-02"),
			newItem("S06", 30, "Frozen", 0, "A01-A-01"),
			newItem("S07", 2, "Chilled", 10, "D01-A-01"),
			newItem("S08", 2, "Ambient", 0, ""),
		},
		Locations: []*entity.Location{
			newLoc("A01-A-01", "A01", "Ambient", 50),
			newLoc("A01-A-02", "A01", "Frozen", 50),
			newLoc("B01-A-01", "B01", "Ambient", 50),
			newLoc("B01-A-02", "B01", "Ambient", 50),
			newLoc("B02-A-01", "B02", "Ambient", 50),
			newLoc("B02-A-02", "B02", "Ambient", 50),
			newLoc("C01-A-01", "C01", "Ambient", 100),
			newLoc("C01-A-02", "C01", "Ambient", 1000),
			newLoc("C02-A-01", "C02", "Chilled", 50),
			newLoc("D01-A-01", "D01", "Chilled", 50),
			newLoc("D01-A-02", "D01", "Ambient", 50),
		},
	}
}

func TestRun_Determinismo(t *testing.T) {
	e := newEngine(t, 4)
	first, err := e.PlanSnapshot(warehouseSnapshot(), 5)
	require.NoError(t, err)
	second, err := e.PlanSnapshot(warehouseSnapshot(), 5)
	require.NoError(t, err)

	assert.Equal(t, first.Moves, second.Moves)
	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestRun_PropiedadesGlobales(t *testing.T) {
	s := warehouseSnapshot()
	res, err := newEngine(t, 4).Run(s)
	require.NoError(t, err)
	assertInvariants(t, s, res)

	initial := slotting.CountViolations(res.Initial)
	final := slotting.CountViolations(res.Final)
	assert.LessOrEqual(t, final.Hard(), initial.Hard(), "las violaciones duras nunca aumentan")

	for _, m := range res.Moves {
		v := res.Final[m.ItemID]
		assert.False(t, v.Hard(), "ítem movido %s no puede quedar con violación dura", m.ItemID)
	}
}

// Escenario 5: correr de nuevo sobre el plan final no produce candidatos para ítems resueltos.
func TestRun_ReejecucionSinOscilacion(t *testing.T) {
	s := warehouseSnapshot()
	e := newEngine(t, 4)
	plan, err := e.PlanSnapshot(s, 0)
	require.NoError(t, err)

	next := slotting.Snapshot{Locations: s.Locations}
	for i, it := range s.Items {
		moved := *it
		moved.LocationID = plan.Entries[i].LocationID
		next.Items = append(next.Items, &moved)
	}
	res, err := e.Run(next)
	require.NoError(t, err)

	resolved := map[string]bool{}
	for _, m := range plan.Moves {
		resolved[m.ItemID] = !m.Relaxed
	}
	for _, c := range res.Candidates {
		assert.False(t, resolved[c.Item.ID], "ítem resuelto %s vuelve a ser candidato", c.Item.ID)
	}
}
