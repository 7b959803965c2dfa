package csvstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/slotting-api/internal/domain"
	"github.com/jhoicas/slotting-api/internal/domain/entity"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestItemRepo_ColumnasPorNombreYNulos(t *testing.T) {
	// Orden de columnas distinto al canónico, BOM y nulos estilo pandas.
	path := writeFile(t, "sku_master.csv", "\ufeffcurrent_slot,sku_id,weight_kg,temp_req,category\n"+
		" A01-A-01 , SKU-1 ,12.5,Frozen,Helados\n"+
		"nan,SKU-2,3,Ambient,\n"+
		"None,SKU-3,0.75,NaN,Snacks\n"+
		",,,,\n")

	items, err := NewItemRepository(path, EncodingUTF8).ListByWarehouse(context.Background(), "c1", "w1")
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "SKU-1", items[0].ID)
	assert.Equal(t, "A01-A-01", items[0].LocationID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(items[0].Weight))
	assert.Equal(t, "Frozen", items[0].TempReq)
	assert.Equal(t, "Helados", items[0].Category)
	assert.Equal(t, "c1", items[0].CompanyID)
	assert.Equal(t, "w1", items[0].WarehouseID)

	assert.False(t, items[1].Assigned())
	assert.False(t, items[2].Assigned())
	assert.Empty(t, items[2].TempReq)
}

func TestItemRepo_Errores(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"falta columna", "sku_id,temp_req\nS1,Ambient\n"},
		{"peso inválido", "sku_id,weight_kg,temp_req\nS1,pesado,Ambient\n"},
		{"peso vacío", "sku_id,weight_kg,temp_req\nS1,,Ambient\n"},
		{"sku vacío", "sku_id,weight_kg,temp_req\n,1,Ambient\n"},
		{"archivo vacío", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "items.csv", tt.content)
			_, err := NewItemRepository(path, EncodingUTF8).ListByWarehouse(context.Background(), "", "")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestItemRepo_ArchivoInexistente(t *testing.T) {
	_, err := NewItemRepository(filepath.Join(t.TempDir(), "no.csv"), EncodingUTF8).
		ListByWarehouse(context.Background(), "", "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocationRepo(t *testing.T) {
	path := writeFile(t, "constraints.csv", "slot_id,aisle_id,temp_zone,max_weight_kg\n"+
		"A01-A-01,A01,Ambient,100\n"+
		"B02-C-03,B02,nan,25.5\n")

	locs, err := NewLocationRepository(path, EncodingUTF8).ListByWarehouse(context.Background(), "c1", "w1")
	require.NoError(t, err)
	require.Len(t, locs, 2)

	assert.Equal(t, "A01-A-01", locs[0].ID)
	assert.Equal(t, "A01", locs[0].AisleID)
	assert.Equal(t, "Ambient", locs[0].TempZone)
	assert.Equal(t, "w1", locs[0].WarehouseID)
	assert.True(t, decimal.NewFromInt(100).Equal(locs[0].MaxWeight))
	assert.Equal(t, "B02", locs[1].AisleID)
	assert.Empty(t, locs[1].TempZone, "nan = zona desconocida")
	assert.True(t, decimal.RequireFromString("25.5").Equal(locs[1].MaxWeight))
}

func TestLocationRepo_FaltaCapacidad(t *testing.T) {
	path := writeFile(t, "constraints.csv", "slot_id,aisle_id,temp_zone\nA01,A01,Ambient\n")
	_, err := NewLocationRepository(path, EncodingUTF8).ListByWarehouse(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderHistoryRepo_CuentaPorSKU(t *testing.T) {
	path := writeFile(t, "orders.csv", "order_id,sku_id,qty\n"+
		"O1,S1,2\nO1,S2,1\nO2,S1,5\nO3,nan,1\nO4, S1 ,1\n")

	counts, err := NewOrderHistoryRepository(path, EncodingUTF8).CountOrdersBySKU(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"S1": 3, "S2": 1}, counts)
}

func TestLatin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("sku_id,weight_kg,temp_req,category\nS1,1,Ambient,Lácteos\n")
	require.NoError(t, err)
	path := writeFile(t, "latin1.csv", raw)

	items, err := NewItemRepository(path, EncodingLatin1).ListByWarehouse(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Lácteos", items[0].Category)
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{"": EncodingUTF8, "UTF-8": EncodingUTF8, "latin1": EncodingLatin1, "ISO-8859-1": EncodingLatin1} {
		got, err := ParseEncoding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseEncoding("utf-16")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewOrderHistoryRepository("irrelevante.csv", EncodingUTF8).CountOrdersBySKU(ctx, "", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanWriter_DosColumnas(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlanWriter().WritePlan(&buf, []entity.PlanEntry{
		{ItemID: "S1", LocationID: "A01-A-01"},
		{ItemID: "S2"},
		{ItemID: "S,3", LocationID: "B01"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sku_id,Bin_ID\nS1,A01-A-01\nS2,\n\"S,3\",B01\n", buf.String())
}

func TestPlanWriter_ArchivoYRelectura(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final_slotting_plan.csv")
	entries := []entity.PlanEntry{{ItemID: "S1", LocationID: "F02"}, {ItemID: "S2"}}
	require.NoError(t, NewPlanWriter().WritePlanFile(path, entries))

	tbl, err := readTable(path, EncodingUTF8)
	require.NoError(t, err)
	sku, err := tbl.column("sku_id")
	require.NoError(t, err)
	bin, err := tbl.column("Bin_ID")
	require.NoError(t, err)
	require.Len(t, tbl.rows, 2)
	assert.Equal(t, "S1", cell(tbl.rows[0], sku))
	assert.Equal(t, "F02", cell(tbl.rows[0], bin))
	assert.Equal(t, "", cell(tbl.rows[1], bin))
}
