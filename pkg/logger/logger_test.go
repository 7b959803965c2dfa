package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_EmiteJSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.Info().Str("plan_id", "p-1").Int("moves", 3).Msg("plan generado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "p-1", entry["plan_id"])
	assert.EqualValues(t, 3, entry["moves"])
	assert.Equal(t, "plan generado", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewWithWriter_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info().Msg("no debe aparecer")
	l.Debug().Msg("tampoco")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestChild_ConservaCamposFijos(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug")
	child := l.Child(l.With().Str("warehouse_id", "wh-1"))

	child.Debug().Msg("carga")
	assert.Contains(t, buf.String(), `"warehouse_id":"wh-1"`)
}

func TestNop_NoPanica(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Info().Str("k", "v").Msg("descartado")
		l.Warn().Msg("descartado")
	})
}

func TestParseLevel_DesconocidoEsInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("verbose").String())
	assert.Equal(t, "trace", parseLevel("trace").String())
	assert.Equal(t, "error", parseLevel("error").String())
}
