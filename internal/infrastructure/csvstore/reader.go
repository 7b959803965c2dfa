// Package csvstore implementa los puertos de lectura del snapshot de slotting sobre los CSV
// ya limpiados (sku_master, warehouse_constraints, order_history) y la escritura del plan final.
package csvstore

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/slotting-api/internal/domain"
)

// Encoding codificación de los archivos de entrada.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin1"
)

// ParseEncoding normaliza el valor de configuración; vacío = UTF-8.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin1", "latin-1", "iso-8859-1":
		return EncodingLatin1, nil
	}
	return "", fmt.Errorf("encoding %q: %w", s, domain.ErrInvalidInput)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// table CSV leído con su índice de columnas por nombre de cabecera.
type table struct {
	path   string
	header map[string]int
	rows   [][]string
}

// readTable lee el archivo completo. Las columnas se ubican por nombre (sin distinguir
// mayúsculas ni espacios); el orden en el archivo es libre.
func readTable(path string, enc Encoding) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if enc == EncodingLatin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	names, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s vacío: %w", path, domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("leer cabecera de %s: %w", path, err)
	}
	t := &table{path: path, header: make(map[string]int, len(names))}
	for i, n := range names {
		t.header[normalizeHeader(n)] = i
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", path, err)
		}
		if blank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// column índice de una columna obligatoria.
func (t *table) column(name string) (int, error) {
	i, ok := t.header[normalizeHeader(name)]
	if !ok {
		return 0, fmt.Errorf("%s: falta la columna %q: %w", t.path, name, domain.ErrInvalidInput)
	}
	return i, nil
}

// optional índice de una columna opcional; -1 si no existe.
func (t *table) optional(name string) int {
	if i, ok := t.header[normalizeHeader(name)]; ok {
		return i
	}
	return -1
}

// cell valor recortado de la columna i; vacío si la fila es más corta.
func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// unset reconoce los nulos que dejan los scripts de limpieza al serializar con pandas.
func unset(s string) bool {
	switch s {
	case "", "nan", "NaN", "None":
		return true
	}
	return false
}

// optionalCell como cell, pero devuelve vacío para los marcadores de nulo.
func optionalCell(rec []string, i int) string {
	v := cell(rec, i)
	if unset(v) {
		return ""
	}
	return v
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
