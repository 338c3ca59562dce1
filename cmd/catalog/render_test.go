package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"codeberg.org/algorave/errhandler/presets"
	"codeberg.org/algorave/errhandler/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presetRegistry() *registry.Registry {
	reg := registry.New()
	presets.Register(reg)
	return reg
}

func TestNewDocument(t *testing.T) {
	doc := newDocument(presetRegistry())

	require.Len(t, doc.Variants, len(presets.Definitions()))
	require.Len(t, doc.Wraps, len(presets.Rules()))

	byName := map[string]entry{}
	for _, e := range doc.Variants {
		byName[e.Name] = e
	}

	assert.Equal(t, "HttpError", byName["NotFound"].Parent)
	assert.Equal(t, 404, byName["NotFound"].Status)
	assert.Equal(t, "info", byName["NotFound"].Severity)
	assert.Empty(t, byName["CustomError"].Parent)
	assert.Equal(t, "database operation failed", byName["DatabaseError"].PublicMessage)
}

func TestMarkdown(t *testing.T) {
	md := markdown(newDocument(presetRegistry()))

	assert.True(t, strings.HasPrefix(md, "# Error catalog\n"))
	assert.Contains(t, md, "| NotFound | HttpError | info | 404 Not Found | - |")
	assert.Contains(t, md, "| `*github.com/jackc/pgx/v5/pgconn.PgError` | DatabaseError |")
	assert.Contains(t, md, "`UnknownError`")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, newDocument(presetRegistry())))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Variants, len(presets.Definitions()))
}

func TestRenderTerminal(t *testing.T) {
	out, err := renderTerminal("# Error catalog\n\n| a | b |\n|---|---|\n| 1 | 2 |\n", 80)
	require.NoError(t, err)

	assert.Contains(t, out, "errhandler")
	assert.Contains(t, out, "Error catalog")
}
