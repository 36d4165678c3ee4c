package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reciclothes/internal/config"
	"reciclothes/internal/model"
)

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 1, "name": "Jacket", "description": "Recycled denim", "price": "19.90", "category": "coats", "stock": 3, "image": "cG5n"},
		{"id": 2, "name": "Scarf", "price": 5, "category": "accessories", "stock": 0, "image": null}
	]`), 0o644))

	products, err := loadCatalog(path)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, []byte("png"), products[0].Image)
	assert.Equal(t, "19.90", model.NewProductView(products[0]).Price.String())
	assert.Nil(t, products[1].Image)
	assert.Equal(t, "5", products[1].Price.String())
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadCatalog(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id": 1, "name": "Jacket", "image": "***"}]`), 0o644))
	_, err = loadCatalog(bad)
	assert.ErrorContains(t, err, "Jacket")
}

func TestRun_CatalogErrorReturnsBeforeConnecting(t *testing.T) {
	var buf bytes.Buffer
	appLogger := slog.New(slog.NewTextHandler(&buf, nil))
	cfg := &config.Config{DBHost: "127.0.0.1", DBPort: "1"}

	err := run(context.Background(), cfg, appLogger, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "read catalog")
	assert.NotContains(t, buf.String(), "database")
}
