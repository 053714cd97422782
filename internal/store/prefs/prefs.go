package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/tada/internal/model"
)

// JSON-backed view preferences. Single file, human-readable.
// Only the ordering is remembered; todos always live on the server.

const dataFileName = "prefs.json"

// Prefs is the ordering restored when the list view opens.
type Prefs struct {
	SortBy    model.SortField `json:"sort_by"`
	SortOrder model.SortOrder `json:"sort_order"`
}

// Default matches the list's default query.
func Default() Prefs {
	q := model.DefaultQuery()
	return Prefs{SortBy: q.SortBy, SortOrder: q.SortOrder}
}

// Apply copies the ordering onto q.
func (p Prefs) Apply(q model.ListQuery) model.ListQuery {
	q.SortBy, q.SortOrder = p.SortBy, p.SortOrder
	return q
}

func dataPath(dir string) string {
	return filepath.Join(dir, dataFileName)
}

// Load reads prefs from dir. A missing file, or values the service would
// not accept, fall back to Default.
func Load(dir string) (Prefs, error) {
	b, err := os.ReadFile(dataPath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read file: %w", err)
	}
	var p Prefs
	if err := json.Unmarshal(b, &p); err != nil {
		return Default(), fmt.Errorf("json unmarshal: %w", err)
	}
	d := Default()
	if f, err := model.ParseSortField(string(p.SortBy)); err == nil {
		d.SortBy = f
	}
	if o, err := model.ParseSortOrder(string(p.SortOrder)); err == nil {
		d.SortOrder = o
	}
	return d, nil
}

// Save writes prefs into dir, creating it if needed.
func Save(dir string, p Prefs) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(dataPath(dir), b, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
