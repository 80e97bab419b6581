// Package snapshot persists fetched datasets on disk so heatmaps can be
// rendered offline and re-rendered without refetching.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/impactmap/impactmap-cli/internal/heatmap"
)

// Snapshot is one fetched dataset plus enough metadata to identify where it
// came from.
type Snapshot struct {
	ID         string              `json:"id"`
	BaseURL    string              `json:"base_url"`
	MatrixName string              `json:"matrix_name"`
	CreatedAt  time.Time           `json:"created_at"`
	Sectors    []heatmap.Sector    `json:"sectors"`
	Indicators []heatmap.Indicator `json:"indicators"`
	Matrix     [][]float64         `json:"matrix"`
}

// New builds a snapshot from a fetched dataset. The matrix rows are the raw
// wire table; Dataset() rewraps them for the engine.
func New(baseURL, matrixName string, sectors []heatmap.Sector, indicators []heatmap.Indicator, matrix [][]float64) *Snapshot {
	return &Snapshot{
		ID:         uuid.NewString(),
		BaseURL:    baseURL,
		MatrixName: matrixName,
		CreatedAt:  time.Now().UTC(),
		Sectors:    sectors,
		Indicators: indicators,
		Matrix:     matrix,
	}
}

// Dataset bundles the snapshot contents for the heatmap engine.
func (s *Snapshot) Dataset() heatmap.Dataset {
	return heatmap.Dataset{
		Sectors:    s.Sectors,
		Indicators: s.Indicators,
		Matrix:     heatmap.NewDenseMatrix(s.Matrix),
	}
}

// Path returns the on-disk location of the snapshot within dir.
func (s *Snapshot) Path(dir string) string {
	return filepath.Join(dir, s.ID+".json")
}

// Save writes the snapshot into dir using an atomic write, creating the
// directory if necessary.
func (s *Snapshot) Save(dir string) error {
	if s.ID == "" {
		return errors.New("snapshot has no id")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir snapshots dir: %w", err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	path := s.Path(dir)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load reads one snapshot file.
func Load(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("snapshot not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &s, nil
}

// Resolve finds a snapshot in dir by id, id prefix, or the literal "latest".
func Resolve(dir, ref string) (*Snapshot, error) {
	all, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no snapshots in %s; run fetch first", dir)
	}
	if ref == "" || ref == "latest" {
		return all[0], nil
	}
	for _, s := range all {
		if s.ID == ref || strings.HasPrefix(s.ID, ref) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no snapshot matching %q in %s", ref, dir)
}

// List loads every snapshot in dir, newest first. A missing directory reads
// as empty.
func List(dir string) ([]*Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshots dir: %w", err)
	}
	var out []*Snapshot
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			// Skip unreadable files rather than failing the whole listing.
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
