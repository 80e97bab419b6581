package snapshot

import (
	"testing"
	"time"

	"github.com/impactmap/impactmap-cli/internal/heatmap"
)

func sample() *Snapshot {
	return New("http://example.test/api", "U",
		[]heatmap.Sector{{Index: 0, Name: "Grain Farming"}},
		[]heatmap.Indicator{{Index: 0, Code: "GHG", Group: heatmap.GroupImpactPotential}},
		[][]float64{{4.2}},
	)
}

func TestSnapshotRoundtrip(t *testing.T) {
	dir := t.TempDir()
	s := sample()
	if s.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if err := s.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(s.Path(dir))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != s.ID || got.MatrixName != "U" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	ds := got.Dataset()
	if ds.Matrix.Value(0, 0) != 4.2 {
		t.Fatalf("matrix not restored")
	}
	if len(ds.Indicators) != 1 || ds.Indicators[0].Group != heatmap.GroupImpactPotential {
		t.Fatalf("indicators not restored: %+v", ds.Indicators)
	}
}

func TestListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	old := sample()
	old.CreatedAt = time.Now().Add(-time.Hour)
	if err := old.Save(dir); err != nil {
		t.Fatalf("save old: %v", err)
	}
	recent := sample()
	if err := recent.Save(dir); err != nil {
		t.Fatalf("save recent: %v", err)
	}
	all, err := List(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(all))
	}
	if all[0].ID != recent.ID {
		t.Fatalf("expected newest first")
	}
}

func TestListMissingDir(t *testing.T) {
	all, err := List(t.TempDir() + "/nope")
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty listing")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	s := sample()
	if err := s.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Resolve(dir, "latest")
	if err != nil || got.ID != s.ID {
		t.Fatalf("resolve latest: %v", err)
	}
	got, err = Resolve(dir, s.ID[:8])
	if err != nil || got.ID != s.ID {
		t.Fatalf("resolve by prefix: %v", err)
	}
	if _, err := Resolve(dir, "ffffffff"); err == nil {
		t.Fatalf("expected error for unknown ref")
	}
	if _, err := Resolve(t.TempDir(), "latest"); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
