package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/tilepaint/internal/mesh"
)

func TestParseFloats(t *testing.T) {
	got, err := parseFloats([]string{"0.5", "-1", "2e-1"}, 3)
	if err != nil {
		t.Fatalf("parseFloats() error = %v", err)
	}
	want := []float64{0.5, -1, 0.2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseFloats()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := parseFloats([]string{"1", "2"}, 3); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := parseFloats([]string{"1", "x", "2"}, 3); err == nil {
		t.Error("expected error for bad number")
	}
}

func TestWriteOBJ(t *testing.T) {
	m := mesh.New("quad")
	a := m.AppendVertex(mgl64.Vec3{0, 0, 0})
	b := m.AppendVertex(mgl64.Vec3{1, 0, 0})
	c := m.AppendVertex(mgl64.Vec3{1, 1, 0})
	if _, err := m.AppendFace(a, b, c); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := writeOBJ(m, path); err != nil {
		t.Fatalf("writeOBJ() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "f 1 2 3") {
		t.Errorf("OBJ output missing face: %q", data)
	}

	if err := writeOBJ(m, filepath.Join(t.TempDir(), "missing", "quad.obj")); err == nil {
		t.Error("expected error for a missing directory")
	}
}
