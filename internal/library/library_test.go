package library

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultsTable(t *testing.T) {
	d := Defaults()
	want := []string{"Paraboloid", "Sine Wave", "Gaussian", "Ripple"}
	if len(d) != len(want) {
		t.Fatalf("len(Defaults()) = %d, want %d", len(d), len(want))
	}
	for i, f := range d {
		if f.Name != want[i] {
			t.Errorf("Defaults()[%d] = %q, want %q", i, f.Name, want[i])
		}
		if !f.Builtin {
			t.Errorf("%s not marked builtin", f.Name)
		}
		if f.Dialect != "expr" {
			t.Errorf("%s dialect = %q, want expr", f.Name, f.Dialect)
		}
		if err := f.Domain().Validate(); err != nil {
			t.Errorf("%s domain invalid: %v", f.Name, err)
		}
	}

	// Mutating the copy leaves the table alone.
	d[0].Text = "0"
	if f, _ := Default(0); f.Text != "x*x + y*y" {
		t.Errorf("Default(0).Text = %q after mutating copy", f.Text)
	}
	if _, ok := Default(4); ok {
		t.Error("Default(4) found")
	}
}

func TestStoreCRUD(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib", "functions.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	saddle := Function{Name: "Saddle", Text: "x*x - y*y", XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	if err := s.Put(saddle); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(Function{Name: "  Plane ", Text: "x + y", XMin: 0, XMax: 1, YMin: 0, YMax: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := s.Get("Saddle")
	if !ok || got != saddle {
		t.Errorf("Get(Saddle) = %+v, %v", got, ok)
	}
	if !s.Exists("Plane") {
		t.Error("trimmed name not stored")
	}

	wantNames := []string{"Paraboloid", "Sine Wave", "Gaussian", "Ripple", "Plane", "Saddle"}
	if names := s.Names(); !reflect.DeepEqual(names, wantNames) {
		t.Errorf("Names() = %v, want %v", names, wantNames)
	}

	// Reopen from disk.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got, ok := s2.Get("Saddle"); !ok || got != saddle {
		t.Errorf("reopened Get(Saddle) = %+v, %v", got, ok)
	}

	if err := s2.Delete("Saddle"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s2.Exists("Saddle") {
		t.Error("Saddle still present")
	}
	if err := s2.Delete("Saddle"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Saddle") || !strings.Contains(string(data), "Plane") {
		t.Errorf("file content after delete:\n%s", data)
	}
	if strings.Contains(string(data), "Paraboloid") {
		t.Error("defaults written to the library file")
	}
}

func TestDefaultsProtected(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Delete("Gaussian"); !errors.Is(err, ErrProtected) {
		t.Errorf("Delete(Gaussian) error = %v, want ErrProtected", err)
	}
	if err := s.Put(Function{Name: "Ripple", Text: "0"}); !errors.Is(err, ErrProtected) {
		t.Errorf("Put(Ripple) error = %v, want ErrProtected", err)
	}
	if err := s.Put(Function{Name: " ", Text: "0"}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Put(blank) error = %v, want ErrEmptyName", err)
	}
	if f, ok := s.Get("Ripple"); !ok || f.Text != "Math.sin(Math.sqrt(x*x + y*y))" {
		t.Errorf("Get(Ripple) = %+v, %v", f, ok)
	}
}

func TestOpenSkipsShadowedDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "functions.yaml")
	doc := `functions:
  - name: Paraboloid
    text: "0"
  - name: Cone
    text: "sqrt(x*x + y*y)"
    x_min: -3
    x_max: 3
    y_min: -3
    y_max: 3
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f, _ := s.Get("Paraboloid"); f.Text != "x*x + y*y" {
		t.Errorf("default shadowed by file: %q", f.Text)
	}
	cone, ok := s.Get("Cone")
	if !ok || cone.XMax != 3 || cone.Builtin {
		t.Errorf("Get(Cone) = %+v, %v", cone, ok)
	}
	if len(s.Saved()) != 1 {
		t.Errorf("Saved() = %v", s.Saved())
	}
}

func TestOpenInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "functions.yaml")
	if err := os.WriteFile(path, []byte("functions: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Open succeeded on invalid YAML")
	}
}
