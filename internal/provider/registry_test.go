package provider

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"traitbase/internal/domain"
)

func noop(ctx context.Context) (*domain.Result, error) {
	return &domain.Result{}, nil
}

func TestRegisterNormalizesNames(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("  PanTHERIA ", noop); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := r.Resolve("pantheria"); err != nil {
		t.Errorf("Resolve(pantheria): %v", err)
	}
	if _, err := r.Resolve("PANTHERIA"); err != nil {
		t.Errorf("Resolve(PANTHERIA): %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("x", noop); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("X", noop); err == nil {
		t.Fatal("duplicate registration should fail")
	}
}

func TestNamesKeepRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		if err := r.Register(name, noop); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("Names() = %v", got)
	}
}

func TestResolveAllDefaultsToEveryProvider(t *testing.T) {
	r := NewRegistry()
	r.Register("a", noop)
	r.Register("b", noop)

	resolved, err := r.ResolveAll(nil)
	if err != nil {
		t.Fatalf("ResolveAll: %v", err)
	}
	if len(resolved) != 2 || resolved[0].Name != "a" || resolved[1].Name != "b" {
		t.Fatalf("ResolveAll = %+v", resolved)
	}
}

func TestResolveAllListsExactlyTheUnknown(t *testing.T) {
	r := NewRegistry()
	r.Register("known", noop)

	_, err := r.ResolveAll([]string{"known", "ghost", "phantom"})
	var unknown *UnknownProviderError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownProviderError", err)
	}
	if !reflect.DeepEqual(unknown.Names, []string{"ghost", "phantom"}) {
		t.Fatalf("unknown names = %v", unknown.Names)
	}
}

func TestBuiltinRegistry(t *testing.T) {
	names := Builtin().Names()
	want := []string{"pantheria", "amniote", "elton_birds", "elton_mammals"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("Builtin().Names() = %v, want %v", names, want)
	}
}

func TestNormalizeSpecies(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Quercus robur", "quercus_robur"},
		{"  Quercus   robur ", "quercus_robur"},
		{"Canis lupus familiaris", "canis_lupus_familiaris"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeSpecies(tt.input); got != tt.want {
			t.Errorf("NormalizeSpecies(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
