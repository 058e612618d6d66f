package domain

import (
	"errors"
	"reflect"
	"testing"
)

func num(species, variable string, value float64, dataset string) Numeric {
	return Numeric{Species: species, Variable: variable, Value: value, Dataset: dataset}
}

func cat(species, variable, value, dataset string) Categorical {
	return Categorical{Species: species, Variable: variable, Value: value, Dataset: dataset}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func TestAggregateConcatenatesTables(t *testing.T) {
	results := []Result{
		{Numeric: []Numeric{num("quercus_robur", "height", 12.0, "x")}},
		{
			Numeric:     []Numeric{num("quercus_ilex", "height", 8.0, "y")},
			Categorical: []Categorical{cat("quercus_ilex", "leaf_type", "evergreen", "y")},
		},
	}

	db := Aggregate(results)
	assertEqual(t, 2, len(db.Numeric))
	assertEqual(t, 1, len(db.Categorical))
	assertEqual(t, "quercus_robur", db.Numeric[0].Species)
	assertEqual(t, "quercus_ilex", db.Numeric[1].Species)
}

func TestAggregateAbsentKindStaysAbsent(t *testing.T) {
	db := Aggregate([]Result{
		{Numeric: []Numeric{num("a", "t", 1, "x")}},
		{Numeric: []Numeric{num("b", "t", 2, "y")}},
	})

	if db.Categorical != nil {
		t.Fatalf("categorical table should be absent, got %v", db.Categorical)
	}
	if !db.HasNumeric() || db.HasCategorical() {
		t.Fatalf("HasNumeric=%v HasCategorical=%v", db.HasNumeric(), db.HasCategorical())
	}
}

func TestAggregateEmptyTableIsPresent(t *testing.T) {
	// A dataset that contributes an empty (but present) categorical table
	// makes the aggregate categorical table present with zero rows.
	db := Aggregate([]Result{
		{Numeric: []Numeric{num("a", "t", 1, "x")}, Categorical: []Categorical{}},
	})

	if db.Categorical == nil {
		t.Fatal("categorical table should be present but empty")
	}
	assertEqual(t, 0, len(db.Categorical))
}

func TestSpeciesAndTraitsUnion(t *testing.T) {
	db := &Database{
		Numeric: []Numeric{
			num("quercus_robur", "height", 12, "x"),
			num("quercus_ilex", "height", 8, "x"),
		},
		Categorical: []Categorical{
			cat("quercus_robur", "leaf_type", "deciduous", "y"),
			cat("pinus_pinea", "leaf_type", "evergreen", "y"),
		},
	}

	species, err := db.Species()
	assertNoError(t, err)
	assertEqual(t, []string{"pinus_pinea", "quercus_ilex", "quercus_robur"}, species)

	traits, err := db.Traits()
	assertNoError(t, err)
	assertEqual(t, []string{"height", "leaf_type"}, traits)
}

func TestSummarizeCounts(t *testing.T) {
	// Two numeric records, two distinct species, one trait, no categorical
	// data: numeric=(2,1,2), categorical=(0,0,0), combined species = 2.
	db := Aggregate([]Result{{Numeric: []Numeric{
		num("quercus_robur", "height", 12, "x"),
		num("quercus_ilex", "height", 8, "x"),
	}}})

	s, err := db.Summarize()
	assertNoError(t, err)
	assertEqual(t, TableSummary{Species: 2, Traits: 1, Records: 2}, s.Numeric)
	assertEqual(t, TableSummary{}, s.Categorical)
	assertEqual(t, 2, s.Species)
	assertEqual(t, 1, s.Traits)
	assertEqual(t, 2, s.Records)
}

func TestSummarizeCombinedSpeciesIsUnion(t *testing.T) {
	db := &Database{
		Numeric:     []Numeric{num("a", "t1", 1, "x"), num("b", "t1", 2, "x")},
		Categorical: []Categorical{cat("b", "t2", "v", "x"), cat("c", "t2", "v", "x")},
	}

	s, err := db.Summarize()
	assertNoError(t, err)
	assertEqual(t, 2, s.Numeric.Species)
	assertEqual(t, 2, s.Categorical.Species)
	assertEqual(t, 3, s.Species) // union, not 2+2
}

func TestMalformedDatabase(t *testing.T) {
	for _, db := range []*Database{nil, {}} {
		if _, err := db.Species(); !errors.Is(err, ErrMalformedDatabase) {
			t.Errorf("Species() error = %v, want ErrMalformedDatabase", err)
		}
		if _, err := db.Traits(); !errors.Is(err, ErrMalformedDatabase) {
			t.Errorf("Traits() error = %v, want ErrMalformedDatabase", err)
		}
		if _, err := db.Summarize(); !errors.Is(err, ErrMalformedDatabase) {
			t.Errorf("Summarize() error = %v, want ErrMalformedDatabase", err)
		}
	}
}

func TestTagSetsProvenance(t *testing.T) {
	res := Result{
		Numeric:     []Numeric{num("a", "t", 1, "")},
		Categorical: []Categorical{cat("a", "u", "v", "")},
	}
	res.Tag("pantheria")
	assertEqual(t, "pantheria", res.Numeric[0].Dataset)
	assertEqual(t, "pantheria", res.Categorical[0].Dataset)
}
