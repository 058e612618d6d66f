package provider

import (
	"context"

	"traitbase/internal/domain"
)

const (
	eltonBirdsURL   = "http://www.esapubs.org/archive/ecol/E095/178/BirdFuncDat.txt"
	eltonMammalsURL = "http://www.esapubs.org/archive/ecol/E095/178/MamFuncDat.txt"
)

var yesNo = map[string]string{"0": "no", "1": "yes"}

// EltonBirds fetches the EltonTraits 1.0 bird foraging dataset
// (Wilman et al. 2014, Ecology 95:2027). Tab-separated.
func EltonBirds(ctx context.Context) (*domain.Result, error) {
	return fetchTable(ctx, eltonBirdsURL, tableSpec{
		species: []string{"Scientific"},
		comma:   '\t',
		numeric: []column{
			{name: "BodyMass-Value", trait: "body_mass", units: "g"},
			{name: "Diet-Inv", trait: "diet_invertebrates", units: "%"},
			{name: "Diet-Fruit", trait: "diet_fruit", units: "%"},
		},
		factors: []factor{
			{name: "Diet-5Cat", trait: "diet_category"},
			{name: "Nocturnal", trait: "nocturnal", levels: yesNo},
			{name: "PelagicSpecialist", trait: "pelagic_specialist", levels: yesNo},
		},
	})
}

// EltonMammals fetches the EltonTraits 1.0 mammal dataset.
func EltonMammals(ctx context.Context) (*domain.Result, error) {
	return fetchTable(ctx, eltonMammalsURL, tableSpec{
		species: []string{"Scientific"},
		comma:   '\t',
		numeric: []column{
			{name: "BodyMass-Value", trait: "body_mass", units: "g"},
			{name: "Diet-Inv", trait: "diet_invertebrates", units: "%"},
			{name: "Diet-Fruit", trait: "diet_fruit", units: "%"},
		},
		factors: []factor{
			{name: "ForStrat-Value", trait: "foraging_stratum", levels: map[string]string{
				"G":  "ground",
				"S":  "scansorial",
				"Ar": "arboreal",
				"A":  "aerial",
				"M":  "marine",
			}},
			{name: "Activity-Nocturnal", trait: "nocturnal", levels: yesNo},
		},
	})
}
