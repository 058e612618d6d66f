package provider

import (
	"context"

	"traitbase/internal/domain"
)

const amnioteURL = "http://esapubs.org/archive/ecol/E096/269/Data_Files/Amniote_Database_Aug_2015.csv"

// Amniote fetches the amniote life-history database (Myhrvold et al. 2015,
// Ecology 96:3109) covering birds, mammals and reptiles. Comma-separated,
// -999 for missing, species split across genus and species columns.
func Amniote(ctx context.Context) (*domain.Result, error) {
	return fetchTable(ctx, amnioteURL, tableSpec{
		species:  []string{"genus", "species"},
		sentinel: "-999",
		numeric: []column{
			{name: "adult_body_mass_g", trait: "adult_body_mass", units: "g"},
			{name: "female_maturity_d", trait: "female_maturity", units: "days"},
			{name: "litter_or_clutch_size_n", trait: "litter_or_clutch_size", units: ""},
			{name: "litters_or_clutches_per_y", trait: "litters_or_clutches_per_year", units: "1/year"},
			{name: "maximum_longevity_y", trait: "maximum_longevity", units: "years"},
			{name: "gestation_d", trait: "gestation_length", units: "days"},
			{name: "incubation_d", trait: "incubation_length", units: "days"},
			{name: "egg_mass_g", trait: "egg_mass", units: "g"},
			{name: "birth_or_hatching_weight_g", trait: "birth_or_hatching_weight", units: "g"},
		},
	})
}
