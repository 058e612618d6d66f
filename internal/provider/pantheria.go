package provider

import (
	"context"

	"traitbase/internal/domain"
)

const pantheriaURL = "http://esapubs.org/archive/ecol/E090/184/PanTHERIA_1-0_WR05_Aug2008.txt"

// PanTHERIA fetches the PanTHERIA mammal life-history database
// (Jones et al. 2009, Ecology 90:2648). Tab-separated, -999 for missing.
func PanTHERIA(ctx context.Context) (*domain.Result, error) {
	return fetchTable(ctx, pantheriaURL, tableSpec{
		species:  []string{"MSW05_Binomial"},
		comma:    '\t',
		sentinel: "-999",
		numeric: []column{
			{name: "5-1_AdultBodyMass_g", trait: "adult_body_mass", units: "g"},
			{name: "13-1_AdultHeadBodyLen_mm", trait: "adult_head_body_length", units: "mm"},
			{name: "5-2_BasalMetRate_mLO2hr", trait: "basal_metabolic_rate", units: "mL O2/hr"},
			{name: "9-1_GestationLen_d", trait: "gestation_length", units: "days"},
			{name: "15-1_LitterSize", trait: "litter_size", units: ""},
			{name: "17-1_MaxLongevity_m", trait: "maximum_longevity", units: "months"},
			{name: "22-1_HomeRange_km2", trait: "home_range", units: "km2"},
			{name: "23-1_SexualMaturityAge_d", trait: "sexual_maturity_age", units: "days"},
		},
		factors: []factor{
			{name: "1-1_ActivityCycle", trait: "activity_cycle", levels: map[string]string{
				"1": "nocturnal",
				"2": "cathemeral",
				"3": "diurnal",
			}},
			{name: "6-2_TrophicLevel", trait: "trophic_level", levels: map[string]string{
				"1": "herbivore",
				"2": "omnivore",
				"3": "carnivore",
			}},
			{name: "12-2_Terrestriality", trait: "terrestriality", levels: map[string]string{
				"1": "ground_dwelling",
				"2": "above_ground",
			}},
		},
	})
}
