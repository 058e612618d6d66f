package domain

// Numeric is a single species-by-trait measurement with a numeric value.
// Species, Variable and Dataset are never empty on a retained record;
// Units and Metadata are optional and empty when unknown.
type Numeric struct {
	Species  string  `json:"species"`
	Variable string  `json:"variable"`
	Value    float64 `json:"value"`
	Units    string  `json:"units,omitempty"`
	Metadata string  `json:"metadata,omitempty"`
	Dataset  string  `json:"dataset,omitempty"`
}

// Categorical is a single species-by-trait observation whose value is a
// categorical token rather than a number.
type Categorical struct {
	Species  string `json:"species"`
	Variable string `json:"variable"`
	Value    string `json:"value"`
	Units    string `json:"units,omitempty"`
	Metadata string `json:"metadata,omitempty"`
	Dataset  string `json:"dataset,omitempty"`
}

// Result is the contract every dataset provider returns: a numeric and a
// categorical long-format table. A nil table means the source has no data
// of that kind. The Dataset field on the records is left empty by the
// provider; the collector stamps it with the provider identifier.
type Result struct {
	Numeric     []Numeric     `json:"numeric"`
	Categorical []Categorical `json:"categorical"`
}

// Tag stamps every record in the result with its provenance.
func (r *Result) Tag(dataset string) {
	for i := range r.Numeric {
		r.Numeric[i].Dataset = dataset
	}
	for i := range r.Categorical {
		r.Categorical[i].Dataset = dataset
	}
}

// Empty reports whether the result carries no records of either kind.
func (r *Result) Empty() bool {
	return len(r.Numeric) == 0 && len(r.Categorical) == 0
}
