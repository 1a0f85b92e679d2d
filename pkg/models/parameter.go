package models

// Parameter is the API view of one model parameter
type Parameter struct {
	Name      string  `json:"name" doc:"Parameter name"`
	Unit      string  `json:"unit" doc:"Display unit"`
	Value     float64 `json:"value" doc:"Current value"`
	Display   string  `json:"display" doc:"Value formatted with the display precision"`
	Min       float64 `json:"min" doc:"Lower slider bound"`
	Max       float64 `json:"max" doc:"Upper slider bound"`
	Percent   float64 `json:"percent" doc:"Value mapped onto the slider bounds"`
	Precision int     `json:"precision" doc:"Display decimal digits"`
	Group     string  `json:"group" enum:"driver,passive,enclosure,constant" doc:"Display group"`
	Derived   bool    `json:"derived" doc:"Whether the value is computed from other parameters"`
	Finite    bool    `json:"finite" doc:"False when the value is NaN or infinite"`
}

// ParameterGroup lists the parameters of one display group
type ParameterGroup struct {
	Name       string      `json:"name" doc:"Group name"`
	Parameters []Parameter `json:"parameters"`
}

// ParameterDetail adds the dependency edges of a parameter
type ParameterDetail struct {
	Parameter
	Inputs     []string `json:"inputs" doc:"Parameters this one is derived from"`
	Dependents []string `json:"dependents" doc:"Parameters recomputed when this one changes, in recompute order"`
}

// ListParametersResponse returns every parameter grouped for display
type ListParametersResponse struct {
	Body struct {
		Groups []ParameterGroup `json:"groups"`
	}
}

// GetParameterRequest selects one parameter by name
type GetParameterRequest struct {
	Name string `path:"name" doc:"Parameter name"`
}

// GetParameterResponse returns one parameter with its edges
type GetParameterResponse struct {
	Body ParameterDetail
}

// UpdateParameterBody holds the fields of a parameter edit. Exactly one of
// value and percent may be set; precision may accompany either or stand alone.
type UpdateParameterBody struct {
	Value     *float64 `json:"value,omitempty" doc:"New value"`
	Percent   *float64 `json:"percent,omitempty" doc:"New value as a fraction of the slider range"`
	Precision *int     `json:"precision,omitempty" minimum:"0" maximum:"12" doc:"New display precision"`
}

// UpdateParameterRequest edits one parameter
type UpdateParameterRequest struct {
	Name string `path:"name" doc:"Parameter name"`
	Body UpdateParameterBody
}
