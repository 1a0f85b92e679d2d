package models

// GetResponseRequest selects a response variant and the sweep to sample it on
type GetResponseRequest struct {
	Variant string  `path:"variant" enum:"radiator,cone,passive,impedance" doc:"Response variant"`
	Min     float64 `query:"min" doc:"Lowest frequency in Hz, configured default when omitted"`
	Max     float64 `query:"max" doc:"Highest frequency in Hz, configured default when omitted"`
	Step    float64 `query:"step" doc:"Step in Hz for linear sweeps, configured default when omitted"`
	Log     bool    `query:"log" doc:"Space samples logarithmically"`
	Points  int     `query:"points" default:"200" doc:"Number of samples for logarithmic sweeps"`
}

// Coefficients are the polynomial coefficients, highest order first.
// A coefficient that is not finite is null.
type Coefficients struct {
	Numerator   []*float64 `json:"numerator"`
	Denominator []*float64 `json:"denominator"`
	Finite      bool       `json:"finite" doc:"Whether every coefficient is finite"`
}

// ResponseCurveBody is a sampled response curve
type ResponseCurveBody struct {
	Variant       string           `json:"variant" doc:"Response variant"`
	Coefficients  Coefficients     `json:"coefficients" doc:"Transfer function the curve was sampled from"`
	FrequencyData []FrequencyPoint `json:"frequency_data" doc:"Frequency response data"`
	Gaps          int              `json:"gaps" doc:"Number of samples that were not finite"`
}

// GetResponseResponse returns a sampled response curve
type GetResponseResponse struct {
	Body ResponseCurveBody
}

// ChartResponse is a rendered chart page
type ChartResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
