package models

// CreateDesignRequest saves the current inputs as a design
type CreateDesignRequest struct {
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"100" required:"true" doc:"Design name"`
		Description string `json:"description,omitempty" maxLength:"500" doc:"Free-form notes"`
	}
}

// DesignResponse returns one design
type DesignResponse struct {
	Body *Design
}

// ListDesignsResponse lists stored designs, newest first
type ListDesignsResponse struct {
	Body struct {
		Designs []*Design `json:"designs"`
	}
}

// DesignIDRequest selects a design by ID
type DesignIDRequest struct {
	ID string `path:"id" doc:"Design ID"`
}
