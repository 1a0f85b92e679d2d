package api

import (
	"net/http"

	"github.com/RMahshie/basscalc/internal/api/handlers"
	"github.com/RMahshie/basscalc/internal/processing"
	"github.com/RMahshie/basscalc/internal/transfer"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes. sweep fills in response requests
// that omit their bounds or step.
func RegisterRoutes(api huma.API, svc processing.Service, sweep transfer.Sweep) {
	parameterHandler := handlers.NewParameterHandler(svc)
	responseHandler := handlers.NewResponseHandler(svc, sweep)
	presetHandler := handlers.NewPresetHandler(svc)
	designHandler := handlers.NewDesignHandler(svc)

	// Parameter routes
	huma.Register(api, huma.Operation{
		OperationID: "listParameters",
		Method:      http.MethodGet,
		Path:        "/api/parameters",
		Summary:     "List parameters",
		Description: "Returns every parameter grouped for display",
		Tags:        []string{"Parameters"},
	}, parameterHandler.ListParameters)

	huma.Register(api, huma.Operation{
		OperationID: "recomputeParameters",
		Method:      http.MethodPost,
		Path:        "/api/parameters/recompute",
		Summary:     "Recompute derived parameters",
		Description: "Runs one recompute pass over every derived parameter",
		Tags:        []string{"Parameters"},
	}, parameterHandler.Recompute)

	huma.Register(api, huma.Operation{
		OperationID: "resetParameters",
		Method:      http.MethodPost,
		Path:        "/api/parameters/reset",
		Summary:     "Reset parameters",
		Description: "Restores the default values and precisions",
		Tags:        []string{"Parameters"},
	}, parameterHandler.Reset)

	huma.Register(api, huma.Operation{
		OperationID: "getParameter",
		Method:      http.MethodGet,
		Path:        "/api/parameters/{name}",
		Summary:     "Get parameter",
		Description: "Returns one parameter with its inputs and dependents",
		Tags:        []string{"Parameters"},
	}, parameterHandler.GetParameter)

	huma.Register(api, huma.Operation{
		OperationID: "updateParameter",
		Method:      http.MethodPatch,
		Path:        "/api/parameters/{name}",
		Summary:     "Update parameter",
		Description: "Sets the value, slider percent or precision of an input parameter and recomputes",
		Tags:        []string{"Parameters"},
	}, parameterHandler.UpdateParameter)

	// Response routes
	huma.Register(api, huma.Operation{
		OperationID: "getResponse",
		Method:      http.MethodGet,
		Path:        "/api/responses/{variant}",
		Summary:     "Get frequency response",
		Description: "Assembles the transfer function of a variant and samples it over a sweep",
		Tags:        []string{"Responses"},
	}, responseHandler.GetResponse)

	huma.Register(api, huma.Operation{
		OperationID: "getResponseChart",
		Method:      http.MethodGet,
		Path:        "/api/responses/{variant}/chart",
		Summary:     "Get frequency response chart",
		Description: "Renders the sampled response as an HTML chart",
		Tags:        []string{"Responses"},
	}, responseHandler.GetChart)

	// Preset routes
	huma.Register(api, huma.Operation{
		OperationID: "listPresets",
		Method:      http.MethodGet,
		Path:        "/api/presets",
		Summary:     "List presets",
		Description: "Lists the presets in object storage",
		Tags:        []string{"Presets"},
	}, presetHandler.ListPresets)

	huma.Register(api, huma.Operation{
		OperationID: "exportPreset",
		Method:      http.MethodGet,
		Path:        "/api/presets/current",
		Summary:     "Export current preset",
		Description: "Returns the current model in preset format",
		Tags:        []string{"Presets"},
	}, presetHandler.ExportPreset)

	huma.Register(api, huma.Operation{
		OperationID:   "savePreset",
		Method:        http.MethodPost,
		Path:          "/api/presets/{name}",
		Summary:       "Save preset",
		Description:   "Stores the current model as a named preset",
		Tags:          []string{"Presets"},
		DefaultStatus: http.StatusCreated,
	}, presetHandler.SavePreset)

	huma.Register(api, huma.Operation{
		OperationID: "loadPreset",
		Method:      http.MethodPost,
		Path:        "/api/presets/{name}/load",
		Summary:     "Load preset",
		Description: "Applies a stored preset and recomputes",
		Tags:        []string{"Presets"},
	}, presetHandler.LoadPreset)

	huma.Register(api, huma.Operation{
		OperationID: "getPresetURL",
		Method:      http.MethodGet,
		Path:        "/api/presets/{name}/url",
		Summary:     "Get preset download URL",
		Description: "Returns a pre-signed URL for downloading a stored preset",
		Tags:        []string{"Presets"},
	}, presetHandler.GetPresetURL)

	huma.Register(api, huma.Operation{
		OperationID:   "deletePreset",
		Method:        http.MethodDelete,
		Path:          "/api/presets/{name}",
		Summary:       "Delete preset",
		Description:   "Removes a stored preset",
		Tags:          []string{"Presets"},
		DefaultStatus: http.StatusNoContent,
	}, presetHandler.DeletePreset)

	// Design routes
	huma.Register(api, huma.Operation{
		OperationID:   "createDesign",
		Method:        http.MethodPost,
		Path:          "/api/designs",
		Summary:       "Save design",
		Description:   "Stores the current input values and precisions as a design",
		Tags:          []string{"Designs"},
		DefaultStatus: http.StatusCreated,
	}, designHandler.CreateDesign)

	huma.Register(api, huma.Operation{
		OperationID: "listDesigns",
		Method:      http.MethodGet,
		Path:        "/api/designs",
		Summary:     "List designs",
		Description: "Lists stored designs, newest first",
		Tags:        []string{"Designs"},
	}, designHandler.ListDesigns)

	huma.Register(api, huma.Operation{
		OperationID: "applyDesign",
		Method:      http.MethodPost,
		Path:        "/api/designs/{id}/apply",
		Summary:     "Apply design",
		Description: "Restores the inputs of a stored design and recomputes",
		Tags:        []string{"Designs"},
	}, designHandler.ApplyDesign)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteDesign",
		Method:        http.MethodDelete,
		Path:          "/api/designs/{id}",
		Summary:       "Delete design",
		Description:   "Removes a stored design",
		Tags:          []string{"Designs"},
		DefaultStatus: http.StatusNoContent,
	}, designHandler.DeleteDesign)
}
