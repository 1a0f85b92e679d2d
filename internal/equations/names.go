package equations

// Parameter names as they appear in preset files and the API.
const (
	// Environment
	Rho0 = "ρ0"
	C    = "c"
	T    = "t"

	// Driver
	Xmax   = "Xmax"
	Vd     = "Vd"
	Sd     = "Sd"
	Bl     = "Bl"
	Re     = "Re"
	Mmd    = "Mmd"
	Mms    = "Mms"
	Mas    = "Mas"
	Rms    = "Rms"
	Ras    = "Ras"
	Cms    = "Cms"
	Cas    = "Cas"
	Vas    = "Vas"
	Rg     = "Rg"
	Ts     = "Ts"
	OmegaS = "ωs"
	Fs     = "Fs"
	Qes    = "Qes"
	Qms    = "Qms"
	Qts    = "Qts"
	Qs     = "Qs"
	Cab    = "Cab"
	Vb     = "Vb"

	// Passive radiator
	Vap    = "Vap"
	Cmp    = "Cmp"
	Cap    = "Cap"
	Rmp    = "Rmp"
	Rap    = "Rap"
	Mmp    = "Mmp"
	Map    = "Map"
	Sp     = "Sp"
	Qmp    = "Qmp"
	OmegaP = "ωp"
	Fp     = "Fp"
	Tp     = "Tp"

	// Enclosure
	OmegaB = "ωb"
	Fb     = "Fb"
	Tb     = "Tb"
	Alpha  = "α"
	Delta  = "δ"
	Y      = "y"
	H      = "h"
	Eta0   = "η0"
)
