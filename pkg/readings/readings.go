// Package readings holds the generator reading defaults applied when an
// inspection leaves a value unset. The backend and the terminal client
// both read them from here.
package readings

// Defaults are the values used for unset readings. Phase currents have
// no default.
type Defaults struct {
	EngineHours      float64
	OilPressure      float64
	BlockTemperature float64
	FuelLevel        float64
	Voltage          float64
	Frequency        float64
}

// Standard is full tank, 400 V and 50 Hz, everything else zero.
var Standard = Defaults{
	FuelLevel: 100,
	Voltage:   400,
	Frequency: 50,
}

// Or returns *v, or def when v is nil.
func Or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
