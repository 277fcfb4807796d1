package mpr

// Unit selects the pressure unit returned by Pressure/ReadPressure. The
// conversion is applied after calibration and never affects the raw read.
type Unit uint8

const (
	PSI Unit = iota
	Pa
	KPa
	Torr // also mmHg
	InHg
	Atm
	Bar
)

// Multipliers from PSI.
var unitFactors = [...]float64{
	PSI:  1,
	Pa:   6894.7573,
	KPa:  6.89476,
	Torr: 51.7149,
	InHg: 2.03602,
	Atm:  0.06805,
	Bar:  0.06895,
}

var unitNames = [...]string{
	PSI:  "psi",
	Pa:   "pa",
	KPa:  "kpa",
	Torr: "torr",
	InHg: "inhg",
	Atm:  "atm",
	Bar:  "bar",
}

// Factor returns the multiplier applied to a PSI value. Unknown units
// report 1, i.e. they read as PSI.
func (u Unit) Factor() float64 {
	if int(u) < len(unitFactors) {
		return unitFactors[u]
	}
	return 1
}

// FromPSI converts a PSI value into u.
func (u Unit) FromPSI(psi float64) float64 { return psi * u.Factor() }

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return unitNames[PSI]
}

// ParseUnit accepts the lower-case names returned by String, plus "mmhg"
// for Torr. The empty string parses as PSI.
func ParseUnit(s string) (Unit, bool) {
	switch s {
	case "", "psi":
		return PSI, true
	case "mmhg":
		return Torr, true
	}
	for i, n := range unitNames {
		if n == s {
			return Unit(i), true
		}
	}
	return PSI, false
}
