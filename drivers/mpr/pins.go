package mpr

// InputPin is the end-of-conversion line. It reads high once a result is
// available.
type InputPin interface {
	ConfigureInput() error
	Get() bool
}

// OutputPin is the active-low reset line.
type OutputPin interface {
	ConfigureOutput(initial bool) error
	Set(level bool)
}
