// services/hal/internal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"errors"
	"sync"

	"mprsense-go/services/hal/internal/halcore"

	"tinygo.org/x/drivers"
)

// ----------------------------- I²C (host) ------------------------------------

// ErrNACK is returned for transactions to an address with no target attached.
var ErrNACK = errors.New("i2c: no ack")

// I2CTarget answers transactions addressed to it on a HostI2C.
type I2CTarget interface {
	Tx(w, r []byte) error
}

// HostI2C implements tinygo drivers.I2C for host-side tests and demos.
type HostI2C struct {
	mu      sync.Mutex
	targets map[uint16]I2CTarget
	LastTx  struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

// Attach places t at addr. A nil t detaches.
func (h *HostI2C) Attach(addr uint16, t I2CTarget) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.targets == nil {
		h.targets = make(map[uint16]I2CTarget)
	}
	if t == nil {
		delete(h.targets, addr)
		return
	}
	h.targets[addr] = t
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	t, ok := h.targets[addr]
	if !ok {
		return ErrNACK
	}
	return t.Tx(w, r)
}

type hostI2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *hostI2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// NewI2CFactory serves the given buses by id.
func NewI2CFactory(buses map[string]*HostI2C) halcore.I2CBusFactory {
	f := &hostI2CFactory{buses: make(map[string]drivers.I2C, len(buses))}
	for id, b := range buses {
		f.buses[id] = b
	}
	return f
}

// DefaultI2CFactory creates host buses "i2c0" and "i2c1" with a simulated
// MPR at its default address on i2c0.
func DefaultI2CFactory() halcore.I2CBusFactory {
	i2c0 := &HostI2C{}
	i2c0.Attach(0x18, NewMPRSim(0x7FFFFF))
	return NewI2CFactory(map[string]*HostI2C{
		"i2c0": i2c0,
		"i2c1": {},
	})
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin for host-side tests.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
	history []bool // levels written by Set
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.history = append(p.history, level)
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports the configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// History returns the levels written by Set, oldest first.
func (p *FakePin) History() []bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]bool(nil), p.history...)
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	return f.Get(n)
}

// Get exposes the underlying *FakePin for tests (e.g. to drive EOC).
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	if n < 0 || n > 28 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// DefaultPinFactory provides a host GPIO factory.
func DefaultPinFactory() halcore.PinFactory {
	return &HostPinFactory{pins: make(map[int]*FakePin)}
}
