// services/hal/internal/platform/mprsim_host.go
//go:build !rp2040 && !rp2350

package platform

import "sync"

// MPRSim answers like an MPR pressure sensor: 0xAA 0x00 0x00 starts a
// conversion, a 1-byte read returns status, a 4-byte read returns status
// and the 24-bit output code.
type MPRSim struct {
	mu sync.Mutex

	raw       uint32
	faults    byte // extra status bits reported on every read
	busyPolls int  // status reads answered busy after each measure command
	busy      int
	measures  int
}

func NewMPRSim(raw uint32) *MPRSim { return &MPRSim{raw: raw} }

func (s *MPRSim) SetRaw(raw uint32) {
	s.mu.Lock()
	s.raw = raw & 0xFFFFFF
	s.mu.Unlock()
}

// SetFaults ORs bits (e.g. 0x04 integrity, 0x01 saturation) into status.
func (s *MPRSim) SetFaults(bits byte) {
	s.mu.Lock()
	s.faults = bits
	s.mu.Unlock()
}

func (s *MPRSim) SetBusyPolls(n int) {
	s.mu.Lock()
	s.busyPolls = n
	s.mu.Unlock()
}

// Measures counts measure commands received.
func (s *MPRSim) Measures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.measures
}

func (s *MPRSim) Tx(w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(w) == 3 && w[0] == 0xAA {
		s.measures++
		s.busy = s.busyPolls
	}
	if len(r) == 0 {
		return nil
	}
	st := byte(0x40) | s.faults
	if len(r) < 4 {
		if s.busy > 0 {
			s.busy--
			st |= 0x20
		}
		r[0] = st
		return nil
	}
	r[0] = st
	r[1] = byte(s.raw >> 16)
	r[2] = byte(s.raw >> 8)
	r[3] = byte(s.raw)
	return nil
}
