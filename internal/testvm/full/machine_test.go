package full

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/apparentlymart/insntab/vmrt"
)

// machine is a minimal interpreter for this instruction set. Handlers find
// the program counter in the machine itself, so the run loop passes &m.pc
// to Step and jumps simply overwrite it.
type machine struct {
	regs   [8]uint32
	fregs  [4]float32
	mem    [64]byte
	pc     uint32
	halted bool
	trace  []string
}

var errBadRegister = errors.New("register out of range")

func (m *machine) reg(r vmrt.RegID) (*uint32, error) {
	if int(r) >= len(m.regs) {
		return nil, errBadRegister
	}
	return &m.regs[r], nil
}

func (m *machine) freg(r vmrt.FloatRegID) (*float32, error) {
	if int(r) >= len(m.fregs) {
		return nil, errBadRegister
	}
	return &m.fregs[r], nil
}

func (m *machine) run(code []byte, limit int) error {
	for i := 0; !m.halted; i++ {
		if i == limit {
			return fmt.Errorf("still running after %d steps", limit)
		}
		if err := Step(m, interp{}, code, &m.pc); err != nil {
			return err
		}
	}
	return nil
}

type interp struct{}

var _ Callbacks[*machine] = interp{}

func (interp) Nop(m *machine) error {
	m.trace = append(m.trace, "nop")
	return nil
}

func (interp) Halt(m *machine) error {
	m.trace = append(m.trace, "halt")
	m.halted = true
	return nil
}

func (interp) Ld(m *machine, destination vmrt.RegID, address vmrt.MemPtr) error {
	m.trace = append(m.trace, "ld")
	d, err := m.reg(destination)
	if err != nil {
		return err
	}
	v, err := vmrt.ReadU32(m.mem[:], uint32(address))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (interp) St(m *machine, source vmrt.RegID, address vmrt.MemPtr) error {
	m.trace = append(m.trace, "st")
	s, err := m.reg(source)
	if err != nil {
		return err
	}
	if uint64(address)+4 > uint64(len(m.mem)) {
		return fmt.Errorf("store to %v is out of bounds", address)
	}
	binary.LittleEndian.PutUint32(m.mem[address:], *s)
	return nil
}

func (interp) Ldi(m *machine, destination vmrt.RegID, immediate_value uint32) error {
	m.trace = append(m.trace, "ldi")
	d, err := m.reg(destination)
	if err != nil {
		return err
	}
	*d = immediate_value
	return nil
}

func (interp) Ldbi(m *machine, destination vmrt.RegID, immediate_value uint8) error {
	m.trace = append(m.trace, "ldbi")
	d, err := m.reg(destination)
	if err != nil {
		return err
	}
	*d = uint32(immediate_value)
	return nil
}

func (interp) Ldhi(m *machine, destination vmrt.RegID, immediate_value uint16) error {
	m.trace = append(m.trace, "ldhi")
	d, err := m.reg(destination)
	if err != nil {
		return err
	}
	*d = uint32(immediate_value)
	return nil
}

func (interp) Ldfi(m *machine, destination vmrt.FloatRegID, immediate_value float32) error {
	m.trace = append(m.trace, "ldfi")
	d, err := m.freg(destination)
	if err != nil {
		return err
	}
	*d = immediate_value
	return nil
}

func (interp) Add(m *machine, destination, left, right vmrt.RegID) error {
	m.trace = append(m.trace, "add")
	d, err := m.reg(destination)
	if err != nil {
		return err
	}
	l, err := m.reg(left)
	if err != nil {
		return err
	}
	r, err := m.reg(right)
	if err != nil {
		return err
	}
	*d = *l + *r
	return nil
}

func (interp) Addi(m *machine, destination, source vmrt.RegID, immediate_value int32) error {
	m.trace = append(m.trace, "addi")
	d, err := m.reg(destination)
	if err != nil {
		return err
	}
	s, err := m.reg(source)
	if err != nil {
		return err
	}
	*d = uint32(int32(*s) + immediate_value)
	return nil
}

func (interp) Shl(m *machine, destination vmrt.RegID, amount int8) error {
	m.trace = append(m.trace, "shl")
	d, err := m.reg(destination)
	if err != nil {
		return err
	}
	if amount < 0 {
		*d >>= uint(-int(amount))
	} else {
		*d <<= uint(amount)
	}
	return nil
}

func (interp) Fadd(m *machine, destination, left, right vmrt.FloatRegID) error {
	m.trace = append(m.trace, "fadd")
	d, err := m.freg(destination)
	if err != nil {
		return err
	}
	l, err := m.freg(left)
	if err != nil {
		return err
	}
	r, err := m.freg(right)
	if err != nil {
		return err
	}
	*d = *l + *r
	if math.IsInf(float64(*d), 0) {
		return fmt.Errorf("float overflow")
	}
	return nil
}

func (interp) Jr(m *machine, offset int16) error {
	m.trace = append(m.trace, "jr")
	m.pc = uint32(int64(m.pc) + int64(offset))
	return nil
}

func (interp) Jz(m *machine, condition vmrt.RegID, target vmrt.MemPtr) error {
	m.trace = append(m.trace, "jz")
	c, err := m.reg(condition)
	if err != nil {
		return err
	}
	if *c == 0 {
		m.pc = uint32(target)
	}
	return nil
}
