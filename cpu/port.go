package cpu

// Port is one of the four memory-mapped I/O ports.
type Port int

//go:generate go tool stringer -linecomment -type=Port
const (
	PORT_A = Port(0) // A
	PORT_B = Port(1) // B
	PORT_C = Port(2) // C
	PORT_D = Port(3) // D

	PORT_COUNT = 4
	PORT_BASE  = Addr(0xFFFC) // Address of port A.
)

// portMap maps port names to ports.
var portMap = map[string]Port{
	"A": PORT_A,
	"B": PORT_B,
	"C": PORT_C,
	"D": PORT_D,
}

// LookupPort returns the port called name.
func LookupPort(name string) (port Port, err error) {
	port, ok := portMap[name]
	if !ok {
		err = ErrPortUnknown(name)
	}
	return
}

// Addr returns the memory address the port is mapped at.
func (port Port) Addr() Addr {
	return PORT_BASE + Addr(port)
}

// Input returns true for the ports the operator feeds (B and D).
// A and C are written by programs.
func (port Port) Input() bool {
	return port == PORT_B || port == PORT_D
}

// Ports is the view of the I/O ports over memory.
type Ports struct {
	Memory *Memory
}

// Read returns the last value written to the port, or zero after reset.
func (ports Ports) Read(port Port) Word {
	return ports.Memory.Read(int(port.Addr()))
}

// Write stores a value into the port.
func (ports Ports) Write(port Port, value Word) {
	ports.Memory.Write(int(port.Addr()), value)
}

// All returns the values of all ports, in port order.
func (ports Ports) All() (values [PORT_COUNT]Word) {
	for n := range PORT_COUNT {
		values[n] = ports.Read(Port(n))
	}
	return
}

// At returns the port mapped at addr, if any.
func (ports Ports) At(addr Addr) (port Port, ok bool) {
	if addr < PORT_BASE {
		return
	}
	port = Port(addr - PORT_BASE)
	ok = true
	return
}
