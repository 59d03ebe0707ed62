package cpu

// CommitPolicy selects what the reads of an instruction observe when the
// same instruction has already written the location.
type CommitPolicy int

//go:generate go tool stringer -linecomment -type=CommitPolicy
const (
	COMMIT_DEFERRED  = CommitPolicy(0) // deferred
	COMMIT_IMMEDIATE = CommitPolicy(1) // immediate
)

// commitMap maps policy names to policies.
var commitMap = map[string]CommitPolicy{
	"deferred":  COMMIT_DEFERRED,
	"immediate": COMMIT_IMMEDIATE,
}

// LookupCommitPolicy returns the policy called name.
func LookupCommitPolicy(name string) (policy CommitPolicy, ok bool) {
	policy, ok = commitMap[name]
	return
}

// store is a pending memory write.
type store struct {
	addr  Addr
	value Word
}

// txn collects the writes of one instruction.
//
// Under COMMIT_DEFERRED all reads see the state as of the start of the
// instruction. Under COMMIT_IMMEDIATE reads see the latest pending write to
// the same location. Writes are applied in issue order by commit.
type txn struct {
	cpu    *Cpu
	policy CommitPolicy

	stores  []store
	reg     [REGISTER_COUNT]int
	reg_set [REGISTER_COUNT]bool

	carry     bool
	carry_set bool

	jump   Addr
	jumped bool
	halt   bool
}

// load reads a memory cell.
func (tx *txn) load(addr int) Word {
	at := AddrOf(addr)
	if tx.policy == COMMIT_IMMEDIATE {
		for n := len(tx.stores) - 1; n >= 0; n-- {
			if tx.stores[n].addr == at {
				return tx.stores[n].value
			}
		}
	}
	return tx.cpu.Memory.Read(int(at))
}

// store queues a memory write.
func (tx *txn) store(addr int, value Word) {
	tx.stores = append(tx.stores, store{addr: AddrOf(addr), value: value})
}

// get reads a register.
func (tx *txn) get(reg Register) int {
	if tx.policy == COMMIT_IMMEDIATE && tx.reg_set[reg] {
		return tx.reg[reg]
	}
	return tx.cpu.Register.Get(reg)
}

// set queues a register write.
func (tx *txn) set(reg Register, value int) {
	tx.reg[reg] = value
	tx.reg_set[reg] = true
}

// sp is the stack pointer as an address offset base.
func (tx *txn) sp() int {
	return tx.get(REG_SP)
}

// push queues a write of value at the stack pointer, and moves it down.
func (tx *txn) push(value Word) {
	sp := tx.sp()
	tx.store(sp, value)
	tx.set(REG_SP, sp-1)
}

// flags queues the ALU flags: zero and sign into the PSW, carry into the
// CPU.
func (tx *txn) flags(flags Flags) {
	tx.store(int(PSW_ADDR), flags.PSW())
	tx.carry = flags.Carry
	tx.carry_set = true
}

// jumpTo replaces the default pc advance.
func (tx *txn) jumpTo(addr Addr) {
	tx.jump = addr
	tx.jumped = true
}

// commit applies the queued writes to the CPU, and reports program writes
// to ports.
func (tx *txn) commit(next_pc int) {
	cpu := tx.cpu

	for reg := range Register(REGISTER_COUNT) {
		if tx.reg_set[reg] {
			cpu.Register.Set(reg, tx.reg[reg])
		}
	}

	if tx.carry_set {
		cpu.Carry = tx.carry
	}

	for _, st := range tx.stores {
		cpu.Memory.Write(int(st.addr), st.value)
	}

	if tx.jumped {
		next_pc = int(tx.jump)
	}
	cpu.Register.Set(REG_PC, next_pc)

	if tx.halt {
		cpu.Halted = true
	}

	// Port writes are reported once the whole instruction is visible.
	if cpu.PortWrite == nil {
		return
	}
	for _, st := range tx.stores {
		if port, ok := cpu.Ports().At(st.addr); ok {
			cpu.PortWrite(port, st.value)
		}
	}
}
