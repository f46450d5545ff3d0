package ir

// Mode tags the width/kind of value a node produces. It plays the role of
// libFirm's ir_mode: two nodes can only belong to the same GVN value class
// if their modes match.
type Mode int

const (
	ModeInvalid Mode = iota
	ModeCtrl         // control token; never produced by a data node in this IR
	ModeMem          // memory/effect token, threaded through Load/Store/Call
	ModeTuple        // multiple-result node (Load, Call); consumed via Proj
	ModeI1
	ModeI32
	ModeI64
	ModeF64
	ModePtr
)

func (m Mode) String() string {
	switch m {
	case ModeCtrl:
		return "ctrl"
	case ModeMem:
		return "mem"
	case ModeTuple:
		return "T"
	case ModeI1:
		return "i1"
	case ModeI32:
		return "i32"
	case ModeI64:
		return "i64"
	case ModeF64:
		return "f64"
	case ModePtr:
		return "ptr"
	default:
		return "invalid"
	}
}

// ModeIsData reports whether m is a mode an arithmetic/comparison
// operation can produce. Memory, control and tuple modes are not data.
func ModeIsData(m Mode) bool {
	switch m {
	case ModeI1, ModeI32, ModeI64, ModeF64, ModePtr:
		return true
	default:
		return false
	}
}
