package scan

import "postfix/internal/token"

// Decision is what the scanner did with one token.
type Decision uint8

const (
	// Continue: the token belongs to the receiver, keep walking.
	Continue Decision = iota
	// Stop: the receiver starts right after this token.
	Stop
	// PrefixUnary: a run of & * - operators taken into the receiver.
	PrefixUnary
	// PrefixBinary: the leftmost operator of a run is binary and ends the receiver.
	PrefixBinary
	// BraceChain: an else link of an if/else chain.
	BraceChain
	// BraceHead: the if/match keyword that opens a braced construct.
	BraceHead
	// BraceBlock: a plain block; the receiver starts at the brace.
	BraceBlock
	// SubScan: a nested scan of a condition or scrutinee.
	SubScan
)

func (d Decision) String() string {
	switch d {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	case PrefixUnary:
		return "prefix-unary"
	case PrefixBinary:
		return "prefix-binary"
	case BraceChain:
		return "brace-chain"
	case BraceHead:
		return "brace-head"
	case BraceBlock:
		return "brace-block"
	case SubScan:
		return "sub-scan"
	default:
		return "unknown"
	}
}

// Step is reported to a Hook once per decision.
type Step struct {
	Depth    int
	Index    int
	Token    token.Token
	Decision Decision
	Note     string
}

// Hook observes scanner decisions; used for tracing and `explain`.
type Hook func(Step)
