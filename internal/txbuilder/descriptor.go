package txbuilder

import (
	"fmt"
	"strings"
)

// ArgKind discriminates descriptor arguments
type ArgKind string

const (
	// ArgObject references a ledger object by id
	ArgObject ArgKind = "object"
	// ArgPure is a plain serialized value
	ArgPure ArgKind = "pure"
	// ArgGasCoin references the coin split from the signer's gas balance
	ArgGasCoin ArgKind = "gas_coin"
)

// Argument is one input to a move call
type Argument struct {
	Kind   ArgKind     `json:"kind"`
	Object string      `json:"object,omitempty"`
	Value  interface{} `json:"value,omitempty"`
}

// Object builds an object-reference argument
func Object(id string) Argument {
	return Argument{Kind: ArgObject, Object: id}
}

// Pure builds a plain value argument
func Pure(v interface{}) Argument {
	return Argument{Kind: ArgPure, Value: v}
}

// GasCoin builds an argument referencing the gas-split coin
func GasCoin() Argument {
	return Argument{Kind: ArgGasCoin}
}

// TxDescriptor is an unsigned, serializable transaction plan: one move call,
// an optional payment split from the signer's gas balance, and an optional
// transfer of the call result. Descriptors carry no signatures and perform
// no I/O; the wallet integration signs and submits them.
type TxDescriptor struct {
	Nonce            string     `json:"nonce"`
	Target           string     `json:"target"` // package::module::function
	GasSplitMist     uint64     `json:"gasSplitMist,omitempty"`
	Args             []Argument `json:"args"`
	TransferResultTo string     `json:"transferResultTo,omitempty"`
}

// canonical renders the descriptor's identity-relevant fields as a stable
// string, used to derive the nonce and predicted handles
func (d *TxDescriptor) canonical() string {
	var sb strings.Builder
	sb.WriteString(d.Target)
	fmt.Fprintf(&sb, "|gas=%d", d.GasSplitMist)
	for _, arg := range d.Args {
		switch arg.Kind {
		case ArgObject:
			fmt.Fprintf(&sb, "|obj=%s", arg.Object)
		case ArgGasCoin:
			sb.WriteString("|gascoin")
		default:
			fmt.Fprintf(&sb, "|pure=%v", arg.Value)
		}
	}
	sb.WriteString("|to=" + d.TransferResultTo)
	return sb.String()
}
