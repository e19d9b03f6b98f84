package extrinsics

import (
	"fmt"
	"math/big"
)

// Weight is the two-dimensional execution cost reported by the node.
type Weight struct {
	RefTime   uint64 `json:"ref_time"`
	ProofSize uint64 `json:"proof_size"`
}

func (w Weight) String() string {
	return fmt.Sprintf("Weight(ref_time: %d, proof_size: %d)", w.RefTime, w.ProofSize)
}

// DryRunOutcome is the read-only result of simulating an extrinsic
// against current chain state. It is produced by the chain RPC
// collaborator and only rendered here, never mutated.
type DryRunOutcome struct {
	GasConsumed    Weight
	GasRequired    Weight
	StorageDeposit *big.Int
	DebugMessage   []byte
}
