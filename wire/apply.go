package wire

import (
	"github.com/celestiaorg/amt"
)

// ApplyInsert decodes an InsertRequest and inserts its record into t.
func ApplyInsert(t *amt.Tree, b []byte) error {
	var req InsertRequest
	if err := Unmarshal(b, &req); err != nil {
		return err
	}
	proof, err := req.Proof.ToProof()
	if err != nil {
		return err
	}
	return t.Insert(req.Record, proof)
}

// ApplyUpdate decodes an UpdateRequest and applies it to t.
func ApplyUpdate(t *amt.Tree, b []byte) error {
	var req UpdateRequest
	if err := Unmarshal(b, &req); err != nil {
		return err
	}
	proof, err := req.Proof.ToProof()
	if err != nil {
		return err
	}
	return t.Update(req.OldRecord, req.NewRecord, proof)
}

// ApplyVerify decodes a VerifyRequest and checks its record's membership in t.
// Undecodable requests verify as false.
func ApplyVerify(t *amt.Tree, b []byte) bool {
	var req VerifyRequest
	if err := Unmarshal(b, &req); err != nil {
		return false
	}
	proof, err := req.Proof.ToProof()
	if err != nil {
		return false
	}
	return t.VerifyMembership(req.Record, proof)
}
