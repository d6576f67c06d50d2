// Package wire defines the messages a host uses to carry records and proofs
// to a tree. The message layout is described in wire.proto.
package wire

import (
	"errors"
	"fmt"

	"github.com/gogo/protobuf/proto"

	"github.com/celestiaorg/amt"
)

var ErrNilStep = errors.New("nil proof step")

type ProofStep struct {
	Sibling   []byte `protobuf:"bytes,1,opt,name=sibling,proto3" json:"sibling,omitempty"`
	Direction uint32 `protobuf:"varint,2,opt,name=direction,proto3" json:"direction,omitempty"`
}

func (m *ProofStep) Reset()         { *m = ProofStep{} }
func (m *ProofStep) String() string { return proto.CompactTextString(m) }
func (*ProofStep) ProtoMessage()    {}

type Proof struct {
	Steps []*ProofStep `protobuf:"bytes,1,rep,name=steps,proto3" json:"steps,omitempty"`
}

func (m *Proof) Reset()         { *m = Proof{} }
func (m *Proof) String() string { return proto.CompactTextString(m) }
func (*Proof) ProtoMessage()    {}

type InsertRequest struct {
	Record []byte `protobuf:"bytes,1,opt,name=record,proto3" json:"record,omitempty"`
	Proof  *Proof `protobuf:"bytes,2,opt,name=proof,proto3" json:"proof,omitempty"`
}

func (m *InsertRequest) Reset()         { *m = InsertRequest{} }
func (m *InsertRequest) String() string { return proto.CompactTextString(m) }
func (*InsertRequest) ProtoMessage()    {}

type UpdateRequest struct {
	OldRecord []byte `protobuf:"bytes,1,opt,name=old_record,json=oldRecord,proto3" json:"old_record,omitempty"`
	NewRecord []byte `protobuf:"bytes,2,opt,name=new_record,json=newRecord,proto3" json:"new_record,omitempty"`
	Proof     *Proof `protobuf:"bytes,3,opt,name=proof,proto3" json:"proof,omitempty"`
}

func (m *UpdateRequest) Reset()         { *m = UpdateRequest{} }
func (m *UpdateRequest) String() string { return proto.CompactTextString(m) }
func (*UpdateRequest) ProtoMessage()    {}

type VerifyRequest struct {
	Record []byte `protobuf:"bytes,1,opt,name=record,proto3" json:"record,omitempty"`
	Proof  *Proof `protobuf:"bytes,2,opt,name=proof,proto3" json:"proof,omitempty"`
}

func (m *VerifyRequest) Reset()         { *m = VerifyRequest{} }
func (m *VerifyRequest) String() string { return proto.CompactTextString(m) }
func (*VerifyRequest) ProtoMessage()    {}

func init() {
	proto.RegisterType((*ProofStep)(nil), "amt.wire.ProofStep")
	proto.RegisterType((*Proof)(nil), "amt.wire.Proof")
	proto.RegisterType((*InsertRequest)(nil), "amt.wire.InsertRequest")
	proto.RegisterType((*UpdateRequest)(nil), "amt.wire.UpdateRequest")
	proto.RegisterType((*VerifyRequest)(nil), "amt.wire.VerifyRequest")
}

// FromProof converts an amt.Proof into its wire form.
func FromProof(p amt.Proof) *Proof {
	steps := make([]*ProofStep, len(p))
	for i, step := range p {
		steps[i] = &ProofStep{
			Sibling:   step.Sibling.Bytes(),
			Direction: uint32(step.Direction),
		}
	}
	return &Proof{Steps: steps}
}

// ToProof converts m back into an amt.Proof, rejecting siblings of the wrong
// size and unknown directions. A nil message is the empty proof, which is
// what a single record tree needs.
func (m *Proof) ToProof() (amt.Proof, error) {
	if m == nil {
		return amt.Proof{}, nil
	}
	p := make(amt.Proof, len(m.Steps))
	for i, step := range m.Steps {
		if step == nil {
			return nil, fmt.Errorf("%w: step %d", ErrNilStep, i)
		}
		sibling, err := amt.DigestFromBytes(step.Sibling)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if step.Direction > 0xFF || !amt.Direction(step.Direction).Valid() {
			return nil, fmt.Errorf("%w: step %d: %d", amt.ErrInvalidDirection, i, step.Direction)
		}
		p[i] = amt.ProofStep{Sibling: sibling, Direction: amt.Direction(step.Direction)}
	}
	return p, nil
}

// Marshal encodes any of the wire messages.
func Marshal(m proto.Message) ([]byte, error) {
	return proto.Marshal(m)
}

// Unmarshal decodes b into m.
func Unmarshal(b []byte, m proto.Message) error {
	return proto.Unmarshal(b, m)
}
