package ast

import (
	"fmt"
	"sync/atomic"
)

// NodeID identifies a node inside one item tree.
//
// Builders never know the final numbering, so they hand out placeholders:
// process-unique values with the high bit set. IDAssigner replaces them
// with dense ids once a tree is complete.
type NodeID uint32

const (
	// NoNodeID is the id of nodes that were never numbered.
	NoNodeID NodeID = 0

	placeholderBit NodeID = 1 << 31
)

var placeholderSeq atomic.Uint32

// NewPlaceholderID returns a fresh placeholder id.
func NewPlaceholderID() NodeID {
	n := placeholderSeq.Add(1)
	if NodeID(n)&placeholderBit != 0 {
		panic("ast: placeholder node ids exhausted")
	}
	return placeholderBit | NodeID(n)
}

func (id NodeID) IsValid() bool { return id != NoNodeID }

// IsPlaceholder reports whether id still awaits assignment.
func (id NodeID) IsPlaceholder() bool { return id&placeholderBit != 0 }

func (id NodeID) String() string {
	if id.IsPlaceholder() {
		return fmt.Sprintf("?%d", uint32(id&^placeholderBit))
	}
	return fmt.Sprintf("#%d", uint32(id))
}
