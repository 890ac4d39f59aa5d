package ast

import "github.com/pijago/pijago/lang/token"

// Chunk is the root of a parsed source file: a single top-level Block plus
// the file name it came from, kept separate from Block so that an empty
// file still has a valid (zero-width) location.
type Chunk struct {
	Name  string
	Block *Block
	EOF   token.Location
}

func (n *Chunk) Loc() token.Location {
	if n.Block != nil {
		return n.Block.Loc()
	}
	return n.EOF
}
func (n *Chunk) Walk(v Visitor) {
	if n.Block != nil {
		Walk(v, n.Block)
	}
}
