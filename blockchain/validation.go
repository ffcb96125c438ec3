package blockchain

// ValidChain walks a candidate chain and checks, from the second block
// onward, that each block references its predecessor's digest and that its
// proof solves the puzzle set by the predecessor's proof. A chain of zero or
// one block is vacuously valid. Read-only; the chain under inspection is
// never mutated.
func ValidChain(chain []Block) bool {
	for i := 1; i < len(chain); i++ {
		previous := chain[i-1]
		block := chain[i]

		if block.PreviousHash != DigestBlock(previous) {
			return false
		}
		if !ValidProof(previous.Proof, block.Proof) {
			return false
		}
	}
	return true
}
