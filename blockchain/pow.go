package blockchain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Difficulty is the number of leading zero hex digits a proof hash must have.
const Difficulty = 4

// ValidProof reports whether proof solves the puzzle set by lastProof:
// sha256(lastProof || proof), both rendered in decimal, must hash to a hex
// digest with Difficulty leading zeros. Pure function, no side effects.
func ValidProof(lastProof, proof int64) bool {
	return validProof(lastProof, proof, Difficulty)
}

func validProof(lastProof, proof int64, difficulty int) bool {
	guess := strconv.FormatInt(lastProof, 10) + strconv.FormatInt(proof, 10)
	sum := sha256.Sum256([]byte(guess))
	digest := hex.EncodeToString(sum[:])

	for i := 0; i < difficulty; i++ {
		if digest[i] != '0' {
			return false
		}
	}
	return true
}

// Solve returns the smallest non-negative proof satisfying the puzzle set by
// lastProof. The search is CPU-bound and unbounded in the worst case (expected
// O(16^Difficulty) tries), so callers must not hold locks across it. The
// context gives best-effort interruption of the search.
func Solve(ctx context.Context, lastProof int64) (int64, error) {
	return solve(ctx, lastProof, Difficulty)
}

func solve(ctx context.Context, lastProof int64, difficulty int) (int64, error) {
	for proof := int64(0); ; proof++ {
		if proof%1024 == 0 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			default:
			}
		}
		if validProof(lastProof, proof, difficulty) {
			return proof, nil
		}
	}
}
