package blockchain

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const (
	genesisProof = 100

	// RewardSender is the sender address used on mining reward transactions.
	RewardSender = "0"
	// RewardAmount is the fixed reward paid out per mined block.
	RewardAmount = 1
)

// ErrEmptyChain is returned by operations that need a last block when the
// chain has none. NewLedger always seeds a genesis block, so this should be
// unreachable in a normal lifecycle.
var ErrEmptyChain = errors.New("ledger has no blocks")

// Ledger owns the hash-linked chain of blocks and the pool of transactions
// waiting to be minted into the next one. One mutex guards both as a single
// atomic unit: a mining commit never observes a transaction queued after the
// pool was snapshotted, and a chain replacement never interleaves with an
// in-flight NewBlock.
type Ledger struct {
	mu      sync.Mutex
	chain   []Block
	pending []Transaction
}

// NewLedger creates a ledger seeded with its genesis block (index 1, a fixed
// placeholder proof, and no predecessor).
func NewLedger() *Ledger {
	l := &Ledger{}
	l.chain = append(l.chain, Block{
		Index:        1,
		Timestamp:    time.Now().UnixNano(),
		Transactions: []Transaction{},
		Proof:        genesisProof,
		PreviousHash: "",
	})
	return l
}

// NewTransaction queues a transaction for inclusion in the next minted block
// and returns the index of the block that will eventually contain it. Inputs
// are accepted as-is; address and amount validation is out of scope.
func (l *Ledger) NewTransaction(sender, recipient string, amount int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	})

	return int64(len(l.chain)) + 1
}

// NewBlock mints a block from the current pending pool and appends it to the
// chain. The pool is cleared; its contents become the block's transactions.
// An empty previousHash defaults to the digest of the current last block.
// This is the only path by which the chain grows.
func (l *Ledger) NewBlock(proof int64, previousHash string) Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.newBlockLocked(proof, previousHash)
}

func (l *Ledger) newBlockLocked(proof int64, previousHash string) Block {
	if previousHash == "" && len(l.chain) > 0 {
		previousHash = DigestBlock(l.chain[len(l.chain)-1])
	}

	transactions := l.pending
	if transactions == nil {
		transactions = []Transaction{}
	}
	l.pending = nil

	block := Block{
		Index:        int64(len(l.chain)) + 1,
		Timestamp:    time.Now().UnixNano(),
		Transactions: transactions,
		Proof:        proof,
		PreviousHash: previousHash,
	}

	l.chain = append(l.chain, block)
	return block
}

// LastBlock returns the chain's final block.
func (l *Ledger) LastBlock() (Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.chain) == 0 {
		return Block{}, ErrEmptyChain
	}
	return l.chain[len(l.chain)-1], nil
}

// Chain returns a copy of the full chain.
func (l *Ledger) Chain() []Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	chain := make([]Block, len(l.chain))
	copy(chain, l.chain)
	return chain
}

// Length returns the number of blocks in the chain.
func (l *Ledger) Length() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.chain)
}

// PendingCount returns the number of transactions waiting to be minted.
func (l *Ledger) PendingCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Mine runs the proof-of-work search against the current head and commits a
// new block holding the pending pool plus the reward transaction for
// rewardRecipient. The search runs outside the ledger lock; at commit time
// the proof is re-validated against the current head, since a concurrent
// chain replacement may have made it stale, in which case the search restarts
// from the new head. Blocks the caller for an unbounded duration unless the
// context is cancelled.
func (l *Ledger) Mine(ctx context.Context, rewardRecipient string) (Block, error) {
	for {
		l.mu.Lock()
		if len(l.chain) == 0 {
			l.mu.Unlock()
			return Block{}, ErrEmptyChain
		}
		lastProof := l.chain[len(l.chain)-1].Proof
		l.mu.Unlock()

		proof, err := Solve(ctx, lastProof)
		if err != nil {
			return Block{}, errors.Wrap(err, "proof-of-work search interrupted")
		}

		l.mu.Lock()
		head := l.chain[len(l.chain)-1]
		if head.Proof != lastProof && !ValidProof(head.Proof, proof) {
			// The chain moved underneath the solve and the proof no longer
			// fits the new head. Restart against the current head.
			l.mu.Unlock()
			logrus.Debugf("proof %d went stale against new head %d, re-solving", proof, head.Index)
			continue
		}

		l.pending = append(l.pending, Transaction{
			Sender:    RewardSender,
			Recipient: rewardRecipient,
			Amount:    RewardAmount,
		})
		block := l.newBlockLocked(proof, "")
		l.mu.Unlock()

		logrus.Infof("forged block %d with %d transactions (proof %d)", block.Index, len(block.Transactions), block.Proof)
		return block, nil
	}
}

// replaceIfLonger swaps the chain for candidate when it is strictly longer
// than the current one. Returns whether the replacement happened.
func (l *Ledger) replaceIfLonger(candidate []Block) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(candidate) <= len(l.chain) {
		return false
	}
	l.chain = candidate
	return true
}
