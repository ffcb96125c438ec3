package blockchain

import (
	"testing"
)

func testBlock() Block {
	return Block{
		Index:     2,
		Timestamp: 1136214245000000000,
		Transactions: []Transaction{
			{Sender: "A", Recipient: "B", Amount: 5},
		},
		Proof:        35293,
		PreviousHash: "aabbcc",
	}
}

func TestDigestBlockStable(t *testing.T) {
	first := DigestBlock(testBlock())
	second := DigestBlock(testBlock())

	if first != second {
		t.Errorf("DigestBlock() not stable: %s != %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("DigestBlock() = %q, want 64 hex characters", first)
	}
}

func TestDigestBlockSensitivity(t *testing.T) {
	base := DigestBlock(testBlock())

	tests := []struct {
		name   string
		mutate func(b *Block)
	}{
		{
			name:   "index change",
			mutate: func(b *Block) { b.Index = 3 },
		},
		{
			name:   "timestamp change",
			mutate: func(b *Block) { b.Timestamp++ },
		},
		{
			name:   "proof change",
			mutate: func(b *Block) { b.Proof++ },
		},
		{
			name:   "previous hash change",
			mutate: func(b *Block) { b.PreviousHash = "ddeeff" },
		},
		{
			name:   "transaction amount change",
			mutate: func(b *Block) { b.Transactions[0].Amount = 6 },
		},
		{
			name:   "transaction recipient change",
			mutate: func(b *Block) { b.Transactions[0].Recipient = "C" },
		},
		{
			name:   "transaction appended",
			mutate: func(b *Block) { b.Transactions = append(b.Transactions, Transaction{Sender: "C", Recipient: "D", Amount: 1}) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := testBlock()
			tt.mutate(&block)

			if got := DigestBlock(block); got == base {
				t.Errorf("DigestBlock() unchanged after %s", tt.name)
			}
		})
	}
}
