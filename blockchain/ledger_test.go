package blockchain

import (
	"context"
	"testing"
)

func TestNewLedgerSeedsGenesis(t *testing.T) {
	ledger := NewLedger()

	if got := ledger.Length(); got != 1 {
		t.Fatalf("Length() = %d, want 1", got)
	}

	genesis, err := ledger.LastBlock()
	if err != nil {
		t.Fatalf("LastBlock() failed: %v", err)
	}
	if genesis.Index != 1 {
		t.Errorf("genesis index = %d, want 1", genesis.Index)
	}
	if genesis.Proof != genesisProof {
		t.Errorf("genesis proof = %d, want %d", genesis.Proof, genesisProof)
	}
	if genesis.PreviousHash != "" {
		t.Errorf("genesis previous hash = %q, want empty", genesis.PreviousHash)
	}
	if len(genesis.Transactions) != 0 {
		t.Errorf("genesis has %d transactions, want 0", len(genesis.Transactions))
	}
}

func TestNewTransactionReturnsNextIndex(t *testing.T) {
	ledger := NewLedger()

	if got := ledger.NewTransaction("A", "B", 5); got != 2 {
		t.Errorf("NewTransaction() = %d, want 2", got)
	}
	if got := ledger.NewTransaction("B", "C", 3); got != 2 {
		t.Errorf("NewTransaction() = %d, want 2 before any block is minted", got)
	}

	proof, err := Solve(context.Background(), genesisProof)
	if err != nil {
		t.Fatalf("Solve() failed: %v", err)
	}
	ledger.NewBlock(proof, "")

	if got := ledger.NewTransaction("C", "D", 1); got != 3 {
		t.Errorf("NewTransaction() = %d, want 3 after minting a block", got)
	}
}

func TestNewBlockSnapshotsAndClearsPool(t *testing.T) {
	ledger := NewLedger()

	ledger.NewTransaction("A", "B", 5)
	ledger.NewTransaction("B", "C", 3)

	proof, err := Solve(context.Background(), genesisProof)
	if err != nil {
		t.Fatalf("Solve() failed: %v", err)
	}
	block := ledger.NewBlock(proof, "")

	want := []Transaction{
		{Sender: "A", Recipient: "B", Amount: 5},
		{Sender: "B", Recipient: "C", Amount: 3},
	}
	if len(block.Transactions) != len(want) {
		t.Fatalf("block has %d transactions, want %d", len(block.Transactions), len(want))
	}
	for i, tx := range want {
		if block.Transactions[i] != tx {
			t.Errorf("transaction %d = %+v, want %+v (insertion order must be preserved)", i, block.Transactions[i], tx)
		}
	}
	if got := ledger.PendingCount(); got != 0 {
		t.Errorf("PendingCount() = %d after minting, want 0", got)
	}

	// An immediate second block carries no transactions.
	next := ledger.NewBlock(proof, "ignored")
	if len(next.Transactions) != 0 {
		t.Errorf("immediate follow-up block has %d transactions, want 0", len(next.Transactions))
	}
	if next.Transactions == nil {
		t.Error("follow-up block transactions should be an empty slice, not nil")
	}
}

// The reference lifecycle end to end: genesis, one queued transaction, one
// mined block with correct linkage.
func TestLedgerMintScenario(t *testing.T) {
	ledger := NewLedger()
	genesis, err := ledger.LastBlock()
	if err != nil {
		t.Fatalf("LastBlock() failed: %v", err)
	}

	if got := ledger.NewTransaction("A", "B", 5); got != 2 {
		t.Fatalf("NewTransaction() = %d, want 2", got)
	}

	proof, err := Solve(context.Background(), genesis.Proof)
	if err != nil {
		t.Fatalf("Solve() failed: %v", err)
	}
	block := ledger.NewBlock(proof, "")

	if got := ledger.Length(); got != 2 {
		t.Errorf("Length() = %d, want 2", got)
	}
	if len(block.Transactions) != 1 || block.Transactions[0] != (Transaction{Sender: "A", Recipient: "B", Amount: 5}) {
		t.Errorf("block transactions = %+v, want the single queued transaction", block.Transactions)
	}
	if want := DigestBlock(genesis); block.PreviousHash != want {
		t.Errorf("block previous hash = %q, want digest of genesis %q", block.PreviousHash, want)
	}
	if !ValidProof(genesis.Proof, block.Proof) {
		t.Errorf("ValidProof(%d, %d) = false, want true", genesis.Proof, block.Proof)
	}
	if !ValidChain(ledger.Chain()) {
		t.Error("ValidChain() = false for a chain grown through the ledger")
	}
}

func TestMineAppendsRewardAndLinksBlock(t *testing.T) {
	ledger := NewLedger()
	ledger.NewTransaction("A", "B", 5)

	block, err := ledger.Mine(context.Background(), "node-identity")
	if err != nil {
		t.Fatalf("Mine() failed: %v", err)
	}

	if got := len(block.Transactions); got != 2 {
		t.Fatalf("mined block has %d transactions, want queued + reward = 2", got)
	}
	reward := block.Transactions[len(block.Transactions)-1]
	if reward.Sender != RewardSender || reward.Recipient != "node-identity" || reward.Amount != RewardAmount {
		t.Errorf("reward transaction = %+v, want {%s node-identity %d}", reward, RewardSender, RewardAmount)
	}
	if !ValidChain(ledger.Chain()) {
		t.Error("ValidChain() = false after Mine()")
	}
	if got := ledger.PendingCount(); got != 0 {
		t.Errorf("PendingCount() = %d after Mine(), want 0", got)
	}
}

func TestChainReturnsCopy(t *testing.T) {
	ledger := NewLedger()

	chain := ledger.Chain()
	chain[0].Proof = 999999

	genesis, err := ledger.LastBlock()
	if err != nil {
		t.Fatalf("LastBlock() failed: %v", err)
	}
	if genesis.Proof != genesisProof {
		t.Error("mutating the slice returned by Chain() leaked into the ledger")
	}
}
