package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"goledger/blockchain"
)

func TestHandleMine(t *testing.T) {
	ledger := blockchain.NewLedger()
	ledger.NewTransaction("A", "B", 5)

	req := httptest.NewRequest(http.MethodGet, "/mine", nil)
	rec := httptest.NewRecorder()

	HandleMine(rec, req, ledger, "test-node")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var response struct {
		Message      string                   `json:"message"`
		Index        int64                    `json:"index"`
		Transactions []blockchain.Transaction `json:"transactions"`
		Proof        int64                    `json:"proof"`
		PreviousHash string                   `json:"previous_hash"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	if response.Message != "New Block Forged" {
		t.Errorf("message = %q, want %q", response.Message, "New Block Forged")
	}
	if response.Index != 2 {
		t.Errorf("index = %d, want 2", response.Index)
	}
	if len(response.Transactions) != 2 {
		t.Fatalf("mined block has %d transactions, want queued + reward = 2", len(response.Transactions))
	}
	reward := response.Transactions[1]
	if reward.Sender != blockchain.RewardSender || reward.Recipient != "test-node" || reward.Amount != blockchain.RewardAmount {
		t.Errorf("reward transaction = %+v, want {0 test-node 1}", reward)
	}
	if response.PreviousHash == "" {
		t.Error("previous_hash is empty, want digest of genesis")
	}
	if ledger.Length() != 2 {
		t.Errorf("ledger length = %d after /mine, want 2", ledger.Length())
	}
}

func TestHandleMineRejectsPost(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/mine", nil)
	rec := httptest.NewRecorder()

	HandleMine(rec, req, blockchain.NewLedger(), "test-node")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
