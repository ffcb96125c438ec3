package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"goledger/blockchain"
)

// transactionRequest uses pointers so that absent fields can be told apart
// from zero values.
type transactionRequest struct {
	Sender    *string `json:"sender"`
	Recipient *string `json:"recipient"`
	Amount    *int64  `json:"amount"`
}

// HandleNewTransaction queues a transaction for the next mined block. The
// ledger accepts any sender/recipient/amount as-is; the only request-level
// error is a missing field, which leaves the chain untouched.
func HandleNewTransaction(w http.ResponseWriter, r *http.Request, ledger *blockchain.Ledger) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Missing values", http.StatusBadRequest)
		return
	}
	if req.Sender == nil || req.Recipient == nil || req.Amount == nil {
		http.Error(w, "Missing values", http.StatusBadRequest)
		return
	}

	index := ledger.NewTransaction(*req.Sender, *req.Recipient, *req.Amount)

	response := map[string]string{
		"message": fmt.Sprintf("Transaction will be added to Block %d", index),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}
