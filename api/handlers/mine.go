package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"goledger/blockchain"
)

// HandleMine runs the proof-of-work search against the chain head, awards the
// node its mining reward, and commits the new block. The search is unbounded,
// so the request context is threaded through: a disconnecting client stops
// the solve instead of leaking a busy goroutine.
func HandleMine(w http.ResponseWriter, r *http.Request, ledger *blockchain.Ledger, nodeID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	block, err := ledger.Mine(r.Context(), nodeID)
	if err != nil {
		logrus.Warnf("mining aborted: %+v", err)
		http.Error(w, "Mining aborted", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"message":       "New Block Forged",
		"index":         block.Index,
		"transactions":  block.Transactions,
		"proof":         block.Proof,
		"previous_hash": block.PreviousHash,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
