package handlers

import (
	"encoding/json"
	"net/http"

	"goledger/blockchain"
)

// HandleChain returns the full chain and its length. This is also the
// endpoint peers read during conflict resolution, so its shape must stay in
// lockstep with the p2p client's expectations.
func HandleChain(w http.ResponseWriter, r *http.Request, ledger *blockchain.Ledger) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	chain := ledger.Chain()

	response := map[string]interface{}{
		"chain":  chain,
		"length": len(chain),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
