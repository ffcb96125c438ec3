package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"goledger/blockchain"
	"goledger/p2p"
)

type registerRequest struct {
	Nodes []string `json:"nodes"`
}

// HandleRegisterNodes adds a list of peer addresses to the peer set. Each
// address is reduced to host:port; the set deduplicates.
func HandleRegisterNodes(w http.ResponseWriter, r *http.Request, peers *p2p.PeerSet) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nodes == nil {
		http.Error(w, "Error: Please supply a valid list of nodes", http.StatusBadRequest)
		return
	}

	for _, node := range req.Nodes {
		if err := peers.Add(node); err != nil {
			logrus.Warnf("rejecting peer registration: %v", err)
			http.Error(w, "Error: Please supply a valid list of nodes", http.StatusBadRequest)
			return
		}
	}

	response := map[string]interface{}{
		"message":     "New nodes have been added",
		"total_nodes": peers.Len(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// HandleResolve runs the longest-valid-chain rule against every known peer
// and reports whether the local chain was replaced.
func HandleResolve(w http.ResponseWriter, r *http.Request, ledger *blockchain.Ledger, peers *p2p.PeerSet, fetcher blockchain.ChainFetcher) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	replaced, chain := ledger.ResolveConflicts(r.Context(), peers.Addresses(), fetcher)

	var response map[string]interface{}
	if replaced {
		response = map[string]interface{}{
			"message":   "Our chain was replaced",
			"new_chain": chain,
		}
	} else {
		response = map[string]interface{}{
			"message": "Our chain is authoritative",
			"chain":   chain,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
