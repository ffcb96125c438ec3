package p2p

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"goledger/blockchain"
)

// DefaultFetchTimeout bounds how long a single peer may take to serve its
// chain before the fetch is abandoned.
const DefaultFetchTimeout = 5 * time.Second

// Client fetches chains from peers over HTTP. It implements
// blockchain.ChainFetcher.
type Client struct {
	http *http.Client
}

// NewClient creates a chain-fetching client with a per-peer timeout. A zero
// timeout falls back to DefaultFetchTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

type chainResponse struct {
	Chain  []blockchain.Block `json:"chain"`
	Length int                `json:"length"`
}

// FetchChain retrieves the full chain a peer currently holds via its
// GET /chain endpoint. Non-success responses, malformed payloads, and a
// declared length that disagrees with the blocks actually sent are all
// reported as errors for the caller to skip over.
func (c *Client) FetchChain(ctx context.Context, address string) ([]blockchain.Block, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+address+"/chain", nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building chain request for %s", address)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching chain from %s", address)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("peer %s answered /chain with status %d", address, resp.StatusCode)
	}

	var payload chainResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(err, "decoding chain from %s", address)
	}
	if payload.Length != len(payload.Chain) {
		return nil, errors.Newf("peer %s declared length %d but sent %d blocks", address, payload.Length, len(payload.Chain))
	}

	return payload.Chain, nil
}
