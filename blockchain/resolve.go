package blockchain

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ChainFetcher retrieves another node's full chain. Implementations live in
// the transport layer; the resolver only cares about the blocks and whether
// the fetch worked.
type ChainFetcher interface {
	FetchChain(ctx context.Context, address string) ([]Block, error)
}

// ResolveConflicts implements the longest-valid-chain rule. It fetches every
// peer's chain, skipping peers that fail (timeout, bad status, malformed
// payload) without retrying, and tracks the longest chain seen that is both
// strictly longer than the local chain and valid. If one was found the local
// chain is replaced and the call reports true; otherwise the local chain is
// left untouched and the call reports false, in both cases returning the
// chain the ledger holds afterwards.
//
// Peers are visited in the order given; when several peers offer chains of
// the same maximal length, the first one seen wins. Callers wanting
// reproducible tie-breaking should pass a sorted peer list.
func (l *Ledger) ResolveConflicts(ctx context.Context, peers []string, fetcher ChainFetcher) (bool, []Block) {
	maxLength := l.Length()
	var best []Block

	for _, peer := range peers {
		candidate, err := fetcher.FetchChain(ctx, peer)
		if err != nil {
			logrus.Warnf("skipping peer %s: %+v", peer, err)
			continue
		}
		if len(candidate) <= maxLength {
			continue
		}
		if !ValidChain(candidate) {
			logrus.Warnf("peer %s offered an invalid chain of length %d", peer, len(candidate))
			continue
		}
		maxLength = len(candidate)
		best = candidate
	}

	if best != nil && l.replaceIfLonger(best) {
		logrus.Infof("replaced local chain with a %d-block chain from the network", len(best))
		return true, l.Chain()
	}
	return false, l.Chain()
}
