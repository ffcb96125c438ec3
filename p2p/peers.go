package p2p

import (
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// PeerSet tracks the network locations of known peers as deduplicated
// host:port strings. Membership only; there is no health or liveness
// tracking.
type PeerSet struct {
	mu    sync.Mutex
	peers map[string]struct{}
}

func NewPeerSet() *PeerSet {
	return &PeerSet{peers: make(map[string]struct{})}
}

// HostPort reduces a peer address to its network location. Full URLs are
// accepted and stripped to host:port (scheme and path are discarded); bare
// "host:port" strings pass through.
func HostPort(address string) (string, error) {
	raw := address
	if !strings.Contains(raw, "//") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrapf(err, "invalid peer address %q", address)
	}
	if u.Host == "" {
		return "", errors.Newf("invalid peer address %q", address)
	}
	return u.Host, nil
}

// Add registers a peer by address. Adding a known peer is a no-op.
func (ps *PeerSet) Add(address string) error {
	host, err := HostPort(address)
	if err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.peers[host] = struct{}{}
	return nil
}

// Addresses returns a snapshot of all known peers in sorted order, so that
// anything iterating over them (conflict resolution in particular) behaves
// deterministically.
func (ps *PeerSet) Addresses() []string {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	addresses := make([]string, 0, len(ps.peers))
	for peer := range ps.peers {
		addresses = append(addresses, peer)
	}
	sort.Strings(addresses)
	return addresses
}

// Len returns the number of known peers.
func (ps *PeerSet) Len() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.peers)
}
