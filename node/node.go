package node

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strconv"

	"github.com/sirupsen/logrus"

	"goledger/api"
	"goledger/blockchain"
	"goledger/p2p"
)

// Config holds all configuration for a ledger node.
type Config struct {
	HTTPPort string
	// NodeID is this node's identity, used as the mining reward recipient.
	// Auto-generated per process when empty; never persisted.
	NodeID string
	// AdvertiseAddress is the host:port peers should reach us at. Defaults
	// to 127.0.0.1 on the HTTP port, which suits single-host setups.
	AdvertiseAddress string
	SeedPeers        []string
	EnableMDNS       bool
}

// Node wires a ledger instance to its HTTP surface and peer machinery. The
// ledger is constructed here and handed to the transport by reference; there
// is no ambient global state.
type Node struct {
	config    Config
	ledger    *blockchain.Ledger
	peers     *p2p.PeerSet
	server    *api.Server
	discovery *p2p.Discovery
}

// New creates a node with a freshly seeded ledger.
func New(config Config) *Node {
	if config.NodeID == "" {
		config.NodeID = newNodeID()
	}
	if config.AdvertiseAddress == "" {
		config.AdvertiseAddress = "127.0.0.1:" + config.HTTPPort
	}

	ledger := blockchain.NewLedger()
	peers := p2p.NewPeerSet()

	server := api.NewServer(api.Config{
		Ledger:  ledger,
		Peers:   peers,
		Fetcher: p2p.NewClient(0),
		NodeID:  config.NodeID,
		Port:    config.HTTPPort,
	})

	return &Node{
		config: config,
		ledger: ledger,
		peers:  peers,
		server: server,
	}
}

// newNodeID generates a process-lifetime identity string.
func newNodeID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Start bootstraps peering and serves HTTP requests (blocks forever).
func (n *Node) Start(ctx context.Context) error {
	n.bootstrap(ctx)
	return n.server.Start()
}

// bootstrap registers seed peers, kicks off seed announcement, and starts
// mDNS discovery when enabled. Peering failures are logged, never fatal.
func (n *Node) bootstrap(ctx context.Context) {
	var seeds []string
	for _, seed := range n.config.SeedPeers {
		host, err := p2p.HostPort(seed)
		if err != nil {
			logrus.Warnf("ignoring seed peer: %v", err)
			continue
		}
		if err := n.peers.Add(host); err != nil {
			logrus.Warnf("ignoring seed peer: %v", err)
			continue
		}
		seeds = append(seeds, host)
	}

	if len(seeds) > 0 {
		announcer := p2p.NewAnnouncer(n.config.AdvertiseAddress, seeds)
		go announcer.Run(ctx)
	}

	if n.config.EnableMDNS {
		port, err := strconv.Atoi(n.config.HTTPPort)
		if err != nil {
			logrus.Warnf("mDNS disabled: HTTP port %q is not numeric", n.config.HTTPPort)
			return
		}
		n.discovery = p2p.NewDiscovery(n.config.NodeID, port, n.peers)
		if err := n.discovery.Start(ctx); err != nil {
			logrus.Warnf("mDNS discovery unavailable: %+v", err)
			n.discovery = nil
		}
	}
}

// Stop withdraws the node from discovery.
func (n *Node) Stop() {
	if n.discovery != nil {
		n.discovery.Stop()
	}
}

// ID returns the node's identity string.
func (n *Node) ID() string {
	return n.config.NodeID
}

// Ledger returns the node's ledger instance.
func (n *Node) Ledger() *blockchain.Ledger {
	return n.ledger
}

// Peers returns the node's peer set.
func (n *Node) Peers() *p2p.PeerSet {
	return n.peers
}
