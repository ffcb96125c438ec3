package p2p

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/grandcat/zeroconf"
	"github.com/sirupsen/logrus"
)

const (
	mdnsService = "_goledger._tcp"
	mdnsDomain  = "local."
)

// Discovery announces this node over mDNS and feeds other announced instances
// into the peer set, so nodes on the same LAN find each other without manual
// registration. Best-effort: lookup failures are logged and skipped.
type Discovery struct {
	instance string // unique per node, used to ignore our own announcement
	port     int
	peers    *PeerSet
	server   *zeroconf.Server
}

func NewDiscovery(instance string, port int, peers *PeerSet) *Discovery {
	return &Discovery{instance: instance, port: port, peers: peers}
}

// Start registers the node's service record and begins browsing for other
// instances until the context ends.
func (d *Discovery) Start(ctx context.Context) error {
	server, err := zeroconf.Register(d.instance, mdnsService, mdnsDomain, d.port, []string{"txtv=0"}, nil)
	if err != nil {
		return errors.Wrap(err, "registering mDNS service")
	}
	d.server = server

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		d.server.Shutdown()
		return errors.Wrap(err, "creating mDNS resolver")
	}

	entries := make(chan *zeroconf.ServiceEntry)
	go d.collect(entries)

	if err := resolver.Browse(ctx, mdnsService, mdnsDomain, entries); err != nil {
		d.server.Shutdown()
		return errors.Wrap(err, "browsing for peers")
	}

	logrus.Infof("mDNS discovery running as %q on port %d", d.instance, d.port)
	return nil
}

func (d *Discovery) collect(entries <-chan *zeroconf.ServiceEntry) {
	for entry := range entries {
		if entry.Instance == d.instance {
			continue
		}
		for _, ip := range entry.AddrIPv4 {
			address := fmt.Sprintf("%s:%d", ip, entry.Port)
			if err := d.peers.Add(address); err != nil {
				logrus.Warnf("discovered unusable peer %q: %v", address, err)
				continue
			}
			logrus.Infof("discovered peer %s (%s)", address, entry.Instance)
		}
	}
}

// Stop withdraws the node's mDNS record.
func (d *Discovery) Stop() {
	if d.server != nil {
		d.server.Shutdown()
	}
}
