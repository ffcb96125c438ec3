package main

import (
	"context"
	"flag"
	"strings"

	"github.com/sirupsen/logrus"

	"goledger/node"
)

func main() {
	// Command line flags
	httpPort := flag.String("http", "5000", "HTTP API port")
	nodeID := flag.String("id", "", "Node ID (auto-generated if not provided)")
	advertise := flag.String("advertise", "", "host:port peers should reach this node at")
	seeds := flag.String("seeds", "", "Comma-separated seed peers")
	mdns := flag.Bool("mdns", false, "Enable mDNS peer discovery on the local network")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Parse seed peers
	var seedPeers []string
	if *seeds != "" {
		seedPeers = strings.Split(*seeds, ",")
	}

	config := node.Config{
		HTTPPort:         *httpPort,
		NodeID:           *nodeID,
		AdvertiseAddress: *advertise,
		SeedPeers:        seedPeers,
		EnableMDNS:       *mdns,
	}

	n := node.New(config)
	defer n.Stop()

	logrus.Infof("starting ledger node %s on :%s", n.ID(), *httpPort)
	if len(seedPeers) > 0 {
		logrus.Infof("seed peers: %v", seedPeers)
	}

	// This blocks forever
	if err := n.Start(context.Background()); err != nil {
		logrus.Fatalf("node stopped: %+v", err)
	}
}
