package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"goledger/api/handlers"
	"goledger/blockchain"
	"goledger/p2p"
)

// Config carries everything the HTTP surface needs. The ledger instance and
// node identity are injected here rather than living in package globals.
type Config struct {
	Ledger  *blockchain.Ledger
	Peers   *p2p.PeerSet
	Fetcher blockchain.ChainFetcher
	NodeID  string
	Port    string
}

// Server exposes the ledger's operations over HTTP.
type Server struct {
	config Config
	mux    *http.ServeMux
}

// NewServer creates the HTTP server and wires up its routes.
func NewServer(config Config) *Server {
	server := &Server{
		config: config,
		mux:    http.NewServeMux(),
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP endpoints.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/mine", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleMine(w, r, s.config.Ledger, s.config.NodeID)
	})
	s.mux.HandleFunc("/transactions/new", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleNewTransaction(w, r, s.config.Ledger)
	})
	s.mux.HandleFunc("/chain", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleChain(w, r, s.config.Ledger)
	})
	s.mux.HandleFunc("/nodes/register", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleRegisterNodes(w, r, s.config.Peers)
	})
	s.mux.HandleFunc("/nodes/resolve", func(w http.ResponseWriter, r *http.Request) {
		handlers.HandleResolve(w, r, s.config.Ledger, s.config.Peers, s.config.Fetcher)
	})
}

// Handler returns the route multiplexer, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins serving HTTP requests (blocks forever).
func (s *Server) Start() error {
	logrus.Infof("node %s serving HTTP on port %s", s.config.NodeID, s.config.Port)
	return http.ListenAndServe(":"+s.config.Port, s.mux)
}
