package p2p

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/cenkalti/backoff"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Announcer introduces this node to its seed peers by POSTing the node's own
// address to each seed's /nodes/register endpoint. Seeds may come up in any
// order, so each registration is retried with exponential backoff until it
// succeeds or the context ends.
type Announcer struct {
	self  string // this node's host:port as peers should reach it
	seeds []string
	http  *http.Client
}

func NewAnnouncer(self string, seeds []string) *Announcer {
	return &Announcer{
		self:  self,
		seeds: seeds,
		http:  &http.Client{Timeout: DefaultFetchTimeout},
	}
}

// Run announces to every seed concurrently and returns once all announcements
// have either succeeded or given up.
func (a *Announcer) Run(ctx context.Context) {
	done := make(chan struct{})
	for _, seed := range a.seeds {
		go func(seed string) {
			defer func() { done <- struct{}{} }()
			a.announce(ctx, seed)
		}(seed)
	}
	for range a.seeds {
		<-done
	}
}

func (a *Announcer) announce(ctx context.Context, seed string) {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)

	err := backoff.Retry(func() error {
		return a.register(ctx, seed)
	}, policy)
	if err != nil {
		logrus.Warnf("giving up announcing to seed %s: %+v", seed, err)
		return
	}
	logrus.Infof("registered with seed peer %s", seed)
}

func (a *Announcer) register(ctx context.Context, seed string) error {
	body, err := json.Marshal(map[string][]string{
		"nodes": {"http://" + a.self},
	})
	if err != nil {
		return backoff.Permanent(err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, "http://"+seed+"/nodes/register", bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "registering with %s", seed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return errors.Newf("seed %s answered registration with status %d", seed, resp.StatusCode)
	}
	return nil
}
