// Package monitor polls fuel levels periodically.
package monitor

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/fuel.go/pkg/protocol"
	"github.com/robotalks/fuel.go/pkg/session"
)

// SampleHandler consumes decoded samples.
type SampleHandler interface {
	HandleSamples([]protocol.Sample) error
}

// HandleSamplesFunc is the func form of SampleHandler.
type HandleSamplesFunc func([]protocol.Sample) error

// HandleSamples implements SampleHandler.
func (f HandleSamplesFunc) HandleSamples(samples []protocol.Sample) error {
	return f(samples)
}

// Poller queries on every interval and dispatches samples to handlers.
type Poller struct {
	Controller *session.Controller
	NSamples   uint16
	Interval   time.Duration
	// Count limits the number of polls, 0 for unlimited.
	Count    int
	Handlers []SampleHandler
	// ErrorHandler is called on failed polls, default logs the error.
	ErrorHandler func(error)
}

// DefaultInterval is used when Interval is not set.
const DefaultInterval = 5 * time.Second

// NewPoller creates a Poller.
func NewPoller(ctl *session.Controller, nSamples uint16, handlers ...SampleHandler) *Poller {
	return &Poller{
		Controller: ctl,
		NSamples:   nSamples,
		Interval:   DefaultInterval,
		Handlers:   handlers,
	}
}

// Name implements framework.Named.
func (p *Poller) Name() string {
	return "poller"
}

// PollOnce queries once and dispatches the samples.
func (p *Poller) PollOnce() error {
	samples, err := p.Controller.Do(p.NSamples)
	if err != nil {
		return err
	}
	glog.V(1).Infof("received %d samples", len(samples))
	for _, h := range p.Handlers {
		if err := h.HandleSamples(samples); err != nil {
			return err
		}
	}
	return nil
}

// Run implements framework.Runnable.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for n := 0; p.Count == 0 || n < p.Count; n++ {
		if n > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		if err := p.PollOnce(); err != nil {
			p.handleError(err)
		}
	}
	return nil
}

func (p *Poller) handleError(err error) {
	if h := p.ErrorHandler; h != nil {
		h(err)
		return
	}
	glog.Warningf("poll failed: %v", err)
}
