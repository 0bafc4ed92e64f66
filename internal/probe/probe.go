package probe

import (
	"context"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"linkwatch/internal/models"
)

// Prober sends a fixed batch of ICMP echo requests per target. A probe that
// gets no reply within the per-probe timeout is counted as lost; there are no
// retries beyond the fixed count.
type Prober struct {
	count      int
	timeout    time.Duration
	interval   time.Duration
	privileged bool
}

// New creates a Prober. With privileged false the prober uses unprivileged
// UDP echo sockets, which work without CAP_NET_RAW on Linux.
func New(count int, timeout, interval time.Duration, privileged bool) *Prober {
	return &Prober{
		count:      count,
		timeout:    timeout,
		interval:   interval,
		privileged: privileged,
	}
}

// Probe sends the batch at a single target. The returned sample is usable
// even when err is non-nil: a target that could not be probed at all counts
// as a full batch of lost packets.
func (p *Prober) Probe(ctx context.Context, target string) (models.ProbeSample, error) {
	lost := models.ProbeSample{Target: target, Sent: p.count}

	pinger, err := probing.NewPinger(target)
	if err != nil {
		return lost, err
	}

	pinger.Count = p.count
	pinger.Interval = p.interval
	// Budget for the whole batch: one send interval between probes plus a
	// full per-probe timeout for the final reply.
	pinger.Timeout = p.interval*time.Duration(p.count-1) + p.timeout
	pinger.SetPrivileged(p.privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return lost, err
	}

	stats := pinger.Statistics()
	return models.ProbeSample{
		Target:   target,
		Sent:     stats.PacketsSent,
		Received: stats.PacketsRecv,
		RTTs:     stats.Rtts,
	}, nil
}
