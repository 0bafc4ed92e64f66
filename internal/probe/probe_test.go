package probe

import (
	"context"
	"testing"
	"time"
)

func TestProberLocalhost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping probe integration test in short mode")
	}

	p := New(3, 2*time.Second, 100*time.Millisecond, false)

	sample, err := p.Probe(context.Background(), "127.0.0.1")
	if err != nil {
		t.Skipf("skipping, ICMP sockets not available in this environment: %v", err)
	}

	if sample.Target != "127.0.0.1" {
		t.Errorf("expected target 127.0.0.1, got %q", sample.Target)
	}
	if sample.Received > sample.Sent {
		t.Errorf("received %d exceeds sent %d", sample.Received, sample.Sent)
	}
	if len(sample.RTTs) != sample.Received {
		t.Errorf("expected %d RTTs, got %d", sample.Received, len(sample.RTTs))
	}
}

func TestProberUnresolvableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping probe integration test in short mode")
	}

	p := New(5, time.Second, 100*time.Millisecond, false)

	sample, err := p.Probe(context.Background(), "host.invalid")
	if err == nil {
		t.Fatal("expected an error for an unresolvable host")
	}

	// A target that cannot be probed still counts as a full lost batch
	if sample.Sent != 5 || sample.Received != 0 {
		t.Errorf("expected 5 sent / 0 received, got %d/%d", sample.Sent, sample.Received)
	}
}
