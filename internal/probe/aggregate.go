package probe

import (
	"time"

	"linkwatch/internal/models"
)

// Aggregate folds per-target samples into the single status record for the
// run. Success percentage uses integer division, so 32/33 probes lands on
// 96 rather than 97, and packet loss is always its exact complement.
func Aggregate(timestamp time.Time, samples []models.ProbeSample) models.StatusRecord {
	var sent, received int
	var rtts []time.Duration
	for _, s := range samples {
		sent += s.Sent
		received += s.Received
		rtts = append(rtts, s.RTTs...)
	}

	rec := models.StatusRecord{
		Timestamp: timestamp,
		Status:    models.StatusDown,
	}
	if sent > 0 {
		rec.SuccessPercentage = received * 100 / sent
	}
	rec.PacketLoss = 100 - rec.SuccessPercentage

	switch {
	case rec.SuccessPercentage == 100:
		rec.Status = models.StatusFullyUp
	case rec.SuccessPercentage > 0:
		rec.Status = models.StatusPartiallyUp
	}

	// Latency stats cover successful probes only. A fully down run keeps
	// them nil rather than reporting zero milliseconds.
	if len(rtts) > 0 {
		minMS := toMillis(rtts[0])
		maxMS := minMS
		var sum float64
		for _, rtt := range rtts {
			v := toMillis(rtt)
			sum += v
			if v < minMS {
				minMS = v
			}
			if v > maxMS {
				maxMS = v
			}
		}
		avg := sum / float64(len(rtts))
		rec.AvgLatencyMS = &avg
		rec.MaxLatencyMS = &maxMS
		rec.MinLatencyMS = &minMS
	}

	return rec
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
