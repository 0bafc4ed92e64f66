package probe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkwatch/internal/models"
)

func sample(sent, received int, rtts ...time.Duration) models.ProbeSample {
	return models.ProbeSample{Target: "8.8.8.8", Sent: sent, Received: received, RTTs: rtts}
}

func TestAggregateFullyUp(t *testing.T) {
	rec := Aggregate(time.Now(), []models.ProbeSample{
		sample(3, 3, 10*time.Millisecond, 20*time.Millisecond, 30*time.Millisecond),
	})

	assert.Equal(t, models.StatusFullyUp, rec.Status)
	assert.Equal(t, 100, rec.SuccessPercentage)
	assert.Equal(t, 0, rec.PacketLoss)

	require.NotNil(t, rec.AvgLatencyMS)
	require.NotNil(t, rec.MinLatencyMS)
	require.NotNil(t, rec.MaxLatencyMS)
	assert.InDelta(t, 20.0, *rec.AvgLatencyMS, 0.001)
	assert.InDelta(t, 10.0, *rec.MinLatencyMS, 0.001)
	assert.InDelta(t, 30.0, *rec.MaxLatencyMS, 0.001)
}

func TestAggregateSuccessPercentageFloors(t *testing.T) {
	// 32/33 is 96.97%, stored as 96 with integer division
	rtts := make([]time.Duration, 32)
	for i := range rtts {
		rtts[i] = 15 * time.Millisecond
	}
	rec := Aggregate(time.Now(), []models.ProbeSample{sample(33, 32, rtts...)})

	assert.Equal(t, models.StatusPartiallyUp, rec.Status)
	assert.Equal(t, 96, rec.SuccessPercentage)
	assert.Equal(t, 4, rec.PacketLoss)
}

func TestAggregateDown(t *testing.T) {
	rec := Aggregate(time.Now(), []models.ProbeSample{sample(33, 0)})

	assert.Equal(t, models.StatusDown, rec.Status)
	assert.Equal(t, 0, rec.SuccessPercentage)
	assert.Equal(t, 100, rec.PacketLoss)
	assert.Nil(t, rec.AvgLatencyMS)
	assert.Nil(t, rec.MinLatencyMS)
	assert.Nil(t, rec.MaxLatencyMS)
}

func TestAggregateNoSamples(t *testing.T) {
	rec := Aggregate(time.Now(), nil)

	assert.Equal(t, models.StatusDown, rec.Status)
	assert.Equal(t, 0, rec.SuccessPercentage)
	assert.Equal(t, 100, rec.PacketLoss)
	assert.Nil(t, rec.AvgLatencyMS)
}

func TestAggregatePoolsTargets(t *testing.T) {
	rec := Aggregate(time.Now(), []models.ProbeSample{
		sample(10, 10, 10*time.Millisecond),
		{Target: "1.1.1.1", Sent: 10, Received: 5, RTTs: []time.Duration{50 * time.Millisecond}},
	})

	// 15/20 pooled across both targets
	assert.Equal(t, 75, rec.SuccessPercentage)
	assert.Equal(t, 25, rec.PacketLoss)
	assert.Equal(t, models.StatusPartiallyUp, rec.Status)

	require.NotNil(t, rec.MinLatencyMS)
	assert.InDelta(t, 10.0, *rec.MinLatencyMS, 0.001)
	assert.InDelta(t, 50.0, *rec.MaxLatencyMS, 0.001)
}

func TestAggregateInvariants(t *testing.T) {
	cases := []struct {
		name     string
		sent     int
		received int
	}{
		{"all lost", 33, 0},
		{"one received", 33, 1},
		{"half", 33, 16},
		{"all but one", 33, 32},
		{"all received", 33, 33},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rtts := make([]time.Duration, tc.received)
			for i := range rtts {
				rtts[i] = time.Duration(i+1) * time.Millisecond
			}
			rec := Aggregate(time.Now(), []models.ProbeSample{sample(tc.sent, tc.received, rtts...)})

			assert.GreaterOrEqual(t, rec.SuccessPercentage, 0)
			assert.LessOrEqual(t, rec.SuccessPercentage, 100)
			assert.Equal(t, 100, rec.SuccessPercentage+rec.PacketLoss)

			if tc.received == 0 {
				assert.Nil(t, rec.AvgLatencyMS)
			} else {
				require.NotNil(t, rec.AvgLatencyMS)
				assert.GreaterOrEqual(t, *rec.AvgLatencyMS, *rec.MinLatencyMS)
				assert.LessOrEqual(t, *rec.AvgLatencyMS, *rec.MaxLatencyMS)
			}
		})
	}
}
