package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRand struct {
	f float64
	n int
}

func (r stubRand) Float64() float64 { return r.f }
func (r stubRand) IntN(int) int     { return r.n }

func newTestDetector(t *testing.T, rnd Randomizer) (*Detector, *MockVelocityStore, time.Time) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := NewMockVelocityStore(ctrl)
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

	d := NewDetector(store, rnd)
	d.now = func() time.Time { return now }
	return d, store, now
}

func expectHistory(store *MockVelocityStore, now time.Time, user string, avg float64, hasAvg bool, recent int64) {
	store.EXPECT().AverageAmount(gomock.Any(), user).Return(avg, hasAvg, nil)
	store.EXPECT().Record(gomock.Any(), user, now, gomock.Any()).Return(nil)
	store.EXPECT().CountSince(gomock.Any(), user, now.Add(-time.Hour)).Return(recent, nil)
}

func signalTypes(score *models.FraudScore) []string {
	var types []string
	for _, s := range score.Alerts {
		types = append(types, s.Type+":"+s.Severity)
	}
	return types
}

func TestDetector_Score(t *testing.T) {
	tests := []struct {
		name      string
		in        ScoreInput
		avg       float64
		hasAvg    bool
		recent    int64
		rnd       stubRand
		wantScore int
		wantTypes []string
	}{
		{
			name:      "clean transaction",
			in:        ScoreInput{FromUser: "u1", Amount: 50},
			hasAvg:    false,
			recent:    1,
			rnd:       stubRand{f: 0.9},
			wantScore: 0,
		},
		{
			name:      "velocity medium",
			in:        ScoreInput{FromUser: "u1", Amount: 50},
			recent:    11,
			rnd:       stubRand{f: 0.9},
			wantScore: 30,
			wantTypes: []string{"velocity:medium"},
		},
		{
			name:      "velocity high",
			in:        ScoreInput{FromUser: "u1", Amount: 50},
			recent:    16,
			rnd:       stubRand{f: 0.9},
			wantScore: 30,
			wantTypes: []string{"velocity:high"},
		},
		// avg is the average before this transaction. Folding the amount in
		// first would halve the gap and hide most anomalies.
		{
			name:      "amount above average",
			in:        ScoreInput{FromUser: "u1", Amount: 650},
			avg:       100,
			hasAvg:    true,
			recent:    2,
			rnd:       stubRand{f: 0.9},
			wantScore: 25,
			wantTypes: []string{"amount:medium"},
		},
		{
			name:      "amount far above average",
			in:        ScoreInput{FromUser: "u1", Amount: 1550},
			avg:       100,
			hasAvg:    true,
			recent:    2,
			rnd:       stubRand{f: 0.9},
			wantScore: 25,
			wantTypes: []string{"amount:high"},
		},
		{
			name:      "average wins over absolute threshold",
			in:        ScoreInput{FromUser: "u1", Amount: 1550},
			avg:       1000,
			hasAvg:    true,
			recent:    2,
			rnd:       stubRand{f: 0.9},
			wantScore: 0,
		},
		{
			name:      "absolute threshold without history",
			in:        ScoreInput{FromUser: "u1", Amount: 1550},
			recent:    1,
			rnd:       stubRand{f: 0.9},
			wantScore: 25,
			wantTypes: []string{"amount:medium"},
		},
		{
			name:      "location anomaly",
			in:        ScoreInput{FromUser: "u1", Amount: 50, Location: "Kano"},
			recent:    1,
			rnd:       stubRand{f: 0.1},
			wantScore: 20,
			wantTypes: []string{"location:medium"},
		},
		{
			name:      "location check misses",
			in:        ScoreInput{FromUser: "u1", Amount: 50, Location: "Lagos"},
			recent:    1,
			rnd:       stubRand{f: 0.5},
			wantScore: 0,
		},
		{
			name:      "round amount",
			in:        ScoreInput{FromUser: "u1", Amount: 500},
			recent:    1,
			rnd:       stubRand{f: 0.9},
			wantScore: 15,
			wantTypes: []string{"pattern:low"},
		},
		{
			name:      "unusual hour",
			in:        ScoreInput{FromUser: "u1", Amount: 50, Timestamp: time.Date(2024, 3, 14, 3, 15, 0, 0, time.UTC)},
			recent:    1,
			rnd:       stubRand{f: 0.9},
			wantScore: 15,
			wantTypes: []string{"pattern:low"},
		},
		{
			name:      "every rule fires",
			in:        ScoreInput{FromUser: "u1", Amount: 5000, Location: "Kano"},
			avg:       200,
			hasAvg:    true,
			recent:    20,
			rnd:       stubRand{f: 0.1},
			wantScore: 90,
			wantTypes: []string{"velocity:high", "amount:high", "location:medium", "pattern:low"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, store, now := newTestDetector(t, tt.rnd)
			expectHistory(store, now, tt.in.FromUser, tt.avg, tt.hasAvg, tt.recent)

			got, err := d.Score(context.Background(), tt.in)
			require.NoError(t, err)

			assert.Equal(t, tt.wantScore, got.RiskScore)
			assert.Equal(t, tt.wantTypes, signalTypes(got))
			assert.Equal(t, now, got.Timestamp)
			assert.NotNil(t, got.Alerts)
		})
	}
}

func TestDetector_Score_Anonymous(t *testing.T) {
	d, _, _ := newTestDetector(t, stubRand{f: 0.9})

	got, err := d.Score(context.Background(), ScoreInput{Amount: 1550})
	require.NoError(t, err)

	assert.Equal(t, 25, got.RiskScore)
	assert.Equal(t, []string{"amount:medium"}, signalTypes(got))
}

func TestDetector_Score_StoredTransactionNotRecordedAgain(t *testing.T) {
	d, store, now := newTestDetector(t, stubRand{f: 0.9})

	// No Record expectation: the transaction was counted when it was created.
	store.EXPECT().AverageAmount(gomock.Any(), "user-1").Return(100.0, true, nil)
	store.EXPECT().CountSince(gomock.Any(), "user-1", now.Add(-time.Hour)).Return(int64(1), nil)

	got, err := d.Score(context.Background(), ScoreInput{TransactionID: "t1", FromUser: "user-1", Amount: 120})
	require.NoError(t, err)
	assert.Zero(t, got.RiskScore)
	assert.Empty(t, got.Alerts)
}

func TestDetector_Score_StoreErrors(t *testing.T) {
	storeErr := errors.New("redis down")

	t.Run("average", func(t *testing.T) {
		d, store, _ := newTestDetector(t, stubRand{})
		store.EXPECT().AverageAmount(gomock.Any(), "u1").Return(0.0, false, storeErr)

		_, err := d.Score(context.Background(), ScoreInput{FromUser: "u1", Amount: 10})
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("record", func(t *testing.T) {
		d, store, _ := newTestDetector(t, stubRand{})
		store.EXPECT().AverageAmount(gomock.Any(), "u1").Return(0.0, false, nil)
		store.EXPECT().Record(gomock.Any(), "u1", gomock.Any(), 10.0).Return(storeErr)

		_, err := d.Score(context.Background(), ScoreInput{FromUser: "u1", Amount: 10})
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("count", func(t *testing.T) {
		d, store, _ := newTestDetector(t, stubRand{})
		store.EXPECT().AverageAmount(gomock.Any(), "u1").Return(0.0, false, nil)
		store.EXPECT().Record(gomock.Any(), "u1", gomock.Any(), 10.0).Return(nil)
		store.EXPECT().CountSince(gomock.Any(), "u1", gomock.Any()).Return(int64(0), storeErr)

		_, err := d.Score(context.Background(), ScoreInput{FromUser: "u1", Amount: 10})
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestDetector_UserRiskScore(t *testing.T) {
	tests := []struct {
		name      string
		count     int64
		noise     int
		wantBase  int
		wantScore int
	}{
		{name: "new user", count: 0, noise: 7, wantBase: 0, wantScore: 7},
		{name: "some activity", count: 10, noise: 5, wantBase: 20, wantScore: 25},
		{name: "base is capped", count: 400, noise: 19, wantBase: 50, wantScore: 69},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, store, _ := newTestDetector(t, stubRand{n: tt.noise})
			store.EXPECT().Count(gomock.Any(), "u1").Return(tt.count, nil)

			got, err := d.UserRiskScore(context.Background(), "u1")
			require.NoError(t, err)

			assert.Equal(t, "u1", got.UserID)
			assert.Equal(t, tt.wantScore, got.RiskScore)
			assert.Equal(t, tt.count, got.Factors.TransactionFrequency)
			assert.Equal(t, tt.wantBase, got.Factors.BaseScore)
		})
	}

	t.Run("store error", func(t *testing.T) {
		d, store, _ := newTestDetector(t, stubRand{})
		store.EXPECT().Count(gomock.Any(), "u1").Return(int64(0), errors.New("redis down"))

		_, err := d.UserRiskScore(context.Background(), "u1")
		assert.Error(t, err)
	})
}
