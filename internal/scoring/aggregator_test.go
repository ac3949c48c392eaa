package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memalihaider/techverse-portal/internal/models"
)

func eval(total int, ts int64) models.Evaluation {
	// Spread the total across categories so category averages stay in range.
	per := total / 6
	e := models.Evaluation{
		Innovation:      per,
		Feasibility:     per,
		MarketPotential: per,
		Presentation:    per,
		Technical:       per,
		BusinessModel:   total - 5*per,
		Timestamp:       ts,
	}
	e.ComputeTotal()
	return e
}

func TestAggregate(t *testing.T) {
	t.Run("no evaluations", func(t *testing.T) {
		s := Aggregate(nil)
		assert.Equal(t, 0, s.Count)
		assert.Nil(t, s.AverageTotal)
		assert.Nil(t, s.AverageByCategory)
		assert.Nil(t, s.Latest)
	})

	t.Run("all perfect scores", func(t *testing.T) {
		evals := []models.Evaluation{eval(60, 1), eval(60, 2), eval(60, 3)}
		s := Aggregate(evals)
		require.NotNil(t, s.AverageTotal)
		assert.Equal(t, 60, *s.AverageTotal)
		for _, cat := range Categories {
			assert.Equal(t, 10.0, s.AverageByCategory[cat])
		}
	})

	t.Run("average total rounds to nearest int", func(t *testing.T) {
		evals := []models.Evaluation{eval(30, 1), eval(31, 2)}
		s := Aggregate(evals)
		require.NotNil(t, s.AverageTotal)
		assert.Equal(t, 31, *s.AverageTotal) // 30.5 rounds up
	})

	t.Run("category averages to one decimal and in range", func(t *testing.T) {
		evals := []models.Evaluation{
			{Innovation: 7, Feasibility: 5, MarketPotential: 3, Presentation: 8, Technical: 10, BusinessModel: 0, Timestamp: 1},
			{Innovation: 8, Feasibility: 5, MarketPotential: 4, Presentation: 9, Technical: 9, BusinessModel: 1, Timestamp: 2},
		}
		for i := range evals {
			evals[i].ComputeTotal()
		}

		s := Aggregate(evals)
		assert.Equal(t, 7.5, s.AverageByCategory["innovation"])
		assert.Equal(t, 5.0, s.AverageByCategory["feasibility"])
		assert.Equal(t, 3.5, s.AverageByCategory["market_potential"])
		for _, cat := range Categories {
			assert.GreaterOrEqual(t, s.AverageByCategory[cat], 0.0)
			assert.LessOrEqual(t, s.AverageByCategory[cat], 10.0)
		}
	})

	t.Run("latest picks max timestamp", func(t *testing.T) {
		evals := []models.Evaluation{eval(10, 300), eval(20, 100), eval(30, 200)}
		s := Aggregate(evals)
		require.NotNil(t, s.Latest)
		assert.Equal(t, int64(300), s.Latest.Timestamp)
	})
}

func TestRank(t *testing.T) {
	avg := func(v int) *int { return &v }

	t.Run("best first with 1-based ranks", func(t *testing.T) {
		rows := Rank([]Row{
			{RegistrationID: 1, Scores: Summary{Count: 2, AverageTotal: avg(40)}},
			{RegistrationID: 2, Scores: Summary{Count: 2, AverageTotal: avg(55)}},
			{RegistrationID: 3, Scores: Summary{Count: 1, AverageTotal: avg(48)}},
		})

		assert.Equal(t, int64(2), rows[0].RegistrationID)
		assert.Equal(t, int64(3), rows[1].RegistrationID)
		assert.Equal(t, int64(1), rows[2].RegistrationID)
		for i, row := range rows {
			assert.Equal(t, i+1, row.Rank)
		}
	})

	t.Run("unevaluated participants sort last with nil average", func(t *testing.T) {
		rows := Rank([]Row{
			{RegistrationID: 1, Scores: Summary{}},
			{RegistrationID: 2, Scores: Summary{Count: 1, AverageTotal: avg(12)}},
		})

		assert.Equal(t, int64(2), rows[0].RegistrationID)
		assert.Equal(t, int64(1), rows[1].RegistrationID)
		assert.Nil(t, rows[1].Scores.AverageTotal)
	})

	t.Run("ties break by earlier registration then id", func(t *testing.T) {
		rows := Rank([]Row{
			{RegistrationID: 7, RegisteredAt: 2000, Scores: Summary{Count: 1, AverageTotal: avg(50)}},
			{RegistrationID: 5, RegisteredAt: 1000, Scores: Summary{Count: 1, AverageTotal: avg(50)}},
			{RegistrationID: 4, RegisteredAt: 2000, Scores: Summary{Count: 1, AverageTotal: avg(50)}},
		})

		assert.Equal(t, int64(5), rows[0].RegistrationID)
		assert.Equal(t, int64(4), rows[1].RegistrationID)
		assert.Equal(t, int64(7), rows[2].RegistrationID)
	})
}
