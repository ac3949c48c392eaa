package scoring

import (
	"math"
	"sort"

	"github.com/memalihaider/techverse-portal/internal/models"
)

// Categories lists the six sub-score categories in reporting order.
var Categories = []string{
	"innovation",
	"feasibility",
	"market_potential",
	"presentation",
	"technical",
	"business_model",
}

// Summary is the aggregate of all evaluations for one participant.
// AverageTotal and AverageByCategory are nil when no evaluation exists yet;
// a missing average is never rendered as zero.
type Summary struct {
	Count             int                `json:"count"`
	AverageTotal      *int               `json:"average_total"`
	AverageByCategory map[string]float64 `json:"average_by_category,omitempty"`
	Latest            *models.Evaluation `json:"latest,omitempty"`
}

func categoryScores(e *models.Evaluation) map[string]int {
	return map[string]int{
		"innovation":       e.Innovation,
		"feasibility":      e.Feasibility,
		"market_potential": e.MarketPotential,
		"presentation":     e.Presentation,
		"technical":        e.Technical,
		"business_model":   e.BusinessModel,
	}
}

// Aggregate reduces one participant's evaluations into a Summary. The total
// average rounds to the nearest integer, category averages to one decimal
// place, and Latest is the evaluation with the highest timestamp.
func Aggregate(evals []models.Evaluation) Summary {
	s := Summary{Count: len(evals)}
	if len(evals) == 0 {
		return s
	}

	sums := make(map[string]int, len(Categories))
	total := 0
	latest := 0
	for i := range evals {
		e := &evals[i]
		total += e.TotalScore
		for cat, v := range categoryScores(e) {
			sums[cat] += v
		}
		if e.Timestamp > evals[latest].Timestamp {
			latest = i
		}
	}

	avg := int(math.Round(float64(total) / float64(len(evals))))
	s.AverageTotal = &avg
	s.AverageByCategory = make(map[string]float64, len(Categories))
	for _, cat := range Categories {
		mean := float64(sums[cat]) / float64(len(evals))
		s.AverageByCategory[cat] = math.Round(mean*10) / 10
	}
	s.Latest = &evals[latest]

	return s
}

// Row is one leaderboard line.
type Row struct {
	Rank           int     `json:"rank"`
	RegistrationID int64   `json:"registration_id"`
	Team           string  `json:"team"`
	Name           string  `json:"name"`
	Phase          string  `json:"current_phase"`
	Scores         Summary `json:"scores"`

	// RegisteredAt feeds the tie-break and stays out of responses.
	RegisteredAt int64 `json:"-"`
}

// Rank orders rows best-first by average total and assigns 1-based ranks.
// Participants without any evaluation sort after everyone else (ordering key
// zero) while keeping their nil average. Ties break by earlier registration
// time, then by lower registration ID, so the ordering is deterministic.
func Rank(rows []Row) []Row {
	sort.SliceStable(rows, func(i, j int) bool {
		si, sj := orderingScore(rows[i].Scores), orderingScore(rows[j].Scores)
		if si != sj {
			return si > sj
		}
		if rows[i].RegisteredAt != rows[j].RegisteredAt {
			return rows[i].RegisteredAt < rows[j].RegisteredAt
		}
		return rows[i].RegistrationID < rows[j].RegistrationID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// orderingScore treats a missing average as zero for sorting purposes only.
func orderingScore(s Summary) int {
	if s.AverageTotal == nil {
		return 0
	}
	return *s.AverageTotal
}
