package models

import (
	"github.com/go-playground/validator/v10"
)

// Evaluation is one judge's scoring of one participant in one phase.
// Rows are immutable once created; re-scoring means a new row.
type Evaluation struct {
	ID             int64  `db:"id" json:"id"`
	RegistrationID int64  `db:"registration_id" json:"registration_id" validate:"required"`
	Phase          string `db:"phase" json:"phase" validate:"required"`
	Evaluator      string `db:"evaluator" json:"evaluator" validate:"required,email"`

	Innovation      int `db:"innovation" json:"innovation" validate:"min=0,max=10"`
	Feasibility     int `db:"feasibility" json:"feasibility" validate:"min=0,max=10"`
	MarketPotential int `db:"market_potential" json:"market_potential" validate:"min=0,max=10"`
	Presentation    int `db:"presentation" json:"presentation" validate:"min=0,max=10"`
	Technical       int `db:"technical" json:"technical" validate:"min=0,max=10"`
	BusinessModel   int `db:"business_model" json:"business_model" validate:"min=0,max=10"`

	TotalScore int    `db:"total_score" json:"total_score"`
	Comments   string `db:"comments" json:"comments"`
	Timestamp  int64  `db:"timestamp" json:"timestamp"`
}

func (e *Evaluation) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// ComputeTotal recalculates total_score from the six sub-scores.
func (e *Evaluation) ComputeTotal() int {
	e.TotalScore = e.Innovation + e.Feasibility + e.MarketPotential +
		e.Presentation + e.Technical + e.BusinessModel
	return e.TotalScore
}
