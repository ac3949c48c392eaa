package models

type Evaluator struct {
	Email      string `db:"email" json:"email" validate:"required,email"`
	Name       string `db:"name" json:"name" validate:"required"`
	AccessCode string `db:"access_code" json:"-"`
	Active     bool   `db:"active" json:"active"`
}
