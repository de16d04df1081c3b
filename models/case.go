package models

import (
	"errors"
	"time"
)

// CaseIsin is one tranche issued under a case
type CaseIsin struct {
	ID         string `db:"id"`
	IsinNumber string `db:"isin_number"`
}

// Case is a structured note / compartment instance with its instruments
type Case struct {
	ID           string     `db:"id"`
	IssueDate    time.Time  `db:"issue_date"`
	MaturityDate time.Time  `db:"maturity_date"`
	Isins        []CaseIsin `db:"-"`
}

// NewCase validates the required fields of a case read from the store
func NewCase(id string, issueDate, maturityDate time.Time, isins []CaseIsin) (*Case, error) {
	if id == "" {
		return nil, errors.New("case id is required")
	}
	if issueDate.IsZero() {
		return nil, errors.New("case issue date is required")
	}
	for _, isin := range isins {
		if isin.ID == "" {
			return nil, errors.New("case isin id is required")
		}
	}

	return &Case{
		ID:           id,
		IssueDate:    DateOf(issueDate),
		MaturityDate: DateOf(maturityDate),
		Isins:        isins,
	}, nil
}
