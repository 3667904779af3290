package entity

import "time"

// Solution is produced by a successful solve and never modified afterwards.
type Solution struct {
	Id           string
	SubjectValue string
	Subject      string
	Question     string
	Answer       string
	Steps        []string
	Verification string
	Timestamp    time.Time
}
