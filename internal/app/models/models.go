package models

import (
	"fmt"
	"strings"
)

// Gender restricts which hostels a student is offered
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ParseGender accepts the casings the backend and users send (MALE, male, Male)
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Rank is one of the three ordinal preference slots
type Rank int

// Ranks in preference order
const (
	RankFirst Rank = iota
	RankSecond
	RankThird
)

// RankCount is the number of preference slots
const RankCount = 3

// Ranks lists every rank in preference order
var Ranks = [RankCount]Rank{RankFirst, RankSecond, RankThird}

// String returns the rank's display name
func (r Rank) String() string {
	switch r {
	case RankFirst:
		return "first"
	case RankSecond:
		return "second"
	case RankThird:
		return "third"
	default:
		return fmt.Sprintf("rank(%d)", int(r))
	}
}

// Valid reports whether r is one of the three ranks
func (r Rank) Valid() bool {
	return r >= RankFirst && r <= RankThird
}
