package service

import (
	"strings"

	familymodels "legatia/internal/family/models"
	identitymodels "legatia/internal/identity/models"
)

// Scorer rates how likely a ghost member describes the user, from 0 to 100.
type Scorer interface {
	Score(profile *identitymodels.Profile, member *familymodels.Member) int
}

// Weights of WeightedScorer. They sum to 100.
const (
	WeightFullName        = 35
	WeightFullNamePartial = 15
	WeightSurname         = 25
	WeightSex             = 10
	WeightBirthday        = 20
	WeightBirthYear       = 10
	WeightBirthCity       = 5
	WeightBirthCountry    = 5
)

// WeightedScorer compares fields case-insensitively and adds the weight of
// every field that agrees. A field missing on either side contributes nothing.
type WeightedScorer struct{}

func (WeightedScorer) Score(p *identitymodels.Profile, m *familymodels.Member) int {
	score := 0

	pName, mName := fold(p.FullName), fold(m.FullName)
	switch {
	case pName != "" && pName == mName:
		score += WeightFullName
	case pName != "" && mName != "" && (strings.Contains(pName, mName) || strings.Contains(mName, pName)):
		score += WeightFullNamePartial
	}

	if equalFold(p.SurnameAtBirth, m.SurnameAtBirth) {
		score += WeightSurname
	}
	if equalFold(p.Sex, m.Sex) {
		score += WeightSex
	}

	if birthday, ok := m.Birthday.Get(); ok {
		switch {
		case equalFold(p.Birthday, birthday):
			score += WeightBirthday
		case len(birthday) >= 4 && len(p.Birthday) >= 4 && p.Birthday[:4] == birthday[:4]:
			score += WeightBirthYear
		}
	}
	if city, ok := m.BirthCity.Get(); ok && equalFold(p.BirthCity, city) {
		score += WeightBirthCity
	}
	if country, ok := m.BirthCountry.Get(); ok && equalFold(p.BirthCountry, country) {
		score += WeightBirthCountry
	}
	return min(score, 100)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func equalFold(a, b string) bool {
	a, b = fold(a), fold(b)
	return a != "" && a == b
}
