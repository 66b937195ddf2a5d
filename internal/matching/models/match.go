package models

import (
	"time"

	id "legatia/pkg/domain"
)

// Match is a ghost member offered to a user as a possible identity. It is
// computed on demand and never persisted.
type Match struct {
	FamilyID    id.FamilyID
	FamilyName  string
	MemberID    id.MemberID
	DisplayName string
	Score       int

	familyCreatedAt time.Time
	position        int
}

func NewMatch(familyID id.FamilyID, familyName string, familyCreatedAt time.Time, memberID id.MemberID, position int, displayName string, score int) Match {
	return Match{
		FamilyID:        familyID,
		FamilyName:      familyName,
		MemberID:        memberID,
		DisplayName:     displayName,
		Score:           score,
		familyCreatedAt: familyCreatedAt,
		position:        position,
	}
}

// Less orders matches by score descending, then oldest family, then family
// id, then member position, so equal scores list deterministically.
func Less(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.familyCreatedAt.Equal(b.familyCreatedAt) {
		return a.familyCreatedAt.Before(b.familyCreatedAt)
	}
	if a.FamilyID != b.FamilyID {
		return a.FamilyID.String() < b.FamilyID.String()
	}
	return a.position < b.position
}
