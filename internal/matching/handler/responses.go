package handler

import "legatia/internal/matching/models"

type MatchResponse struct {
	FamilyID         string `json:"family_id"`
	FamilyName       string `json:"family_name"`
	MemberID         string `json:"member_id"`
	GhostProfileName string `json:"ghost_profile_name"`
	SimilarityScore  int    `json:"similarity_score"`
}

func FromMatches(matches []models.Match) []MatchResponse {
	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, MatchResponse{
			FamilyID:         m.FamilyID.String(),
			FamilyName:       m.FamilyName,
			MemberID:         m.MemberID.String(),
			GhostProfileName: m.DisplayName,
			SimilarityScore:  m.Score,
		})
	}
	return out
}
