package handler

import (
	"legatia/internal/identity/models"
	"legatia/pkg/optional"
	"legatia/pkg/platform/httputil"
)

// ProfileResponse is the wire shape of a profile.
type ProfileResponse struct {
	UserID         string                 `json:"user_id"`
	FullName       string                 `json:"full_name"`
	SurnameAtBirth string                 `json:"surname_at_birth"`
	Sex            string                 `json:"sex"`
	Birthday       optional.Value[string] `json:"birthday"`
	BirthCity      optional.Value[string] `json:"birth_city"`
	BirthCountry   optional.Value[string] `json:"birth_country"`
	CreatedAt      int64                  `json:"created_at"`
	UpdatedAt      int64                  `json:"updated_at"`
}

func FromProfile(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:         p.UserID.String(),
		FullName:       p.FullName,
		SurnameAtBirth: p.SurnameAtBirth,
		Sex:            p.Sex,
		Birthday:       nonEmpty(p.Birthday),
		BirthCity:      nonEmpty(p.BirthCity),
		BirthCountry:   nonEmpty(p.BirthCountry),
		CreatedAt:      httputil.Nanos(p.CreatedAt),
		UpdatedAt:      httputil.Nanos(p.UpdatedAt),
	}
}

// UserMatchResponse is one user search result.
type UserMatchResponse struct {
	UserID         string `json:"user_id"`
	FullName       string `json:"full_name"`
	SurnameAtBirth string `json:"surname_at_birth"`
}

func FromUserMatches(matches []models.UserMatch) []UserMatchResponse {
	out := make([]UserMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, UserMatchResponse{
			UserID:         m.UserID.String(),
			FullName:       m.FullName,
			SurnameAtBirth: m.SurnameAtBirth,
		})
	}
	return out
}

func nonEmpty(s string) optional.Value[string] {
	if s == "" {
		return optional.None[string]()
	}
	return optional.Some(s)
}
