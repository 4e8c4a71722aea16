package handler

import (
	"html"
	"strings"

	"github.com/yonder/experience-recommender/internal/core/domain"
)

// --- Domain → Response ---

func toUserSummaries(users []domain.User) []userSummary {
	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary{UserID: u.MemberID, Name: u.Name})
	}
	return out
}

func toExperienceSummaries(exps []domain.Experience) []experienceSummary {
	out := make([]experienceSummary, 0, len(exps))
	for _, e := range exps {
		out = append(out, experienceSummary{
			Title:            e.Title,
			Category:         e.Category,
			Location:         e.Location,
			PriceRange:       escapeOnce(e.PriceRange),
			ShortDescription: e.ShortDescription,
		})
	}
	return out
}

func toExperienceResponse(e domain.Experience) experienceResponse {
	return experienceResponse{
		ExperienceID:     e.ExperienceID,
		Title:            e.Title,
		Category:         e.Category,
		ShortDescription: e.ShortDescription,
		LongDescription:  e.LongDescription,
		Location:         e.Location,
		PriceRange:       escapeOnce(e.PriceRange),
		Rating:           e.Rating,
		Images:           nonNil(e.Images),
		AvailableDates:   nonNil(e.AvailableDates),
	}
}

// escapeOnce HTML-escapes s. Already escaped input is unescaped first, so
// escapeOnce(escapeOnce(s)) == escapeOnce(s).
func escapeOnce(s string) string {
	return html.EscapeString(html.UnescapeString(s))
}

// recommendationHTML escapes provider text and turns line breaks into <br>.
func recommendationHTML(text string) string {
	escaped := html.EscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
