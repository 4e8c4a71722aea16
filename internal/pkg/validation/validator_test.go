package validation

import (
	"strings"
	"testing"

	"github.com/yonder/experience-recommender/internal/core/domain"
)

func TestStruct_Valid(t *testing.T) {
	u := domain.User{
		MemberID:           "U1",
		Name:               "Ada",
		PastRedeemedOffers: []domain.PastRedeemedOffer{},
		CardTransactions:   []domain.CardTransaction{},
	}
	if err := New().Struct(&u); err != nil {
		t.Fatalf("expected valid user, got %v", err)
	}
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	u := domain.User{
		Name:               "Ada",
		PastRedeemedOffers: []domain.PastRedeemedOffer{{RedeemedDate: "2024-01-01"}},
		CardTransactions:   []domain.CardTransaction{},
	}

	err := New().Struct(&u)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "member_id is required") {
		t.Errorf("missing member_id message: %s", msg)
	}
	if !strings.Contains(msg, "past_redeemed_offers[0].experience_id is required") {
		t.Errorf("missing nested message: %s", msg)
	}
}

func TestStruct_MissingListIsRequired(t *testing.T) {
	e := domain.Experience{ExperienceID: "E1", Title: "Kayak", Category: "Outdoors", Rating: 4}

	err := New().Struct(&e)
	if err == nil || !strings.Contains(err.Error(), "images is required") {
		t.Fatalf("expected images is required, got %v", err)
	}
}

func TestStruct_RatingRange(t *testing.T) {
	e := domain.Experience{
		ExperienceID: "E1", Title: "Kayak", Category: "Outdoors",
		Rating: 7, Images: []string{}, AvailableDates: []string{},
	}

	err := New().Struct(&e)
	if err == nil || !strings.Contains(err.Error(), "rating must be at most 5") {
		t.Fatalf("expected rating range error, got %v", err)
	}
}

func TestValidate_OneOf(t *testing.T) {
	type query struct {
		Format string `json:"format" validate:"omitempty,oneof=html json"`
	}

	if err := New().Validate(&query{Format: "json"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := New().Validate(&query{Format: "xml"})
	if err == nil || !strings.Contains(err.Error(), "format must be one of: html json") {
		t.Fatalf("expected oneof error, got %v", err)
	}
}
