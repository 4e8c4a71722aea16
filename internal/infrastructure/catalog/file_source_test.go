package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yonder/experience-recommender/internal/core/domain"
)

const document = `{
  "members": [
    {
      "member_id": "U1",
      "name": "Ada",
      "location": "London",
      "past_redeemed_offers": [{"experience_id": "E1", "redeemed_date": "2024-03-15"}],
      "card_transactions": [
        {"transaction_id": "T1", "date": "2024-04-01", "merchant_name": "Dishoom", "category": "Dining", "amount": 42.5}
      ]
    }
  ],
  "experiences": [
    {
      "experience_id": "E1",
      "title": "Sunset Wine Tasting",
      "category": "Food & Drink",
      "short_description": "Wines at dusk",
      "long_description": "A guided tasting",
      "location": "London",
      "price_range": "£10-£20",
      "rating": 4.6,
      "images": ["wine.jpg"],
      "available_dates": ["2024-06-01"]
    }
  ]
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestFileSource_Document(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.json", document)

	doc, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Members) != 1 || len(doc.Experiences) != 1 {
		t.Fatalf("unexpected sizes: %d members, %d experiences", len(doc.Members), len(doc.Experiences))
	}

	u := doc.Members[0]
	if u.MemberID != "U1" || u.PastRedeemedOffers[0].RedeemedDate != "2024-03-15" {
		t.Errorf("member not decoded: %+v", u)
	}
	if u.CardTransactions[0].Amount != 42.5 || u.CardTransactions[0].MerchantName != "Dishoom" {
		t.Errorf("transaction not decoded: %+v", u.CardTransactions[0])
	}
	e := doc.Experiences[0]
	if e.PriceRange != "£10-£20" || e.Rating != 4.6 || e.AvailableDates[0] != "2024-06-01" {
		t.Errorf("experience not decoded: %+v", e)
	}
}

func TestFileSource_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, usersFile, `[{"member_id":"U1","name":"Ada","past_redeemed_offers":[],"card_transactions":[]}]`)
	writeFile(t, dir, experiencesFile, `[{"experience_id":"E1","title":"Kayak","category":"Outdoors","images":[],"available_dates":[]}]`)

	doc, err := NewFileSource(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Members[0].Name != "Ada" || doc.Experiences[0].Title != "Kayak" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.json")},
		{"malformed json", writeFile(t, dir, "bad.json", `{"members": [`)},
		{"missing members key", writeFile(t, dir, "nomembers.json", `{"experiences": []}`)},
		{"missing experiences key", writeFile(t, dir, "noexp.json", `{"members": []}`)},
		{"wrong type", writeFile(t, dir, "wrongtype.json", `{"members": {}, "experiences": []}`)},
		{"directory without experiences", func() string {
			sub := filepath.Join(dir, "partial")
			_ = os.Mkdir(sub, 0o700)
			writeFile(t, sub, usersFile, `[]`)
			return sub
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileSource(tt.path).Load(context.Background())
			if !errors.Is(err, domain.ErrDataLoad) {
				t.Fatalf("expected ErrDataLoad, got %v", err)
			}
		})
	}
}
