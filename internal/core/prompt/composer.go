// Package prompt renders the recommendation prompt sent to the completion
// provider. Rendering is pure: the same Data always yields the same bytes.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/yonder/experience-recommender/internal/core/domain"
)

//go:embed prompt.tmpl
var defaultTemplate string

const defaultCount = 3

// RedeemedEntry is an experience the member already redeemed.
type RedeemedEntry struct {
	Title        string
	RedeemedDate string
	PriceRange   string
}

// TransactionEntry is a card transaction, with Amount pre-formatted.
type TransactionEntry struct {
	Date     string
	Merchant string
	Category string
	Amount   string
}

// CandidateEntry is a not-yet-redeemed experience offered to the model.
type CandidateEntry struct {
	ID          string
	Title       string
	Category    string
	Location    string
	PriceRange  string
	Rating      string
	Description string
}

// Data is the view model the template is executed against.
type Data struct {
	Name               string
	Location           string
	SpendingCategories []string
	Redeemed           []RedeemedEntry
	Transactions       []TransactionEntry
	Candidates         []CandidateEntry
	// Slots numbers the recommendation lines of the output format.
	Slots []int
}

// NewData builds the view model for a member against the experience catalog.
// count is the number of recommendations requested; values < 1 fall back to 3.
func NewData(user domain.User, experiences []domain.Experience, count int) Data {
	if count < 1 {
		count = defaultCount
	}

	d := Data{
		Name:               user.Name,
		Location:           user.Location,
		SpendingCategories: domain.SpendingCategories(user.CardTransactions),
		Slots:              make([]int, count),
	}
	for i := range d.Slots {
		d.Slots[i] = i + 1
	}

	for _, r := range domain.ResolveOffers(user.PastRedeemedOffers, experiences) {
		d.Redeemed = append(d.Redeemed, RedeemedEntry{
			Title:        r.Experience.Title,
			RedeemedDate: r.RedeemedDate,
			PriceRange:   r.Experience.PriceRange,
		})
	}

	for _, tx := range user.CardTransactions {
		if tx.MerchantName == "" {
			continue
		}
		d.Transactions = append(d.Transactions, TransactionEntry{
			Date:     tx.Date,
			Merchant: tx.MerchantName,
			Category: tx.Category,
			Amount:   strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		})
	}

	_, notRedeemed := domain.PartitionExperiences(user.PastRedeemedOffers, experiences)
	for _, e := range notRedeemed {
		d.Candidates = append(d.Candidates, toCandidate(e))
	}

	return d
}

func toCandidate(e domain.Experience) CandidateEntry {
	desc := e.ShortDescription
	if desc == "" {
		desc = e.LongDescription
	}
	var rating string
	if e.Rating > 0 {
		rating = strconv.FormatFloat(e.Rating, 'f', 1, 64)
	}
	return CandidateEntry{
		ID:          e.ExperienceID,
		Title:       e.Title,
		Category:    e.Category,
		Location:    e.Location,
		PriceRange:  e.PriceRange,
		Rating:      rating,
		Description: desc,
	}
}

// Composer renders Data into prompt text.
type Composer struct {
	tmpl *template.Template
}

// NewComposer parses the prompt template once. When custom is non-empty it
// replaces the embedded default.
func NewComposer(custom string) (*Composer, error) {
	src := defaultTemplate
	if custom != "" {
		src = custom
	}

	tmpl, err := template.New("prompt").
		Option("missingkey=error").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	return &Composer{tmpl: tmpl}, nil
}

// Compose executes the template against d.
func (c *Composer) Compose(d Data) (string, error) {
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
