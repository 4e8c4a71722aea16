package domain

// SpendingCategories returns the distinct, non-empty transaction categories
// in first-seen order.
func SpendingCategories(txs []CardTransaction) []string {
	seen := make(map[string]struct{}, len(txs))
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		if tx.Category == "" {
			continue
		}
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}
	return out
}

// RedeemedExperience pairs an offer with the experience it references.
type RedeemedExperience struct {
	Experience   Experience
	RedeemedDate string
}

// ResolveOffers maps offers to catalog experiences in offer order.
// Offers that reference an unknown experience are skipped.
func ResolveOffers(offers []PastRedeemedOffer, experiences []Experience) []RedeemedExperience {
	byID := make(map[string]Experience, len(experiences))
	for _, e := range experiences {
		byID[e.ExperienceID] = e
	}

	out := make([]RedeemedExperience, 0, len(offers))
	for _, o := range offers {
		exp, ok := byID[o.ExperienceID]
		if !ok {
			continue
		}
		out = append(out, RedeemedExperience{Experience: exp, RedeemedDate: o.RedeemedDate})
	}
	return out
}

// RedeemedTitles returns the titles of the experiences referenced by offers,
// in offer order.
func RedeemedTitles(offers []PastRedeemedOffer, experiences []Experience) []string {
	resolved := ResolveOffers(offers, experiences)
	titles := make([]string, len(resolved))
	for i, r := range resolved {
		titles[i] = r.Experience.Title
	}
	return titles
}

// PartitionExperiences splits the catalog into experiences referenced by the
// offers and the rest. Membership is decided by identifier; catalog order is
// kept in both pools and every experience lands in exactly one of them.
func PartitionExperiences(offers []PastRedeemedOffer, experiences []Experience) (redeemed, notRedeemed []Experience) {
	ids := make(map[string]struct{}, len(offers))
	for _, o := range offers {
		ids[o.ExperienceID] = struct{}{}
	}

	redeemed = make([]Experience, 0, len(ids))
	notRedeemed = make([]Experience, 0, len(experiences))
	for _, e := range experiences {
		if _, ok := ids[e.ExperienceID]; ok {
			redeemed = append(redeemed, e)
		} else {
			notRedeemed = append(notRedeemed, e)
		}
	}
	return redeemed, notRedeemed
}
