package domain

// PastRedeemedOffer links a member to an experience they already redeemed.
type PastRedeemedOffer struct {
	ExperienceID string `json:"experience_id" bson:"experience_id" validate:"required"`
	RedeemedDate string `json:"redeemed_date" bson:"redeemed_date" validate:"required"`
}

// CardTransaction is a single card payment made by a member.
type CardTransaction struct {
	TransactionID string  `json:"transaction_id" bson:"transaction_id" validate:"required"`
	Date          string  `json:"date"           bson:"date"           validate:"required"`
	MerchantName  string  `json:"merchant_name"  bson:"merchant_name"`
	Category      string  `json:"category"       bson:"category"`
	Amount        float64 `json:"amount"         bson:"amount"`
}

// User models a programme member as stored in the catalog.
type User struct {
	MemberID           string              `json:"member_id"            bson:"member_id"            validate:"required"`
	Name               string              `json:"name"                 bson:"name"                 validate:"required"`
	Location           string              `json:"location"             bson:"location"`
	PastRedeemedOffers []PastRedeemedOffer `json:"past_redeemed_offers" bson:"past_redeemed_offers" validate:"required,dive"`
	CardTransactions   []CardTransaction   `json:"card_transactions"    bson:"card_transactions"    validate:"required,dive"`
}
