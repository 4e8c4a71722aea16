package domain

// Experience is a redeemable offering (event, activity, stay) in the catalog.
type Experience struct {
	ExperienceID     string   `json:"experience_id"     bson:"experience_id"     validate:"required"`
	Title            string   `json:"title"             bson:"title"             validate:"required"`
	Category         string   `json:"category"          bson:"category"          validate:"required"`
	ShortDescription string   `json:"short_description" bson:"short_description"`
	LongDescription  string   `json:"long_description"  bson:"long_description"`
	Location         string   `json:"location"          bson:"location"`
	PriceRange       string   `json:"price_range"       bson:"price_range"`
	Rating           float64  `json:"rating"            bson:"rating"            validate:"gte=0,lte=5"`
	Images           []string `json:"images"            bson:"images"            validate:"required"`
	AvailableDates   []string `json:"available_dates"   bson:"available_dates"   validate:"required"`
}
