package handler

// errorResponse is the error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

// --- Request / Response types ---

type userSummary struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type experienceSummary struct {
	Title            string `json:"title"`
	Category         string `json:"category"`
	Location         string `json:"location"`
	PriceRange       string `json:"price_range"`
	ShortDescription string `json:"short_description"`
}

type experienceResponse struct {
	ExperienceID     string   `json:"experience_id"`
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description"`
	Location         string   `json:"location"`
	PriceRange       string   `json:"price_range"`
	Rating           float64  `json:"rating"`
	Images           []string `json:"images"`
	AvailableDates   []string `json:"available_dates"`
}

type recommendationQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=html json"`
}

type recommendationResponse struct {
	UserID          string `json:"user_id"`
	Recommendations string `json:"recommendations"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}
