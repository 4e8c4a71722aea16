package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yonder/experience-recommender/internal/core/ports"
)

// RecommendationHandler serves provider recommendations and prompt previews.
type RecommendationHandler struct {
	service ports.RecommendationService
	log     zerolog.Logger
}

func NewRecommendationHandler(service ports.RecommendationService, log zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{service: service, log: log}
}

// Get handles GET /recommendations/:user_id.
//
// @Summary      Recommend experiences for a member
// @Description  Returns HTML by default (escaped text, line breaks as <br>); format=json returns a JSON object.
// @Tags         recommendations
// @Produce      html
// @Produce      json
// @Param        user_id  path      string  true   "Member identifier"
// @Param        format   query     string  false  "Response format"  Enums(html, json)
// @Success      200      {object}  recommendationResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Failure      429      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /recommendations/{user_id} [get]
func (h *RecommendationHandler) Get(c echo.Context) error {
	var q recommendationQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID := c.Param("user_id")
	text, err := h.service.Recommend(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	if q.Format == "json" {
		return c.JSON(http.StatusOK, recommendationResponse{UserID: userID, Recommendations: text})
	}
	return c.HTML(http.StatusOK, recommendationHTML(text))
}

// Prompt handles GET /recommendations/:user_id/prompt.
//
// @Summary      Preview the prompt sent to the provider
// @Tags         admin
// @Produce      plain
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Member identifier"
// @Success      200      {string}  string
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /recommendations/{user_id}/prompt [get]
func (h *RecommendationHandler) Prompt(c echo.Context) error {
	userID := c.Param("user_id")
	text, err := h.service.Prompt(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	h.log.Debug().Str("actor", actor(c)).Str("user_id", userID).Msg("prompt preview")
	return c.String(http.StatusOK, text)
}
