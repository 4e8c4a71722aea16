package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yonder/experience-recommender/internal/core/ports"
)

// CatalogHandler serves members and experiences from the live snapshot.
type CatalogHandler struct {
	catalog ports.CatalogService
	log     zerolog.Logger
}

func NewCatalogHandler(catalog ports.CatalogService, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// ListUsers handles GET /users.
//
// @Summary      List members
// @Tags         users
// @Produce      json
// @Success      200  {array}  userSummary
// @Router       /users [get]
func (h *CatalogHandler) ListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, toUserSummaries(h.catalog.Users()))
}

// GetUser handles GET /users/:member_id.
//
// @Summary      Get a member
// @Tags         users
// @Produce      json
// @Param        member_id  path      string  true  "Member identifier"
// @Success      200        {object}  domain.User
// @Failure      404        {object}  errorResponse
// @Router       /users/{member_id} [get]
func (h *CatalogHandler) GetUser(c echo.Context) error {
	u, err := h.catalog.LookupUser(c.Param("member_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// ListExperiences handles GET /experiences.
//
// @Summary      List experiences
// @Description  price_range is HTML-escaped.
// @Tags         experiences
// @Produce      json
// @Success      200  {array}  experienceSummary
// @Router       /experiences [get]
func (h *CatalogHandler) ListExperiences(c echo.Context) error {
	return c.JSON(http.StatusOK, toExperienceSummaries(h.catalog.Experiences()))
}

// GetExperience handles GET /experiences/:experience_id.
//
// @Summary      Get an experience
// @Tags         experiences
// @Produce      json
// @Param        experience_id  path      string  true  "Experience identifier"
// @Success      200            {object}  experienceResponse
// @Failure      404            {object}  errorResponse
// @Router       /experiences/{experience_id} [get]
func (h *CatalogHandler) GetExperience(c echo.Context) error {
	e, err := h.catalog.LookupExperience(c.Param("experience_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExperienceResponse(e))
}

// Reload handles POST /reload-data. On failure the previous catalog stays live.
//
// @Summary      Reload the catalog
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /reload-data [post]
func (h *CatalogHandler) Reload(c echo.Context) error {
	h.log.Info().Str("actor", actor(c)).Msg("catalog reload requested")

	if err := h.catalog.Reload(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reload data").SetInternal(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Data reloaded successfully"})
}
