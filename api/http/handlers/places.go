package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/places/api/http/presenter"
	"github.com/artem13815/places/pkg/apperr"
	"github.com/artem13815/places/pkg/geocode"
	"github.com/artem13815/places/pkg/place"
	"github.com/artem13815/places/pkg/security/jwt"
	"github.com/artem13815/places/pkg/upload"
	"github.com/artem13815/places/pkg/validation"
)

type PlacesHandler struct {
	uc place.UseCase
}

func NewPlacesHandler(uc place.UseCase) *PlacesHandler { return &PlacesHandler{uc: uc} }

type placeView struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Address     string              `json:"address"`
	Location    geocode.Coordinates `json:"location"`
	Image       string              `json:"image"`
	Creator     string              `json:"creator"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func newPlaceView(p place.Place) placeView {
	return placeView{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		Location:    p.Location,
		Image:       p.Image,
		Creator:     p.CreatorID.String(),
		CreatedAt:   p.CreatedAt,
	}
}

// callerID reads the identity stored by the auth middleware.
func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, jwt.ErrAuthFailed
	}
	return id, nil
}

// Unknown and malformed ids are both reported as not found.
func pathID(c *fiber.Ctx, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// GetByID returns one place.
// @Summary Get place
// @Tags    places
// @Produce json
// @Param   pid path string true "place id (UUID)"
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /places/{pid} [get]
func (h *PlacesHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "pid", place.ErrNotFound)
	if err != nil {
		return err
	}
	p, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"place": newPlaceView(p)})
}

// GetByUserID lists the places a user created.
// @Summary List places of a user
// @Tags    places
// @Produce json
// @Param   uid path string true "user id (UUID)"
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /places/user/{uid} [get]
func (h *PlacesHandler) GetByUserID(c *fiber.Ctx) error {
	uid, err := pathID(c, "uid", place.ErrOwnerNotFound)
	if err != nil {
		return err
	}
	places, err := h.uc.ListByUser(c.Context(), uid)
	if err != nil {
		return err
	}
	views := make([]placeView, 0, len(places))
	for _, p := range places {
		views = append(views, newPlaceView(p))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"places": views})
}

type createPlaceRequest struct {
	Title       string `form:"title" json:"title" validate:"required,trimmed,min=5"`
	Description string `form:"description" json:"description" validate:"required,trimmed,min=5"`
	Address     string `form:"address" json:"address" validate:"required,trimmed"`
}

// length rules apply to the stored, trimmed text
func (r *createPlaceRequest) trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Address = strings.TrimSpace(r.Address)
}

// Create adds a place owned by the caller.
// @Summary Create place
// @Tags    places
// @Accept  multipart/form-data
// @Produce json
// @Param   title       formData string true "title, at least 5 characters"
// @Param   description formData string true "description, at least 5 characters"
// @Param   address     formData string true "address to geocode"
// @Param   image       formData file   true "image (png, jpeg)"
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /places [post]
func (h *PlacesHandler) Create(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req createPlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid inputs passed, please check your data.")
	}
	req.trim()
	if err := validation.Struct(req); err != nil {
		return err
	}
	p, err := h.uc.Create(c.Context(), place.CreateInput{
		CreatorID:   uid,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Image:       upload.ImagePath(c),
	})
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{"place": newPlaceView(p)})
}

type updatePlaceRequest struct {
	Title       string `json:"title" validate:"required,trimmed,min=5"`
	Description string `json:"description" validate:"required,trimmed,min=5"`
}

func (r *updatePlaceRequest) trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// Update changes title and description of the caller's place.
// @Summary Update place
// @Tags    places
// @Accept  json
// @Produce json
// @Param   pid   path string true "place id (UUID)"
// @Param   input body updatePlaceRequest true "new title and description"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /places/{pid} [patch]
func (h *PlacesHandler) Update(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req updatePlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid inputs passed, please check your data.")
	}
	req.trim()
	if err := validation.Struct(req); err != nil {
		return err
	}
	id, err := pathID(c, "pid", place.ErrNotFound)
	if err != nil {
		return err
	}
	p, err := h.uc.Update(c.Context(), place.UpdateInput{
		CallerID:    uid,
		PlaceID:     id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"updatedPlace": newPlaceView(p)})
}

// Delete removes the caller's place and its image.
// @Summary Delete place
// @Tags    places
// @Produce json
// @Param   pid path string true "place id (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /places/{pid} [delete]
func (h *PlacesHandler) Delete(c *fiber.Ctx) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "pid", place.ErrNotFound)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "Deleted place."})
}
