package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/places/api/http/presenter"
	"github.com/artem13815/places/pkg/apperr"
	"github.com/artem13815/places/pkg/auth"
	"github.com/artem13815/places/pkg/upload"
	"github.com/artem13815/places/pkg/validation"
)

type UsersHandler struct {
	useCase auth.AuthUseCase
}

func NewUsersHandler(useCase auth.AuthUseCase) *UsersHandler {
	return &UsersHandler{useCase: useCase}
}

type userView struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Image  string   `json:"image"`
	Places []string `json:"places"`
}

func newUserView(u auth.User) userView {
	places := make([]string, 0, len(u.PlaceIDs))
	for _, id := range u.PlaceIDs {
		places = append(places, id.String())
	}
	return userView{ID: u.ID.String(), Name: u.Name, Email: u.Email, Image: u.Image, Places: places}
}

type authResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// List returns every user without credentials.
// @Summary List users
// @Tags    users
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.useCase.List(c.Context())
	if err != nil {
		return err
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"users": views})
}

type signupRequest struct {
	Name     string `form:"name" json:"name" validate:"required,trimmed"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=6,max=72"`
}

// Signup registers a user with a profile image.
// @Summary Sign up
// @Tags    users
// @Accept  multipart/form-data
// @Produce json
// @Param   name     formData string true "display name"
// @Param   email    formData string true "email"
// @Param   password formData string true "password, at least 6 characters"
// @Param   image    formData file   true "profile image (png, jpeg)"
// @Success 201 {object} authResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /users/signup [post]
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid inputs passed, please check your data.")
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	result, err := h.useCase.Signup(c.Context(), auth.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    upload.ImagePath(c),
	})
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusCreated, authResponse{
		UserID: result.User.ID.String(),
		Email:  result.User.Email,
		Token:  result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token.
// @Summary Log in
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} authResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/login [post]
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid inputs passed, please check your data.")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return presenter.JSON(c, http.StatusOK, authResponse{
		UserID: result.User.ID.String(),
		Email:  result.User.Email,
		Token:  result.Token,
	})
}
