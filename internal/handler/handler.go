package handlers

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"plaintext/internal/apperror"
	"plaintext/internal/config"
	"plaintext/internal/models"
	"plaintext/internal/service"
)

type Handlers struct {
	AuthService        service.AuthService
	PostService        service.PostService
	InteractionService service.InteractionService
	UserService        service.UserService
	TablesService      service.TablesService
	Cfg                *config.Config
	Validate           *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:        service.Auth,
		PostService:        service.Post,
		InteractionService: service.Interaction,
		UserService:        service.User,
		TablesService:      service.Tables,
		Cfg:                config,
		Validate:           NewValidator(),
	}
}

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// bcrypt only reads the first 72 bytes of a password.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return v
}

// decode reads a JSON body into dst and validates it.
func (h *Handlers) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &apperror.ValidationError{Message: "invalid request body"}
	}
	if err := h.Validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// identity returns the caller; the access policy guarantees it is present
// on authenticated routes.
func identity(w http.ResponseWriter, r *http.Request) (*models.Identity, bool) {
	id, ok := service.IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, "authentication required", http.StatusUnauthorized)
		return nil, false
	}
	return id, true
}

func pageFromQuery(r *http.Request) service.Page {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	return service.Page{Page: page, Limit: limit}
}
