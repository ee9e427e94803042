package dogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc))
		dr.Post("/", createDogHandler(svc))
		dr.Get("/{dogID}", getDogHandler(svc))
		dr.Patch("/{dogID}", updateDogHandler(svc))
		dr.Delete("/{dogID}", deleteDogHandler(svc))
	})
}

type createDogRequest struct {
	Name         string     `json:"name"`
	Breed        string     `json:"breed"`
	Size         Size       `json:"size"`
	AgeYears     float64    `json:"age_years"`
	WeightLbs    float64    `json:"weight_lbs"`
	Color        string     `json:"color"`
	Description  string     `json:"description"`
	Sex          Sex        `json:"sex"`
	CoatLength   CoatLength `json:"coat_length"`
	IsRescue     bool       `json:"is_rescue"`
	GoodWithCats bool       `json:"good_with_cats"`
	GoodWithKids bool       `json:"good_with_kids"`
	ImageURL     string     `json:"image_url"`
}

type updateDogRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string     `json:"name"`
	Breed        *string     `json:"breed"`
	Size         *Size       `json:"size"`
	AgeYears     *float64    `json:"age_years"`
	WeightLbs    *float64    `json:"weight_lbs"`
	Color        *string     `json:"color"`
	Description  *string     `json:"description"`
	Sex          *Sex        `json:"sex"`
	CoatLength   *CoatLength `json:"coat_length"`
	IsRescue     *bool       `json:"is_rescue"`
	GoodWithCats *bool       `json:"good_with_cats"`
	GoodWithKids *bool       `json:"good_with_kids"`
	ImageURL     *string     `json:"image_url"`
}

// Response es la representación pública de un perro; la reutilizan swipes y rescue.
type Response struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Breed        string     `json:"breed"`
	Size         Size       `json:"size"`
	AgeYears     float64    `json:"age_years"`
	WeightLbs    float64    `json:"weight_lbs"`
	Color        string     `json:"color"`
	Description  string     `json:"description,omitempty"`
	Sex          Sex        `json:"sex"`
	CoatLength   CoatLength `json:"coat_length"`
	IsRescue     bool       `json:"is_rescue"`
	GoodWithCats bool       `json:"good_with_cats"`
	GoodWithKids bool       `json:"good_with_kids"`
	ImageURL     string     `json:"image_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// listDogsHandler godoc
// @Summary Listar perros
// @Description Lista el catálogo paginado en orden de alta.
// @Tags dogs
// @Produce json
// @Param skip query int false "Offset (default 0)"
// @Param limit query int false "Máximo a devolver (default 20)"
// @Success 200 {array} Response
// @Failure 400 {string} string "skip/limit inválidos"
// @Router /dogs [get]
func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, err := queryInt(r, "skip", 0)
		if err != nil || skip < 0 {
			http.Error(w, "skip must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit, err := queryInt(r, "limit", DefaultPageSize)
		if err != nil || limit < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), skip, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]Response, 0, len(items))
		for _, d := range items {
			out = append(out, ToResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createDogHandler godoc
// @Summary Alta manual de perro
// @Tags dogs
// @Accept json
// @Produce json
// @Param payload body createDogRequest true "Datos del perro"
// @Success 201 {object} Response
// @Failure 400 {string} string "invalid json / validación"
// @Router /dogs [post]
func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			Name:         req.Name,
			Breed:        req.Breed,
			Size:         req.Size,
			AgeYears:     req.AgeYears,
			WeightLbs:    req.WeightLbs,
			Color:        req.Color,
			Description:  req.Description,
			Sex:          req.Sex,
			CoatLength:   req.CoatLength,
			IsRescue:     req.IsRescue,
			GoodWithCats: req.GoodWithCats,
			GoodWithKids: req.GoodWithKids,
			ImageURL:     req.ImageURL,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(d))
	}
}

// getDogHandler godoc
// @Summary Perfil de un perro
// @Tags dogs
// @Produce json
// @Param dogID path string true "ID del perro"
// @Success 200 {object} Response
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID} [get]
func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(d))
	}
}

// updateDogHandler godoc
// @Summary Corregir datos de un perro
// @Description PATCH parcial; los campos ausentes no se tocan.
// @Tags dogs
// @Accept json
// @Produce json
// @Param dogID path string true "ID del perro"
// @Param payload body updateDogRequest true "Campos a modificar"
// @Success 200 {object} Response
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID} [patch]
func updateDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateDogRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "dogID"), UpdateInput{
			Name:         req.Name,
			Breed:        req.Breed,
			Size:         req.Size,
			AgeYears:     req.AgeYears,
			WeightLbs:    req.WeightLbs,
			Color:        req.Color,
			Description:  req.Description,
			Sex:          req.Sex,
			CoatLength:   req.CoatLength,
			IsRescue:     req.IsRescue,
			GoodWithCats: req.GoodWithCats,
			GoodWithKids: req.GoodWithKids,
			ImageURL:     req.ImageURL,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(d))
	}
}

// deleteDogHandler godoc
// @Summary Borrar un perro
// @Tags dogs
// @Param dogID path string true "ID del perro"
// @Success 204
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID} [delete]
func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "dogID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToResponse(d Dog) Response {
	return Response{
		ID:           d.ID,
		Name:         d.Name,
		Breed:        d.Breed,
		Size:         d.Size,
		AgeYears:     d.AgeYears,
		WeightLbs:    d.WeightLbs,
		Color:        d.Color,
		Description:  d.Description,
		Sex:          d.Sex,
		CoatLength:   d.CoatLength,
		IsRescue:     d.IsRescue,
		GoodWithCats: d.GoodWithCats,
		GoodWithKids: d.GoodWithKids,
		ImageURL:     d.ImageURL,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "dog not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// writeJSON está duplicado en cada módulo (dogs/users/swipes/rescue) a propósito.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
