package rescue

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/ports/vision"

	"github.com/go-chi/chi/v5"
)

const (
	msgUnsupportedImage = "Only JPEG, PNG, and WebP images are supported."
	msgImageTooLarge    = "Image exceeds 10 MB limit."
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/rescue/upload", uploadHandler(svc))
}

type visionAnalysisResponse struct {
	Breed       string          `json:"breed"`
	Size        dogs.Size       `json:"size"`
	Color       string          `json:"color"`
	CoatLength  dogs.CoatLength `json:"coat_length"`
	Description string          `json:"description"`
	Confidence  float64         `json:"confidence"`
}

type uploadResponse struct {
	Dog            dogs.Response          `json:"dog"`
	VisionAnalysis visionAnalysisResponse `json:"vision_analysis"`
	Message        string                 `json:"message"`
}

// uploadHandler godoc
// @Summary Alta de perro desde foto
// @Description Analiza la foto (raza, color, pelaje, tamaño) y crea el perro con esos campos prellenados. Corregir luego con PATCH /dogs/{id}.
// @Tags rescue
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Foto JPEG, PNG o WebP (máx 10 MB)"
// @Param name formData string false "Nombre (default Unknown)"
// @Param age_years formData number false "Edad estimada (default 1)"
// @Param weight_lbs formData number false "Peso; 0 = estimar por tamaño"
// @Param sex formData string false "male|female (default male)"
// @Param is_rescue formData boolean false "default true"
// @Param good_with_cats formData boolean false "default false"
// @Param good_with_kids formData boolean false "default false"
// @Success 201 {object} uploadResponse
// @Failure 400 {string} string "imagen inválida / campos inválidos"
// @Failure 502 {string} string "image analysis unavailable"
// @Router /rescue/upload [post]
func uploadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// margen para los campos del form
		r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes+(1<<20))
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, msgImageTooLarge, http.StatusBadRequest)
				return
			}
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		image, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
		if err != nil {
			http.Error(w, "could not read image", http.StatusBadRequest)
			return
		}

		in := UploadInput{
			Image:       image,
			ContentType: header.Header.Get("Content-Type"),
			Name:        formString(r, "name", "Unknown"),
			Sex:         dogs.Sex(formString(r, "sex", string(dogs.SexMale))),
		}
		var ok bool
		if in.AgeYears, ok = formFloat(w, r, "age_years", 1); !ok {
			return
		}
		if in.WeightLbs, ok = formFloat(w, r, "weight_lbs", 0); !ok {
			return
		}
		if in.IsRescue, ok = formBool(w, r, "is_rescue", true); !ok {
			return
		}
		if in.GoodWithCats, ok = formBool(w, r, "good_with_cats", false); !ok {
			return
		}
		if in.GoodWithKids, ok = formBool(w, r, "good_with_kids", false); !ok {
			return
		}

		res, err := svc.Upload(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnsupportedImage):
				http.Error(w, msgUnsupportedImage, http.StatusBadRequest)
			case errors.Is(err, ErrImageTooLarge):
				http.Error(w, msgImageTooLarge, http.StatusBadRequest)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrAnalysisUnavailable):
				http.Error(w, ErrAnalysisUnavailable.Error(), http.StatusBadGateway)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, uploadResponse{
			Dog:            dogs.ToResponse(res.Dog),
			VisionAnalysis: toVisionResponse(res.Analysis),
			Message:        res.Message,
		})
	}
}

func formString(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return def
}

func formFloat(w http.ResponseWriter, r *http.Request, key string, def float64) (float64, bool) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		http.Error(w, key+" must be a number", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

func formBool(w http.ResponseWriter, r *http.Request, key string, def bool) (bool, bool) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		http.Error(w, key+" must be a boolean", http.StatusBadRequest)
		return false, false
	}
	return v, true
}

func toVisionResponse(a vision.Analysis) visionAnalysisResponse {
	return visionAnalysisResponse{
		Breed:       a.Breed,
		Size:        a.Size,
		Color:       a.Color,
		CoatLength:  a.CoatLength,
		Description: a.Description,
		Confidence:  a.Confidence,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
