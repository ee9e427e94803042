package swipes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/domain/matching"
	"tingrrr/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const msgNoPreferences = "No preferences yet – swipe right on some dogs first!"

// HandlerOptions controla el paginado de cards/recommendations.
type HandlerOptions struct {
	DefaultLimit int // default 10
	MaxLimit     int // default 50
}

func (o HandlerOptions) withDefaults() HandlerOptions {
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 10
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = 50
	}
	if o.DefaultLimit > o.MaxLimit {
		o.DefaultLimit = o.MaxLimit
	}
	return o
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	opts = opts.withDefaults()

	r.Route("/swipe/{userID}", func(sr chi.Router) {
		sr.Use(sameUserOnly)

		sr.Post("/", recordSwipeHandler(svc))
		sr.Get("/cards", cardsHandler(svc, opts))
		sr.Get("/recommendations", recommendationsHandler(svc, opts))
		sr.Get("/preferences", preferencesHandler(svc))
		sr.Delete("/reset", resetHandler(svc))
	})
}

// sameUserOnly: si el request trae claims (JWT o header dev) deben ser del
// mismo usuario de la ruta. Sin claims se permite (modo demo).
func sameUserOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid := middleware.UserID(r.Context()); uid != "" && uid != chi.URLParam(r, "userID") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type swipeRequest struct {
	DogID     string    `json:"dog_id"`
	Direction Direction `json:"direction"`
}

type swipeResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	DogID     string    `json:"dog_id"`
	Direction Direction `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
}

type cardResponse struct {
	Dog                dogs.Response `json:"dog"`
	CompatibilityScore float64       `json:"compatibility_score"`
}

type recommendationResponse struct {
	Dogs    []dogs.Response `json:"dogs"`
	Message string          `json:"message"`
}

type preferencesResponse struct {
	PreferredSize       *dogs.Size       `json:"preferred_size"`
	PreferredBreed      *string          `json:"preferred_breed"`
	PreferredCoatLength *dogs.CoatLength `json:"preferred_coat_length"`
	MinAge              *float64         `json:"min_age"`
	MaxAge              *float64         `json:"max_age"`
	MinWeight           *float64         `json:"min_weight"`
	MaxWeight           *float64         `json:"max_weight"`
	PrefersGoodWithCats *bool            `json:"prefers_good_with_cats"`
	PrefersGoodWithKids *bool            `json:"prefers_good_with_kids"`
	PrefersRescue       *bool            `json:"prefers_rescue"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// recordSwipeHandler godoc
// @Summary Registrar swipe
// @Description Guarda un swipe left/right. Un swipe right recalcula el perfil de preferencias del usuario. Autenticación opcional: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>`; si viene, debe coincidir con userID.
// @Tags swipe
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param userID path string true "ID del usuario"
// @Param payload body swipeRequest true "dog_id y direction (left|right)"
// @Success 201 {object} swipeResponse
// @Failure 400 {string} string "invalid json / direction inválida"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "user not found / dog not found"
// @Failure 409 {string} string "already swiped on this dog"
// @Router /swipe/{userID} [post]
func recordSwipeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req swipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sw, err := svc.Record(r.Context(), chi.URLParam(r, "userID"), req.DogID, req.Direction)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, swipeResponse{
			ID:        sw.ID,
			UserID:    sw.UserID,
			DogID:     sw.DogID,
			Direction: sw.Direction,
			CreatedAt: sw.CreatedAt,
		})
	}
}

// cardsHandler godoc
// @Summary Próximas cards para swipear
// @Description Perros sin swipe ordenados por compatibilidad (0-100). Sin perfil todos valen 50 y se respeta el orden del catálogo.
// @Tags swipe
// @Produce json
// @Param userID path string true "ID del usuario"
// @Param limit query int false "Máximo de cards (default 10, máx 50)"
// @Success 200 {array} cardResponse
// @Failure 400 {string} string "limit inválido"
// @Failure 404 {string} string "user not found"
// @Router /swipe/{userID}/cards [get]
func cardsHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(w, r, opts)
		if !ok {
			return
		}

		cards, err := svc.Cards(r.Context(), chi.URLParam(r, "userID"), limit)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]cardResponse, 0, len(cards))
		for _, c := range cards {
			out = append(out, cardResponse{Dog: dogs.ToResponse(c.Dog), CompatibilityScore: c.Score})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// recommendationsHandler godoc
// @Summary Recomendaciones personalizadas
// @Tags swipe
// @Produce json
// @Param userID path string true "ID del usuario"
// @Param limit query int false "Máximo de perros (default 10, máx 50)"
// @Success 200 {object} recommendationResponse
// @Failure 400 {string} string "limit inválido"
// @Failure 404 {string} string "user not found"
// @Router /swipe/{userID}/recommendations [get]
func recommendationsHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := parseLimit(w, r, opts)
		if !ok {
			return
		}

		rec, err := svc.Recommendations(r.Context(), chi.URLParam(r, "userID"), limit)
		if err != nil {
			writeError(w, err)
			return
		}

		out := recommendationResponse{
			Dogs:    make([]dogs.Response, 0, len(rec.Dogs)),
			Message: rec.Message,
		}
		for _, d := range rec.Dogs {
			out.Dogs = append(out.Dogs, dogs.ToResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// preferencesHandler godoc
// @Summary Perfil de preferencias derivado
// @Tags swipe
// @Produce json
// @Param userID path string true "ID del usuario"
// @Success 200 {object} preferencesResponse
// @Failure 404 {string} string "user not found / sin preferencias todavía"
// @Router /swipe/{userID}/preferences [get]
func preferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Preferences(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPreferencesResponse(p))
	}
}

// resetHandler godoc
// @Summary Reiniciar historial
// @Description Borra todos los swipes y el perfil del usuario.
// @Tags swipe
// @Param userID path string true "ID del usuario"
// @Success 204
// @Failure 404 {string} string "user not found"
// @Router /swipe/{userID}/reset [delete]
func resetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Reset(r.Context(), chi.URLParam(r, "userID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseLimit(w http.ResponseWriter, r *http.Request, opts HandlerOptions) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return opts.DefaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > opts.MaxLimit {
		http.Error(w, "limit must be between 1 and "+strconv.Itoa(opts.MaxLimit), http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func toPreferencesResponse(p matching.Profile) preferencesResponse {
	return preferencesResponse{
		PreferredSize:       p.PreferredSize,
		PreferredBreed:      p.PreferredBreed,
		PreferredCoatLength: p.PreferredCoatLength,
		MinAge:              p.MinAge,
		MaxAge:              p.MaxAge,
		MinWeight:           p.MinWeight,
		MaxWeight:           p.MaxWeight,
		PrefersGoodWithCats: p.PrefersGoodWithCats,
		PrefersGoodWithKids: p.PrefersGoodWithKids,
		PrefersRescue:       p.PrefersRescue,
		UpdatedAt:           p.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "dog_id and direction (left|right) are required", http.StatusBadRequest)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrDogNotFound):
		http.Error(w, "dog not found", http.StatusNotFound)
	case errors.Is(err, ErrAlreadySwiped):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNoPreferences):
		http.Error(w, msgNoPreferences, http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
