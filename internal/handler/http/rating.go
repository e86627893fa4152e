package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/domain"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/service"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/httputil"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/validator"
)

// RatingHandler handles HTTP requests for rating endpoints.
type RatingHandler struct {
	service *service.RatingService
	logger  *slog.Logger
}

// NewRatingHandler creates a new rating HTTP handler.
func NewRatingHandler(svc *service.RatingService, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{
		service: svc,
		logger:  logger,
	}
}

// SubmitRatingRequest is the JSON request body for submitting a rating.
// userId may instead arrive in the X-User-ID header; the body wins.
type SubmitRatingRequest struct {
	ProductID string `json:"productId" validate:"required"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

// RatingResponse is the wire shape of a rating.
type RatingResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toRatingResponse(r *domain.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toRatingResponses(ratings []domain.Rating) []RatingResponse {
	out := make([]RatingResponse, len(ratings))
	for i := range ratings {
		out[i] = toRatingResponse(&ratings[i])
	}
	return out
}

// ListRatings handles GET /ratings/product/{id}.
func (h *RatingHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	result, err := h.service.ListRatings(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.OKCount(toRatingResponses(result.Ratings), result.Count))
}

// SubmitRating handles POST /ratings.
func (h *RatingHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Fail("invalid request body: "+err.Error()))
		return
	}

	if req.UserID == "" {
		req.UserID = r.Header.Get("X-User-ID")
	}
	if req.UserID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Fail("userId is required"))
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	rating, err := h.service.SubmitRating(r.Context(), service.SubmitRatingInput{
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.OK(toRatingResponse(rating)))
}
