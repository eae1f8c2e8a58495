package chi

import (
	dompost "github.com/kailas-cloud/saunarec/internal/domain/post"
	"github.com/kailas-cloud/saunarec/internal/domain/recommendation"
	healthuc "github.com/kailas-cloud/saunarec/internal/usecase/health"
)

type recommendationResponse struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Price       *string `json:"price"`
	PriceValue  *int64  `json:"price_value"`
	BeginnerTip string  `json:"beginner_tip"`
	Score       float64 `json:"score"`
}

func recommendationToResponse(r *recommendation.Recommendation) recommendationResponse {
	resp := recommendationResponse{
		Name:        r.Name(),
		Location:    r.Location(),
		PriceValue:  r.Price(),
		BeginnerTip: r.BeginnerTip(),
		Score:       r.Score(),
	}
	if t := r.PriceText(); t != "" {
		resp.Price = &t
	}
	return resp
}

type createPostRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type createPostResponse struct {
	Message string       `json:"message"`
	Post    dompost.Post `json:"post"`
}

type healthResponse struct {
	healthuc.Report
	Version string `json:"version"`
}
