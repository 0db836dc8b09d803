package handler

import (
	"net/http"

	"github.com/osse101/NemoBot_Go/internal/market"
)

// HandleGetPlayer handles GET /players/{id}
func HandleGetPlayer(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetIDParam(r, w, "id")
		if !ok {
			return
		}

		player, err := svc.GetPlayer(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, OpGetPlayer, err)
			return
		}

		respondJSON(w, http.StatusOK, player)
	}
}
