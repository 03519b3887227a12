package stressinc

import (
	"encoding/json"
	"net/http"

	"github.com/fuyu-hub/EduSolo-app/internal/calc/calcerr"
	"github.com/fuyu-hub/EduSolo-app/internal/log"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	// Exactly one load variant may be populated; this is a boundary rule,
	// the calculator itself only rejects an absent variant.
	variants := 0
	if input.PointLoad != nil {
		variants++
	}
	if input.StripLoad != nil {
		variants++
	}
	if input.CircularLoad != nil {
		variants++
	}
	if variants != 1 {
		http.Error(w, "Exactly one load definition must be provided", http.StatusBadRequest)
		return
	}

	res, err := Calculate(input)
	if err != nil {
		log.Warnw("stress increment rejected", "error", err, "load_type", input.LoadType)
		http.Error(w, err.Error(), calcerr.Status(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
