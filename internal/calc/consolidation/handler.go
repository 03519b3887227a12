package consolidation

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
	res, err := Calculate(input)
	if err != nil {
		log.Warnw("consolidation time query rejected", "error", err)
		http.Error(w, err.Error(), calcerr.Status(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
