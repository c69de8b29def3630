package handler

import (
	"log/slog"
	"net/http"
)

type codeSweeper interface {
	Sweep() int
}

// CodesHandler exposes maintenance of the in-memory verification codes.
type CodesHandler struct {
	codes codeSweeper
}

func NewCodesHandler(codes codeSweeper) *CodesHandler { return &CodesHandler{codes: codes} }

func (h *CodesHandler) Sweep(w http.ResponseWriter, _ *http.Request) {
	n := h.codes.Sweep()
	slog.Info("verification codes swept", "removed", n)
	writeJSON(w, http.StatusOK, struct {
		Removed int `json:"removed"`
	}{n})
}
