package handler

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dukerupert/zonetasks/internal/board"
	"github.com/dukerupert/zonetasks/internal/tier"
)

// supportedLanguages decide how point ranges are formatted.
var supportedLanguages = language.NewMatcher([]language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
})

type ScoreHandler struct {
	board *board.Board
}

func NewScoreHandler(b *board.Board) *ScoreHandler {
	return &ScoreHandler{board: b}
}

func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.Score())
}

type tierView struct {
	tier.Tier
	Range   string `json:"range"`
	Current bool   `json:"current"`
}

// Tiers lists the ladder with point ranges formatted for the caller's
// Accept-Language and the current tier marked.
func (h *ScoreHandler) Tiers(w http.ResponseWriter, r *http.Request) {
	p := printerFor(r)
	ladder := h.board.Ladder()
	current := ladder.Index(h.board.Score().Total)

	views := make([]tierView, len(ladder))
	for i, t := range ladder {
		views[i] = tierView{Tier: t, Range: ladder.RangeLabel(i, p), Current: i == current}
	}
	writeJSON(w, http.StatusOK, views)
}

func printerFor(r *http.Request) *message.Printer {
	tags, _, _ := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	tag, _, _ := supportedLanguages.Match(tags...)
	return message.NewPrinter(tag)
}
