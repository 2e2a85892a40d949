package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"nonogrid/internal/domain"
	"nonogrid/internal/usecase"
)

type Handler struct {
	UC *usecase.Service

	// Hub, when set, serves the live submission feed on /api/live.
	Hub *Hub
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/puzzle", h.handlePuzzle)
	mux.HandleFunc("/api/puzzle/daily", h.handleDaily)
	mux.HandleFunc("/api/submit", h.handleSubmit)
	mux.HandleFunc("/api/records", h.handleRecords)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/healthz", h.handleHealthz)
	if h.Hub != nil {
		mux.HandleFunc("/api/live", h.Hub.handleWS)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnknownDifficulty),
		errors.Is(err, usecase.ErrBadSize),
		errors.Is(err, usecase.ErrBadPuzzleID),
		errors.Is(err, usecase.ErrBadBoard):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// gridRows flattens a grid to plain ints; []uint8 would JSON-encode as
// base64, not as the array of 0/1 rows clients expect.
func gridRows(g domain.Grid) [][]int {
	rows := make([][]int, g.Size)
	for r, src := range g.RowSlices() {
		row := make([]int, len(src))
		for c, v := range src {
			row[c] = int(v)
		}
		rows[r] = row
	}
	return rows
}

// ---- Puzzle ----

type puzzleReq struct {
	Size       int    `json:"size,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type puzzleResp struct {
	ID         string       `json:"id,omitempty"`
	Size       int          `json:"size,omitempty"`
	Difficulty string       `json:"difficulty,omitempty"`
	Clues      domain.Clues `json:"clues,omitempty"`
	Error      string       `json:"error,omitempty"`
}

func (h *Handler) handlePuzzle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req puzzleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(puzzleResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if req.Size == 0 {
		req.Size = 10
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}
	p, err := h.UC.NewPuzzle(r.Context(), req.Size, req.Difficulty)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(puzzleResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(puzzleResp{ID: p.ID, Size: p.Size, Difficulty: p.Difficulty, Clues: p.Clues})
}

func (h *Handler) handleDaily(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	p, err := h.UC.DailyPuzzle(r.Context(), time.Now())
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(puzzleResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(puzzleResp{ID: p.ID, Size: p.Size, Difficulty: p.Difficulty, Clues: p.Clues})
}

// ---- Submit ----

type submitReq struct {
	ID     string        `json:"id"`
	Player string        `json:"player,omitempty"`
	Moves  []domain.Move `json:"moves"`
}

// submitResp carries no rejection reason on purpose; a prober learns
// only accepted or not, the reason stays in the server log.
type submitResp struct {
	Accepted bool           `json:"accepted"`
	Solution [][]int        `json:"solution,omitempty"`
	Record   *domain.Record `json:"record,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(submitResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	sub, err := h.UC.Submit(r.Context(), req.ID, req.Player, req.Moves)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(submitResp{Error: err.Error()})
		return
	}
	if !sub.Accepted {
		_ = json.NewEncoder(w).Encode(submitResp{Accepted: false})
		return
	}
	rec := sub.Record
	_ = json.NewEncoder(w).Encode(submitResp{
		Accepted: true,
		Solution: gridRows(sub.Solution),
		Record:   &rec,
	})
}

// ---- Records ----

type recordsResp struct {
	Records []domain.Record `json:"records"`
	Error   string          `json:"error,omitempty"`
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(recordsResp{Error: "missing id"})
		return
	}
	recs, err := h.UC.PuzzleRecords(r.Context(), id)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(recordsResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(recordsResp{Records: recs})
}

// ---- Hint ----

type hintReq struct {
	ID    string `json:"id"`
	Board []int  `json:"board"`
}

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	marks := make([]domain.CellMark, len(req.Board))
	for i, v := range req.Board {
		if v < 0 || v > int(domain.MarkCrossed) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(hintResp{Error: "bad cell state"})
			return
		}
		marks[i] = domain.CellMark(v)
	}
	hh, found, err := h.UC.Hint(r.Context(), req.ID, marks)
	if err != nil {
		w.WriteHeader(statusFor(err))
		_ = json.NewEncoder(w).Encode(hintResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(hintResp{Found: found, Hint: hh})
}

// ---- Health ----

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
