package api

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/tensebunny/tensebunny/internal/catalog"
	"github.com/tensebunny/tensebunny/internal/gateway"
	"github.com/tensebunny/tensebunny/internal/llm"
	"github.com/tensebunny/tensebunny/internal/progress"
	"github.com/tensebunny/tensebunny/internal/quiz"
)

const (
	maxChatLength     = 500
	defaultRankingTop = 10
	maxRankingTop     = 100
)

func (s *Server) listTenses(w http.ResponseWriter, _ *http.Request) {
	tenses := catalog.Tenses()
	out := make([]tenseSummary, 0, len(tenses))
	for _, t := range tenses {
		out = append(out, tenseSummary{ID: t.ID, Name: t.Name, Era: t.Era})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getTense(w http.ResponseWriter, r *http.Request) {
	t, err := catalog.GetTense(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) listModes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, quiz.Modes())
}

type startRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := quiz.ModeByID(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, ls, err := s.sessions.start(mode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(id, ls))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ls, err := s.sessions.get(id)
	if err != nil {
		writeError(w, sessionStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(id, ls))
}

type answerRequest struct {
	Index  *int   `json:"index"`
	Answer string `json:"answer"`
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ls, err := s.sessions.get(id)
	if err != nil {
		writeError(w, sessionStatus(err), err.Error())
		return
	}
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Index == nil {
		writeError(w, http.StatusBadRequest, "index is required")
		return
	}

	out, err := ls.session.SubmitAt(*req.Index, req.Answer)
	if err != nil {
		writeError(w, sessionStatus(err), err.Error())
		return
	}
	resp := answerView{Session: newSessionView(id, ls)}
	if ls.round.Mode.Feedback != quiz.FeedbackHidden {
		resp.Result = newResultView(out)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) advanceSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ls, err := s.sessions.get(id)
	if err != nil {
		writeError(w, sessionStatus(err), err.Error())
		return
	}
	if _, err := ls.session.Advance(); err != nil {
		writeError(w, sessionStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(id, ls))
}

func (s *Server) completeSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ls, err := s.sessions.get(id)
	if err != nil {
		writeError(w, sessionStatus(err), err.Error())
		return
	}
	rep, err := ls.session.Complete()
	if err != nil {
		writeError(w, sessionStatus(err), err.Error())
		return
	}
	_, _ = s.sessions.remove(id)

	s.mu.Lock()
	placement := s.placement
	s.mu.Unlock()

	booked := s.ledger().Finish(r.Context(), ls.round, rep, placement)
	if ls.round.Mode.ID == quiz.ModePreTest {
		placed := booked.Report
		s.mu.Lock()
		s.placement = &placed
		s.mu.Unlock()
	}

	resp := completeView{
		Report:      booked.Report,
		Earned:      booked.Earned,
		Remediation: newReferenceViews(quiz.Remediate(booked.Report)),
	}
	if resp.Earned == nil {
		resp.Earned = []string{}
	}
	if s.deps.Progress != nil {
		p := s.deps.Progress.Current()
		resp.Progress = &p
	}
	if booked.Err != nil {
		resp.Warning = "progress could not be saved: " + booked.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) abandonSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ls, err := s.sessions.remove(id)
	if err != nil {
		writeError(w, sessionStatus(err), err.Error())
		return
	}
	sess := ls.session
	if sess.Phase() != quiz.PhaseCompleted {
		sess.Abandon()
		s.ledger().Abandon(r.Context(), ls.round, sess.Score(), sess.Len(), sess.Answered())
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProgress(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Progress.Current())
}

type loginRequest struct {
	Name string `json:"name"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	p, err := s.deps.Progress.Login(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type themeBody struct {
	Theme string `json:"theme"`
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	t := progress.ThemeLight
	if s.deps.Themes != nil {
		if saved, err := s.deps.Themes.LoadTheme(r.Context()); err == nil {
			t = saved
		}
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: string(t)})
}

func (s *Server) putTheme(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t := progress.Theme(req.Theme)
	if t != progress.ThemeLight && t != progress.ThemeDark {
		writeError(w, http.StatusBadRequest, "theme must be light or dark")
		return
	}
	if s.deps.Themes != nil {
		if err := s.deps.Themes.SaveTheme(r.Context(), t); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: string(t)})
}

func (s *Server) ranking(w http.ResponseWriter, r *http.Request) {
	limit := defaultRankingTop
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRankingTop)
	}
	entries := []progress.ScoreEntry{}
	if s.deps.Scores != nil {
		top, err := s.deps.Scores.TopScores(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if top != nil {
			entries = top
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

type chatRequest struct {
	Channel string        `json:"channel"`
	Message string        `json:"message"`
	History []llm.Message `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ch, err := gateway.ParseChannel(req.Channel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if utf8.RuneCountInString(msg) > maxChatLength {
		writeError(w, http.StatusBadRequest, "message is too long")
		return
	}
	reply := s.deps.AI.Chat(r.Context(), ch, msg, req.History)
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

type speechRequest struct {
	Text string `json:"text"`
}

func (s *Server) speech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	wav := s.deps.AI.Speak(r.Context(), req.Text)
	if wav == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeBlob(w, "audio/wav", wav)
}

func (s *Server) mascot(w http.ResponseWriter, r *http.Request) {
	keep, _ := strconv.ParseBool(r.URL.Query().Get("keepBackground"))
	img := s.deps.AI.Mascot(r.Context(), gateway.MascotOptions{KeepBackground: keep})
	if img == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeBlob(w, "image/png", img.PNG)
}
