package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/sparky/internal/achievements"
	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/store"
)

type profileResponse struct {
	Profile   progress.Profile `json:"profile"`
	Level     difficulty.Level `json:"level"`
	DailyDone bool             `json:"dailyDone"`
	CanSmart  bool             `json:"canSmart"`
}

func (s *Server) profileResponse() profileResponse {
	return profileResponse{
		Profile:   s.svc.Profile(),
		Level:     s.svc.Level(),
		DailyDone: s.svc.DailyDone(),
		CanSmart:  s.svc.CanSmart(),
	}
}

func (s *Server) getProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.profileResponse())
}

type gradeRequest struct {
	Grade int `json:"grade"`
}

func (s *Server) putGrade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := s.svc.SetGrade(r.Context(), req.Grade); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.profileResponse())
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	text, err := s.svc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": text})
}

type achievementView struct {
	achievements.Achievement
	Unlocked bool `json:"unlocked"`
}

func (s *Server) listAchievements(w http.ResponseWriter, _ *http.Request) {
	p := s.svc.Profile()
	all := s.svc.Catalog().All()
	out := make([]achievementView, len(all))
	for i, a := range all {
		out[i] = achievementView{Achievement: a, Unlocked: p.HasAchievement(a.ID)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	opts := store.QueryOpts{Limit: 20, Mode: r.URL.Query().Get("mode")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.Limit = n
	}
	events, err := s.svc.History(r.Context(), opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []store.SessionEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// questionView hides the answer until the question has been answered.
type questionView struct {
	Index        int      `json:"index"`
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	ImageBased   bool     `json:"isImageBased"`
	SubCategory  string   `json:"subCategory"`
	Answered     bool     `json:"answered"`
	ChosenIndex  *int     `json:"answerIndex,omitempty"`
	CorrectIndex *int     `json:"correctAnswerIndex,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

type sessionView struct {
	ID       string       `json:"id"`
	Mode     session.Mode `json:"mode"`
	State    string       `json:"state"`
	Current  int          `json:"current"`
	Total    int          `json:"total"`
	Score    int          `json:"score"`
	Question questionView `json:"question"`
}

func viewSession(sess *session.Session) sessionView {
	i := sess.Current()
	q := sess.Questions[i]
	qv := questionView{
		Index:       i,
		Text:        q.Text,
		Options:     q.Options,
		ImageBased:  q.ImageBased,
		SubCategory: q.SubCategory,
	}
	if a, ok := sess.AnswerFor(i); ok {
		chosen, correct := a.ChosenIndex, q.CorrectIndex
		qv.Answered = true
		qv.ChosenIndex = &chosen
		qv.CorrectIndex = &correct
		qv.Explanation = q.Explanation
	}
	return sessionView{
		ID:       sess.ID,
		Mode:     sess.Mode,
		State:    sess.State().String(),
		Current:  i,
		Total:    sess.Len(),
		Score:    sess.Score(),
		Question: qv,
	}
}

type startRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := session.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.svc.LoadPool(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.svc.Start(r.Context(), mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewSession(sess))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := s.svc.Session(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "no such session")
	}
	return sess, ok
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewSession(sess))
}

func (s *Server) abandonSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.svc.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type answerRequest struct {
	QuestionIndex int `json:"questionIndex"`
	AnswerIndex   int `json:"answerIndex"`
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if !sess.Submit(req.QuestionIndex, req.AnswerIndex) {
		writeError(w, http.StatusConflict, "answer not accepted")
		return
	}
	writeJSON(w, http.StatusOK, viewSession(sess))
}

type outcomeResponse struct {
	ID              string                     `json:"id"`
	Mode            session.Mode               `json:"mode"`
	Score           int                        `json:"score"`
	Total           int                        `json:"total"`
	Perfect         bool                       `json:"perfect"`
	DailySolved     bool                       `json:"dailySolved"`
	NewAchievements []achievements.Achievement `json:"newAchievements"`
	Answers         []session.Answer           `json:"answers"`
	Warning         string                     `json:"warning,omitempty"`
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if !sess.Advance() {
		writeError(w, http.StatusConflict, "answer the current question first")
		return
	}
	if sess.State() != session.Completed {
		writeJSON(w, http.StatusOK, viewSession(sess))
		return
	}

	out, err := s.svc.Complete(r.Context(), sess)
	if err != nil && out.Result.ID == "" {
		writeServiceError(w, err)
		return
	}
	resp := outcomeResponse{
		ID:              out.Result.ID,
		Mode:            out.Result.Mode,
		Score:           out.Result.Score,
		Total:           out.Result.Total,
		Perfect:         out.Perfect,
		DailySolved:     out.DailySolved,
		NewAchievements: out.NewAchievements,
		Answers:         out.Result.Answers,
	}
	if err != nil {
		resp.Warning = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

type tutorRequest struct {
	QuestionIndex int                   `json:"questionIndex"`
	History       []contentgen.ChatTurn `json:"history"`
}

// tutor chats about a question of a running session that was answered
// wrongly.
func (s *Server) tutor(w http.ResponseWriter, r *http.Request) {
	var req tutorRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	sess, ok := s.lookup(w, r)
	if !ok {
		s.mu.Unlock()
		return
	}
	a, answered := sess.AnswerFor(req.QuestionIndex)
	var q = sess.Questions[min(max(req.QuestionIndex, 0), sess.Len()-1)]
	s.mu.Unlock()

	if !answered || a.Correct {
		writeError(w, http.StatusConflict, "tutor is only available for missed questions")
		return
	}
	reply, err := s.svc.Tutor(r.Context(), q, a.ChosenIndex, req.History)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) startCreative(w http.ResponseWriter, r *http.Request) {
	prompt, err := s.svc.StartCreative(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prompt": prompt})
}

type creativeRequest struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

type creativeResponse struct {
	Feedback        string                     `json:"feedback"`
	NewAchievements []achievements.Achievement `json:"newAchievements"`
	Warning         string                     `json:"warning,omitempty"`
}

func (s *Server) submitCreative(w http.ResponseWriter, r *http.Request) {
	var req creativeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	out, err := s.svc.SubmitCreative(r.Context(), req.Prompt, req.Answer)
	if err != nil && out.Feedback == "" {
		writeServiceError(w, err)
		return
	}
	resp := creativeResponse{Feedback: out.Feedback, NewAchievements: out.NewAchievements}
	if err != nil {
		resp.Warning = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}
