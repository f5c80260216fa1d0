// Package http exposes the JSON endpoints the classroom and quizzes pages
// bind to, plus the chat websocket.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"pocket-classroom/internal/app"
	"pocket-classroom/internal/domain"
)

// Handler serves the classroom API.
type Handler struct {
	classroom *app.Classroom
}

func NewHandler(classroom *app.Classroom) *Handler {
	return &Handler{classroom: classroom}
}

// Register mounts every route on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/lessons", h.listLessons)
	mux.HandleFunc("POST /api/lessons", h.createLesson)
	mux.HandleFunc("GET /api/lessons/{id}", h.getLesson)
	mux.HandleFunc("PUT /api/lessons/{id}", h.updateLesson)
	mux.HandleFunc("DELETE /api/lessons/{id}", h.deleteLesson)
	mux.HandleFunc("POST /api/lessons/{id}/select", h.selectLesson)
	mux.HandleFunc("DELETE /api/selection", h.clearSelection)
	mux.HandleFunc("POST /api/assignments", h.addAssignment)
	mux.HandleFunc("GET /api/lessons/{id}/quiz", h.getQuiz)
	mux.HandleFunc("POST /api/lessons/{id}/quiz/grade", h.gradeQuiz)
	mux.HandleFunc("GET /api/chat", h.getChat)
	mux.HandleFunc("POST /api/chat", h.postChat)
	mux.HandleFunc("GET /api/export", h.exportSnapshot)
	mux.HandleFunc("POST /api/import", h.importSnapshot)
}

// lessonPayload is the editor-shaped body for create and update.
type lessonPayload struct {
	Title string            `json:"title"`
	Desc  string            `json:"desc"`
	Video string            `json:"video"`
	Quiz  []app.QuestionRow `json:"quiz"`
}

func (p lessonPayload) draft() (domain.LessonDraft, int) {
	quiz, dropped := app.BuildQuiz(p.Quiz)
	return domain.LessonDraft{
		Title: p.Title,
		Desc:  p.Desc,
		Video: p.Video,
		Quiz:  quiz,
	}, dropped
}

func (h *Handler) listLessons(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Lessons []app.LessonView `json:"lessons"`
		Warning string           `json:"warning,omitempty"`
	}{
		Lessons: h.classroom.LessonViews(),
		Warning: h.classroom.Warning(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createLesson(w http.ResponseWriter, r *http.Request) {
	var payload lessonPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, domain.NewValidationError("body", "malformed JSON"))
		return
	}
	draft, dropped := payload.draft()
	lesson, err := h.classroom.CreateLesson(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lessonResponse{Lesson: lesson, DroppedQuestions: dropped})
}

func (h *Handler) getLesson(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.classroom.Get(r.PathValue("id"))
	if !ok {
		writeError(w, domain.ErrLessonNotFound)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (h *Handler) updateLesson(w http.ResponseWriter, r *http.Request) {
	var payload lessonPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, domain.NewValidationError("body", "malformed JSON"))
		return
	}
	draft, dropped := payload.draft()
	lesson, err := h.classroom.UpdateLesson(r.Context(), r.PathValue("id"), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lessonResponse{Lesson: lesson, DroppedQuestions: dropped})
}

type lessonResponse struct {
	Lesson           domain.Lesson `json:"lesson"`
	DroppedQuestions int           `json:"droppedQuestions,omitempty"`
}

func (h *Handler) deleteLesson(w http.ResponseWriter, r *http.Request) {
	// Deleting is destructive; the page shows a blocking yes/no prompt and
	// only then calls with confirm=true.
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, domain.NewValidationError("confirm", "deletion requires confirm=true"))
		return
	}
	if err := h.classroom.DeleteLesson(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) selectLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.classroom.Select(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (h *Handler) clearSelection(w http.ResponseWriter, r *http.Request) {
	h.classroom.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addAssignment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, domain.NewValidationError("body", "malformed JSON"))
		return
	}
	if err := h.classroom.AddAssignment(r.Context(), payload.Text); err != nil {
		writeError(w, err)
		return
	}
	lesson, _ := h.classroom.Selected()
	writeJSON(w, http.StatusOK, lesson)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.classroom.Get(r.PathValue("id"))
	if !ok {
		writeError(w, domain.ErrLessonNotFound)
		return
	}
	run, err := app.StartQuiz(lesson)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := struct {
		Title     string               `json:"title"`
		Questions []app.RunnerQuestion `json:"questions"`
	}{
		Title:     run.Title(),
		Questions: run.Questions(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) gradeQuiz(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.classroom.Get(r.PathValue("id"))
	if !ok {
		writeError(w, domain.ErrLessonNotFound)
		return
	}
	if !lesson.HasQuiz() {
		writeError(w, domain.ErrNoQuiz)
		return
	}
	var payload struct {
		// One entry per question; null means unanswered.
		Selections []*int `json:"selections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, domain.NewValidationError("body", "malformed JSON"))
		return
	}
	selections := make([]int, len(payload.Selections))
	for i, s := range payload.Selections {
		if s == nil {
			selections[i] = -1
		} else {
			selections[i] = *s
		}
	}
	writeJSON(w, http.StatusOK, app.GradeSelections(lesson.Quiz, selections))
}

func (h *Handler) getChat(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.classroom.ChatLog())
}

func (h *Handler) postChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, domain.NewValidationError("body", "malformed JSON"))
		return
	}
	msg, err := h.classroom.PostMessage(r.Context(), payload.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *Handler) exportSnapshot(w http.ResponseWriter, r *http.Request) {
	raw, err := h.classroom.EncodeSnapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+app.ExportFilename+`"`)
	_, _ = w.Write(raw)
}

func (h *Handler) importSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, domain.NewValidationError("body", "unreadable"))
		return
	}
	if err := h.classroom.ImportSnapshot(r.Context(), data); err != nil {
		writeError(w, err)
		return
	}
	resp := struct {
		Lessons []app.LessonView     `json:"lessons"`
		Chat    []domain.ChatMessage `json:"chat"`
	}{
		Lessons: h.classroom.LessonViews(),
		Chat:    h.classroom.ChatLog(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ve *domain.ValidationError
	var ie *domain.ImportError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.As(err, &ie):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrLessonNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNoLessonSelected), errors.Is(err, domain.ErrNoQuiz):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
