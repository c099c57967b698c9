package adapthttp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"studentbook/internal/app"
)

func (s *Server) handleStudents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.students.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var form app.StudentForm
		if err := parseJSON(r, &form); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		st, err := s.students.Create(r.Context(), &form)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"student":  st,
			"message":  fmt.Sprintf("Student %s added successfully!", st.Name),
			"category": "success",
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleStudentByRoll(w http.ResponseWriter, r *http.Request) {
	roll, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/students/"), 10, 64)
	if err != nil || roll <= 0 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		st, getErr := s.students.Get(r.Context(), roll)
		if getErr != nil {
			writeServiceError(w, getErr)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"student": st})
	case http.MethodPut:
		var form app.StudentForm
		if parseErr := parseJSON(r, &form); parseErr != nil {
			writeError(w, http.StatusBadRequest, parseErr.Error())
			return
		}
		// The roll in the path wins; a roll in the body is ignored.
		st, updErr := s.students.Update(r.Context(), roll, &form)
		if updErr != nil {
			writeServiceError(w, updErr)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"student":  st,
			"message":  fmt.Sprintf("Student %s updated successfully!", st.Name),
			"category": "success",
		})
	case http.MethodDelete:
		st, getErr := s.students.Get(r.Context(), roll)
		if getErr != nil {
			writeServiceError(w, getErr)
			return
		}
		if delErr := s.students.Delete(r.Context(), roll); delErr != nil {
			writeServiceError(w, delErr)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"message":  fmt.Sprintf("Student %s (Roll: %d) has been deleted.", st.Name, st.Roll),
			"category": "success",
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
