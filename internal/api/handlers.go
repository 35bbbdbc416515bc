package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starford/ordo/internal/settings"
	"github.com/starford/ordo/internal/task"
	"github.com/starford/ordo/internal/taskservice"
)

// eventPublisher is the subset of the SSE broker the handlers need.
type eventPublisher interface {
	PublishTaskEvent(kind string, lineIndex int)
}

// Handler holds the API route handlers.
type Handler struct {
	svc      *taskservice.Service
	settings *settings.Store
	events   eventPublisher
}

// NewHandler creates a Handler. events may be nil when no SSE broker is
// attached.
func NewHandler(svc *taskservice.Service, st *settings.Store, events eventPublisher) *Handler {
	return &Handler{svc: svc, settings: st, events: events}
}

// lineIndex extracts the {index} URL parameter. ok is false when the
// parameter is not a non-negative integer.
func lineIndex(r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseFlag reads a query flag the way the list view submits it.
func parseFlag(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// ListTasks handles GET /api/tasks. Query parameters override the
// stored settings; absent parameters fall back to them.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st := h.settings.Load()

	showDone := st.ShowDone
	if q.Has("show_done") {
		showDone = parseFlag(q.Get("show_done"))
	}
	dueOnly := st.ShowDueOnly
	if q.Has("show_due_only") {
		dueOnly = parseFlag(q.Get("show_due_only"))
	}
	mode := task.ParseSortMode(st.SortMode)
	if q.Has("sort") {
		mode = task.ParseSortMode(q.Get("sort"))
	}

	records := h.svc.Load(r.Context())
	records = task.Filter(records, showDone, dueOnly, task.DateOnly(time.Now()))
	task.Sort(records, mode)

	items := make([]TaskItem, 0, len(records))
	for i := range records {
		items = append(items, toTaskItem(&records[i], mode))
	}
	writeJSON(w, http.StatusOK, TaskListResponse{
		Tasks: items,
		Total: len(items),
		Sort:  string(mode),
	})
}

// AddTask handles POST /api/tasks.
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}

	if h.svc.Add(r.Context(), req.Title) && h.events != nil {
		h.events.PublishTaskEvent("added", -1)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleTask handles POST /api/tasks/{index}/toggle. An out-of-range
// index is a no-op; a dropped storage write is logged, not surfaced.
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	idx, ok := lineIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid line index"))
		return
	}
	if h.svc.Toggle(r.Context(), idx) && h.events != nil {
		h.events.PublishTaskEvent("toggled", idx)
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditTask handles PUT /api/tasks/{index}.
func (h *Handler) EditTask(w http.ResponseWriter, r *http.Request) {
	idx, ok := lineIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid line index"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req EditTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}
	due, ok := parseDueField(strings.TrimSpace(req.Due))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("due must be YYYY-MM-DD"))
		return
	}

	fields := task.Fields{
		Title:     req.Title,
		Project:   req.Project,
		Context:   req.Context,
		Reference: req.Reference,
		Due:       due,
		Done:      req.Done,
	}
	if h.svc.Edit(r.Context(), idx, fields) && h.events != nil {
		h.events.PublishTaskEvent("edited", idx)
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostponeTask handles POST /api/tasks/{index}/postpone.
func (h *Handler) PostponeTask(w http.ResponseWriter, r *http.Request) {
	idx, ok := lineIndex(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid line index"))
		return
	}
	due, wrote := h.svc.Postpone(r.Context(), idx)
	if !wrote {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if h.events != nil {
		h.events.PublishTaskEvent("postponed", idx)
	}
	writeJSON(w, http.StatusOK, PostponeResponse{Due: due.Format(task.DateLayout)})
}

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st := h.settings.Load()
	writeJSON(w, http.StatusOK, SettingsBody{
		ShowDone:    st.ShowDone,
		ShowDueOnly: st.ShowDueOnly,
		SortMode:    st.SortMode,
	})
}

// PutSettings handles PUT /api/settings.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SettingsBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	st := settings.Settings{
		ShowDone:    req.ShowDone,
		ShowDueOnly: req.ShowDueOnly,
		SortMode:    string(task.ParseSortMode(req.SortMode)),
	}
	if err := h.settings.Save(st); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to save settings"))
		return
	}
	writeJSON(w, http.StatusOK, SettingsBody(st))
}
