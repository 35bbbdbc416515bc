package api

import (
	"time"

	"github.com/starford/ordo/internal/task"
)

// TaskItem is one task in a list response. Group is the derived display
// label for the active sort mode; it is computed per response and never
// stored.
type TaskItem struct {
	LineIndex int    `json:"line_index"`
	Title     string `json:"title"`
	Section   string `json:"section"`
	Project   string `json:"project,omitempty"`
	Context   string `json:"context,omitempty"`
	Due       string `json:"due,omitempty"`
	Reference string `json:"reference,omitempty"`
	Marker    string `json:"marker,omitempty"`
	Done      bool   `json:"done"`
	Group     string `json:"group,omitempty"`
}

// TaskListResponse wraps a filtered, sorted task listing.
type TaskListResponse struct {
	Tasks []TaskItem `json:"tasks"`
	Total int        `json:"total"`
	Sort  string     `json:"sort"`
}

// AddTaskRequest is the request body for creating a task.
type AddTaskRequest struct {
	Title string `json:"title"`
}

// EditTaskRequest is the request body for a free-form edit. The
// identifier marker is not part of the surface: it is preserved from
// the existing line and cannot be changed.
type EditTaskRequest struct {
	Title     string `json:"title"`
	Project   string `json:"project"`
	Context   string `json:"context"`
	Due       string `json:"due"`
	Reference string `json:"reference"`
	Done      bool   `json:"done"`
}

// PostponeResponse reports the new due date after a postpone.
type PostponeResponse struct {
	Due string `json:"due"`
}

// SettingsBody is the settings blob as exposed over the API.
type SettingsBody struct {
	ShowDone    bool   `json:"show_done"`
	ShowDueOnly bool   `json:"show_due_only"`
	SortMode    string `json:"sort_mode"`
}

func toTaskItem(r *task.Record, mode task.SortMode) TaskItem {
	item := TaskItem{
		LineIndex: r.LineIndex,
		Title:     r.Title,
		Section:   r.Section,
		Project:   r.Project,
		Context:   r.Context,
		Reference: r.Reference,
		Marker:    r.Marker,
		Done:      r.Done,
		Group:     task.GroupLabel(mode, r),
	}
	if r.Due != nil {
		item.Due = r.Due.Format(task.DateLayout)
	}
	return item
}

func parseDueField(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	d, err := time.Parse(task.DateLayout, s)
	if err != nil {
		return nil, false
	}
	return &d, true
}
