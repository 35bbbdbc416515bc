// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the task list as tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ordo/internal/task"
	"github.com/starford/ordo/internal/taskservice"
)

// Server wraps the MCP server with task tools.
type Server struct {
	mcp *server.MCPServer
	svc *taskservice.Service
}

// New creates a new MCP server with all task tools registered.
func New(svc *taskservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Ordo",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List task records from the document, optionally sorted and including completed tasks."),
		mcp.WithString("sort", mcp.Description("Sort mode: topic, location, or date (default topic)")),
		mcp.WithBoolean("show_done", mcp.Description("Include completed tasks (default false)")),
	), s.listTasks)

	s.mcp.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Add a new open task, stamped due today, inserted before the --- separator. "+
			"The title is free text; read the ordo://task-format resource for the line grammar."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
	), s.addTask)

	s.mcp.AddTool(mcp.NewTool("toggle_task",
		mcp.WithDescription("Invert the checkbox state of the task at the given line index. "+
			"Line indices come from list_tasks and are only valid until the next mutation."),
		mcp.WithNumber("line_index", mcp.Required(), mcp.Description("Zero-based line index of the task")),
	), s.toggleTask)

	s.mcp.AddTool(mcp.NewTool("edit_task",
		mcp.WithDescription("Rewrite the task at the given line index from the supplied fields. "+
			"Omitted optional fields are removed from the line; the ^marker identifier is always preserved."),
		mcp.WithNumber("line_index", mcp.Required(), mcp.Description("Zero-based line index of the task")),
		mcp.WithString("title", mcp.Required(), mcp.Description("New title")),
		mcp.WithString("project", mcp.Description("Project token (without the + prefix)")),
		mcp.WithString("context", mcp.Description("Context token (without the @ prefix)")),
		mcp.WithString("due", mcp.Description("Due date as YYYY-MM-DD, empty to remove")),
		mcp.WithString("reference", mcp.Description("Cross-reference text (without brackets)")),
		mcp.WithBoolean("done", mcp.Description("Checkbox state (default false)")),
	), s.editTask)

	s.mcp.AddTool(mcp.NewTool("postpone_task",
		mcp.WithDescription("Move the due date of the task at the given line index to tomorrow."),
		mcp.WithNumber("line_index", mcp.Required(), mcp.Description("Zero-based line index of the task")),
	), s.postponeTask)

	// Resource: task line grammar contract.
	s.mcp.AddResource(
		mcp.NewResource("ordo://task-format", "Task Format Contract",
			mcp.WithResourceDescription("Canonical task line format for the document."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTaskFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := task.ParseSortMode(req.GetString("sort", "topic"))
	showDone := req.GetBool("show_done", false)

	records := s.svc.Load(ctx)
	records = task.Filter(records, showDone, false, task.DateOnly(time.Now()))
	task.Sort(records, mode)

	type item struct {
		task.Record
		Due   string `json:"due,omitempty"`
		Group string `json:"group,omitempty"`
	}
	items := make([]item, 0, len(records))
	for i := range records {
		it := item{Record: records[i], Group: task.GroupLabel(mode, &records[i])}
		if records[i].Due != nil {
			it.Due = records[i].Due.Format(task.DateLayout)
		}
		items = append(items, it)
	}

	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("title must not be empty"), nil
	}
	if !s.svc.Add(ctx, title) {
		return mcp.NewToolResultError("task was not added"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added: %s", strings.TrimSpace(title))), nil
}

func (s *Server) toggleTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, err := req.RequireInt("line_index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !s.svc.Toggle(ctx, idx) {
		return mcp.NewToolResultError(fmt.Sprintf("no task at line %d", idx)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("toggled line %d", idx)), nil
}

func (s *Server) editTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, err := req.RequireInt("line_index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("title must not be empty"), nil
	}

	fields := task.Fields{
		Title:     title,
		Project:   req.GetString("project", ""),
		Context:   req.GetString("context", ""),
		Reference: req.GetString("reference", ""),
		Done:      req.GetBool("done", false),
	}
	if dueStr := strings.TrimSpace(req.GetString("due", "")); dueStr != "" {
		d, err := time.Parse(task.DateLayout, dueStr)
		if err != nil {
			return mcp.NewToolResultError("due must be YYYY-MM-DD"), nil
		}
		fields.Due = &d
	}

	if !s.svc.Edit(ctx, idx, fields) {
		return mcp.NewToolResultError(fmt.Sprintf("no task at line %d", idx)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("updated line %d", idx)), nil
}

func (s *Server) postponeTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, err := req.RequireInt("line_index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	due, ok := s.svc.Postpone(ctx, idx)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no task at line %d", idx)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("postponed line %d to %s", idx, due.Format(task.DateLayout))), nil
}

func (s *Server) readTaskFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ordo://task-format",
			MIMEType: "text/markdown",
			Text:     TaskFormatContract,
		},
	}, nil
}
