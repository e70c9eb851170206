// Package server exposes snapshot inspection as MCP tools.
package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/wippyai/odin-inspect/expect"
	"github.com/wippyai/odin-inspect/inspect"
	"github.com/wippyai/odin-inspect/snapshot"
)

// VariableInfo describes one rendered value.
type VariableInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Summary     string `json:"summary"`
	Address     string `json:"address,omitempty"`
	Index       int    `json:"index"`
	HasChildren bool   `json:"has_children"`
}

// VariableList is the structured result of the variables and children tools.
type VariableList struct {
	Items []VariableInfo `json:"items"`
}

// Tools serves inspection requests. Every request loads the snapshot anew.
type Tools struct {
	log   *zap.Logger
	cfg   inspect.Config
	pages uint32
}

// New creates the tool set. A nil cfg selects inspect defaults.
func New(cfg *inspect.Config, pages uint32, log *zap.Logger) *Tools {
	t := &Tools{pages: pages, log: log}
	if cfg != nil {
		t.cfg = *cfg
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	return t
}

func (t *Tools) load(ctx context.Context, req mcp.CallToolRequest) (*snapshot.Snapshot, *inspect.Inspector, error) {
	path, err := req.RequireString("snapshot")
	if err != nil {
		return nil, nil, err
	}
	snap, err := snapshot.Load(ctx, path, &snapshot.Config{MemoryLimitPages: t.pages})
	if err != nil {
		return nil, nil, err
	}
	return snap, inspect.New(snap.Target(), &t.cfg), nil
}

// selectValue resolves the variable and child path arguments.
func selectValue(ins *inspect.Inspector, snap *snapshot.Snapshot, req mcp.CallToolRequest) (inspect.Value, error) {
	name, err := req.RequireString("variable")
	if err != nil {
		return inspect.Value{}, err
	}
	v, ok := snap.Variable(name)
	if !ok {
		return inspect.Value{}, fmt.Errorf("no variable %q", name)
	}
	path, err := inspect.ParsePath(req.GetString("path", ""))
	if err != nil {
		return inspect.Value{}, err
	}
	return ins.Descend(v.Value(), path)
}

func info(ins *inspect.Inspector, i int, v inspect.Value) VariableInfo {
	vi := VariableInfo{
		Index:       i,
		Name:        v.Name(),
		Type:        inspect.DisplayType(v.Type()),
		Summary:     ins.Text(v),
		HasChildren: ins.Children(v).HasChildren(),
	}
	if !v.IsImmediate() && v.IsValid() {
		vi.Address = fmt.Sprintf("0x%x", v.Addr())
	}
	return vi
}

func (t *Tools) variablesHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, ins, err := t.load(ctx, req)
	if err != nil {
		return mcp.NewToolResultError("Failed to load snapshot: " + err.Error()), nil
	}
	defer snap.Close(ctx)

	var list VariableList
	var text strings.Builder
	for i, v := range snap.Variables() {
		vi := info(ins, i, v.Value())
		list.Items = append(list.Items, vi)
		fmt.Fprintf(&text, "%s: %s = %s\n", vi.Name, vi.Type, vi.Summary)
	}
	return mcp.NewToolResultStructured(list, text.String()), nil
}

func (t *Tools) summaryHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, ins, err := t.load(ctx, req)
	if err != nil {
		return mcp.NewToolResultError("Failed to load snapshot: " + err.Error()), nil
	}
	defer snap.Close(ctx)

	v, err := selectValue(ins, snap, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(ins.Text(v)), nil
}

func (t *Tools) childrenHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, ins, err := t.load(ctx, req)
	if err != nil {
		return mcp.NewToolResultError("Failed to load snapshot: " + err.Error()), nil
	}
	defer snap.Close(ctx)

	v, err := selectValue(ins, snap, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c := ins.Children(v)
	list := VariableList{Items: make([]VariableInfo, 0, c.NumChildren())}
	for i := 0; i < c.NumChildren(); i++ {
		list.Items = append(list.Items, info(ins, i, c.ChildAt(i)))
	}
	return mcp.NewToolResultStructured(list, ins.Describe(v)), nil
}

func (t *Tools) checkHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, ins, err := t.load(ctx, req)
	if err != nil {
		return mcp.NewToolResultError("Failed to load snapshot: " + err.Error()), nil
	}
	defer snap.Close(ctx)

	cases := snap.Cases()
	err = expect.Check(cases, func(name string) (string, error) {
		v, ok := snap.Variable(name)
		if !ok {
			return "", fmt.Errorf("no variable %q", name)
		}
		return ins.Text(v.Value()), nil
	})
	if err != nil {
		t.log.Debug("expectations failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("ok: %d expectations", len(cases))), nil
}

// Register defines all tools on s.
func (t *Tools) Register(s *server.MCPServer) {
	snapshotArg := mcp.WithString("snapshot", mcp.Required(), mcp.Description("Path to the snapshot YAML file describing types, memory and variables"))
	variableArg := mcp.WithString("variable", mcp.Required(), mcp.Description("Name of a variable declared in the snapshot"))
	pathArg := mcp.WithString("path", mcp.Description("Child indices separated by '/', as returned by the children tool (e.g. '0/2'). Empty selects the variable itself."))

	s.AddTool(mcp.NewTool("variables",
		mcp.WithDescription("List every variable of a snapshot with its Odin type and rendered value."),
		snapshotArg,
	), t.variablesHandler)

	s.AddTool(mcp.NewTool("summary",
		mcp.WithDescription("Render one value the way a debugger shows it: strings quoted, slices as [len]{...}, maps as map[len]{k = v}, unions as Type(value), pointers as &value."),
		snapshotArg, variableArg, pathArg,
	), t.summaryHandler)

	s.AddTool(mcp.NewTool("children",
		mcp.WithDescription("List the expandable children of a value: slice elements or chunks, map keys and values, the active union variant, struct fields or a pointer's target."),
		snapshotArg, variableArg, pathArg,
	), t.childrenHandler)

	s.AddTool(mcp.NewTool("check",
		mcp.WithDescription("Compare every variable's rendering with its 'expect' entry. %PTR% matches any address and %INT% any integer."),
		snapshotArg,
	), t.checkHandler)
}
