package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"pagecraft/common"
)

// Tool describes single callable tool.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Mutates     bool            `json:"mutates"`
	Params      json.RawMessage `json:"inputSchema"`
}

var tools = []Tool{
	{
		Name:        "get_available_components",
		Description: "List available layouts, optionally filtered by category or content type, and themes.",
		Params:      json.RawMessage(`{"type":"object","properties":{"category":{"type":"string"}}}`),
	},
	{
		Name:        "get_component_details",
		Description: "Get full definition of a single layout including slots and default style.",
		Params:      json.RawMessage(`{"type":"object","properties":{"layoutId":{"type":"string"}},"required":["layoutId"]}`),
	},
	{
		Name:        "create_page",
		Description: "Append new page built from layout with optional content and theme.",
		Mutates:     true,
		Params:      json.RawMessage(`{"type":"object","properties":{"layoutId":{"type":"string"},"content":{"type":"object"},"theme":{"type":"string"}},"required":["layoutId"]}`),
	},
	{
		Name:        "update_page_content",
		Description: "Set content of a single slot of an existing page.",
		Mutates:     true,
		Params:      json.RawMessage(`{"type":"object","properties":{"pageId":{"type":"string"},"slot":{"type":"string"},"content":{}},"required":["pageId","slot","content"]}`),
	},
	{
		Name:        "get_project_status",
		Description: "Summarize project and its pages.",
		Params:      json.RawMessage(`{"type":"object","properties":{}}`),
	},
	{
		Name:        "apply_theme",
		Description: "Apply theme to the whole project.",
		Mutates:     true,
		Params:      json.RawMessage(`{"type":"object","properties":{"themeId":{"type":"string"}},"required":["themeId"]}`),
	},
	{
		Name:        "validate_content",
		Description: "Check content against layout constraints without changing the project.",
		Params:      json.RawMessage(`{"type":"object","properties":{"layoutId":{"type":"string"},"content":{"type":"object"}},"required":["layoutId","content"]}`),
	},
	{
		Name:        "export_project",
		Description: "Export project as html, pdf, pptx, png, jpeg or json.",
		Params:      json.RawMessage(`{"type":"object","properties":{"format":{"type":"string"}},"required":["format"]}`),
	},
}

// Tools returns descriptions of all tools.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// Lookup finds tool by name.
func Lookup(name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

type callArgs struct {
	Category string          `json:"category"`
	LayoutID string          `json:"layoutId"`
	ItemID   string          `json:"pageId"`
	Slot     string          `json:"slot"`
	Theme    string          `json:"theme"`
	ThemeID  string          `json:"themeId"`
	Format   string          `json:"format"`
	Content  json.RawMessage `json:"content"`
}

// Call decodes JSON arguments and invokes tool by name.
func (s *Surface) Call(ctx context.Context, name string, args json.RawMessage) (res Result) {
	defer s.guard(name, &res)

	if _, ok := Lookup(name); !ok {
		return failure(fmt.Sprintf("Unknown tool %q", name), nil)
	}
	var a callArgs
	if len(bytes.TrimSpace(args)) > 0 && !bytes.Equal(bytes.TrimSpace(args), []byte("null")) {
		if err := json.Unmarshal(args, &a); err != nil {
			return failure("invalid arguments", err)
		}
	}
	s.log.Debug("Tool called", zap.String("tool", name), zap.ByteString("args", args))

	switch name {
	case "get_available_components":
		return s.ListAvailableLayouts(a.Category)
	case "get_component_details":
		return s.DescribeLayout(a.LayoutID)
	case "create_page":
		content, err := decodeContentMap(a.Content)
		if err != nil {
			return failure("invalid content", err)
		}
		return s.CreateItem(a.LayoutID, content, a.Theme)
	case "update_page_content":
		v, err := decodeValue(a.Content)
		if err != nil {
			return failure("invalid content", err)
		}
		return s.UpdateItemContent(a.ItemID, a.Slot, v)
	case "get_project_status":
		return s.GetProjectSummary()
	case "apply_theme":
		id := a.ThemeID
		if id == "" {
			id = a.Theme
		}
		return s.ApplyTheme(id)
	case "validate_content":
		content, err := decodeContentMap(a.Content)
		if err != nil {
			return failure("invalid content", err)
		}
		return s.ValidateContent(a.LayoutID, content)
	case "export_project":
		return s.ExportProject(ctx, a.Format)
	}
	return failure(fmt.Sprintf("Unknown tool %q", name), nil)
}

func decodeContentMap(raw json.RawMessage) (common.Content, error) {
	content := common.Content{}
	if len(raw) == 0 || string(raw) == "null" {
		return content, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	for slot, v := range m {
		sv, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", slot, err)
		}
		content[slot] = sv
	}
	return content, nil
}

// decodeValue accepts plain string, object with "text" key, or metric
// object with "value", "label" and "trend".
func decodeValue(raw json.RawMessage) (common.SlotValue, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return common.Text(""), nil
	}
	if raw[0] == '{' {
		var obj struct {
			Text *string `json:"text"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return common.SlotValue{}, err
		}
		if obj.Text != nil {
			return common.Text(*obj.Text), nil
		}
	}
	var v common.SlotValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return common.SlotValue{}, err
	}
	return v, nil
}
