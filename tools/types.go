package tools

import (
	"encoding/json"
	"time"

	"pagecraft/catalog"
	"pagecraft/common"
)

// Result is the envelope every tool returns.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(data any) Result {
	return Result{Success: true, Data: data}
}

func failure(format string, err error) Result {
	if err == nil {
		return Result{Error: format}
	}
	return Result{Error: format + ": " + err.Error()}
}

// LayoutInfo is a layout as presented to tool callers.
type LayoutInfo struct {
	ID                      string             `json:"id"`
	Name                    string             `json:"name"`
	Category                string             `json:"category"`
	Subcategory             string             `json:"subcategory,omitempty"`
	Description             string             `json:"description,omitempty"`
	Slots                   []catalog.Slot     `json:"slots"`
	EditableStyleProperties []string           `json:"editableProperties,omitempty"`
	Animations              []common.Animation `json:"animations,omitempty"`
	// default style, details only
	Style string `json:"defaultCSS,omitempty"`
}

// ThemeInfo is a theme as presented to tool callers.
type ThemeInfo struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Colors catalog.Palette `json:"colors"`
}

// LayoutList is the result of get_available_components.
type LayoutList struct {
	Layouts      []LayoutInfo `json:"layouts"`
	Themes       []ThemeInfo  `json:"themes"`
	TotalLayouts int          `json:"totalLayouts"`
}

// CreatedItem is the result of create_page.
type CreatedItem struct {
	ItemID     string `json:"pageId"`
	LayoutID   string `json:"layoutId"`
	TotalItems int    `json:"totalPages"`
	Message    string `json:"message"`
}

// UpdatedContent is the result of update_page_content.
type UpdatedContent struct {
	ItemID    string `json:"pageId"`
	Slot      string `json:"slot"`
	NewLength int    `json:"newLength"`
}

// ItemSummary describes single project item.
type ItemSummary struct {
	ID           string           `json:"id"`
	LayoutID     string           `json:"layoutId"`
	Order        int              `json:"order"`
	ContentCount int              `json:"contentCount"`
	Animation    common.Animation `json:"animation"`
	Preview      string           `json:"preview,omitempty"`
}

// ProjectSummary is the result of get_project_status.
type ProjectSummary struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ContentType  string        `json:"contentType"`
	Theme        string        `json:"theme"`
	TotalItems   int           `json:"totalPages"`
	CurrentIndex int           `json:"currentIndex"`
	Items        []ItemSummary `json:"pages"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// AppliedTheme is the result of apply_theme.
type AppliedTheme struct {
	ThemeID   string `json:"themeId"`
	ThemeName string `json:"themeName"`
}

// Exported is the result of export_project. Text formats are returned as
// is, binary ones base64 encoded, project document is embedded as JSON.
type Exported struct {
	Format   string          `json:"format"`
	Shape    string          `json:"shape"`
	Pages    int             `json:"pages"`
	Bytes    int64           `json:"bytes"`
	Failures []string        `json:"failures,omitempty"`
	Encoding string          `json:"encoding,omitempty"`
	Content  string          `json:"content,omitempty"`
	Document json.RawMessage `json:"data,omitempty"`
}
