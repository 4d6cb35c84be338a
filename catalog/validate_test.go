package catalog

import (
	"slices"
	"strings"
	"testing"

	"pagecraft/common"
)

func TestValidateContent(t *testing.T) {
	layout, ok := Default().Layout("title-slide")
	if !ok {
		t.Fatal("title-slide not found")
	}

	tests := []struct {
		name     string
		content  common.Content
		valid    bool
		errors   []string
		warnings int
	}{
		{
			name:    "complete",
			content: common.ContentFromStrings(map[string]string{"title": "Hello", "subtitle": "World"}),
			valid:   true,
		},
		{
			name:    "missing required",
			content: common.Content{},
			errors:  []string{"title is required"},
		},
		{
			name:    "blank required",
			content: common.ContentFromStrings(map[string]string{"title": "   "}),
			errors:  []string{"title is required"},
		},
		{
			name:    "too long",
			content: common.ContentFromStrings(map[string]string{"title": strings.Repeat("a", 61)}),
			errors:  []string{"title exceeds max 60 characters (current: 61)"},
		},
		{
			name:    "characters are counted not bytes",
			content: common.ContentFromStrings(map[string]string{"title": strings.Repeat("я", 60)}),
			valid:   true,
		},
		{
			name:     "unknown keys only warn",
			content:  common.ContentFromStrings(map[string]string{"title": "Hi", "zeta": "x", "alpha": "y"}),
			valid:    true,
			warnings: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateContent(layout, tt.content)
			if r.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (errors %v)", r.Valid, tt.valid, r.Errors)
			}
			if tt.errors == nil {
				tt.errors = []string{}
			}
			if !slices.Equal(r.Errors, tt.errors) {
				t.Errorf("Errors = %q, want %q", r.Errors, tt.errors)
			}
			if len(r.Warnings) != tt.warnings {
				t.Errorf("Warnings = %q, want %d", r.Warnings, tt.warnings)
			}
			if len(r.Slots) != len(layout.Slots) {
				t.Errorf("expected status for every slot, got %v", r.Slots)
			}
		})
	}
}

func TestValidateContent_SlotStatus(t *testing.T) {
	layout, _ := Default().Layout("title-slide")
	r := ValidateContent(layout, common.ContentFromStrings(map[string]string{"title": "Hello", "b": "1", "a": "2"}))

	st := r.Slots["title"]
	if !st.Valid || st.CurrentLength != 5 || st.MaxLength != 60 || !st.Required {
		t.Errorf("title status = %+v", st)
	}
	if st := r.Slots["subtitle"]; !st.Valid || st.CurrentLength != 0 || st.Required {
		t.Errorf("subtitle status = %+v", st)
	}
	if len(r.Warnings) != 2 || !strings.HasPrefix(r.Warnings[0], "a ") || !strings.HasPrefix(r.Warnings[1], "b ") {
		t.Errorf("warnings are not sorted: %q", r.Warnings)
	}
}

func TestValidateContent_Metric(t *testing.T) {
	layout, _ := Default().Layout("stats-slide")
	r := ValidateContent(layout, common.Content{"stat1": common.MetricValue("98%", "Uptime", "up")})
	if !r.Valid {
		t.Errorf("unexpected errors %v", r.Errors)
	}
	if got := r.Slots["stat1"].CurrentLength; got != len("98%|Uptime|up") {
		t.Errorf("metric length = %d", got)
	}
}

func TestSlot_PlaceholderText(t *testing.T) {
	tests := []struct {
		slot Slot
		want string
	}{
		{Slot{ID: "title", Placeholder: "Mine"}, "Mine"},
		{Slot{ID: "title"}, "Your Title Here"},
		{Slot{ID: "ctaSecondary"}, "Learn More"},
		{Slot{ID: "background"}, ""},
		{Slot{ID: "mystery"}, "[mystery]"},
	}
	for _, tt := range tests {
		if got := tt.slot.PlaceholderText(); got != tt.want {
			t.Errorf("PlaceholderText(%s) = %q, want %q", tt.slot.ID, got, tt.want)
		}
	}
}
