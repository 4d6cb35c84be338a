package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"pagecraft/common"
	"pagecraft/css"
)

type enumValue interface {
	IsValid() bool
}

var definitionValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		if e, ok := fl.Field().Interface().(enumValue); ok {
			return e.IsValid()
		}
		return false
	}); err != nil {
		// this should never happen
		panic(err)
	}
	if err := v.RegisterValidation("csscolor", func(fl validator.FieldLevel) bool {
		return css.IsColor(fl.Field().String())
	}); err != nil {
		// this should never happen
		panic(err)
	}
	return v
})

func validateDefinition(def any) error {
	return definitionValidator().Struct(def)
}

// SlotStatus is validation result of a single slot.
type SlotStatus struct {
	Valid         bool     `json:"valid"`
	CurrentLength int      `json:"currentLength"`
	MaxLength     int      `json:"maxChars,omitempty"`
	Required      bool     `json:"required"`
	Errors        []string `json:"errors,omitempty"`
}

// Report is advisory validation result of content against layout
// constraints. It never blocks writes.
type Report struct {
	Valid    bool                  `json:"valid"`
	Errors   []string              `json:"errors"`
	Warnings []string              `json:"warnings"`
	Slots    map[string]SlotStatus `json:"slotStatus"`
}

// ValidateContent checks required slots are not blank and text does not
// exceed declared maximum length in characters. Content keys which are not
// layout slots produce warnings only.
func ValidateContent(layout *Layout, content common.Content) *Report {
	r := &Report{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
		Slots:    make(map[string]SlotStatus, len(layout.Slots)),
	}
	for _, slot := range layout.Slots {
		value, present := content[slot.ID]
		st := SlotStatus{
			Valid:         true,
			CurrentLength: value.Len(),
			MaxLength:     slot.MaxLength,
			Required:      slot.Required,
		}
		if slot.Required && (!present || value.IsBlank()) {
			st.Errors = append(st.Errors, fmt.Sprintf("%s is required", slot.ID))
		}
		if slot.MaxLength > 0 && st.CurrentLength > slot.MaxLength {
			st.Errors = append(st.Errors, fmt.Sprintf("%s exceeds max %d characters (current: %d)", slot.ID, slot.MaxLength, st.CurrentLength))
		}
		if len(st.Errors) > 0 {
			st.Valid = false
			r.Valid = false
			r.Errors = append(r.Errors, st.Errors...)
		}
		r.Slots[slot.ID] = st
	}
	for _, key := range sortedKeys(content) {
		if _, ok := layout.Slot(key); !ok {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s is not a slot of layout %q and will be ignored", key, layout.ID))
		}
	}
	return r
}

func sortedKeys(c common.Content) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
