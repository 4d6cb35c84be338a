package project

import (
	"encoding/json"
	"maps"

	"pagecraft/common"
)

// Item is one layout instance in project sequence.
type Item struct {
	ID             string            `json:"id"`
	LayoutID       string            `json:"layoutId"`
	Content        common.Content    `json:"content"`
	StyleOverrides map[string]string `json:"styleOverrides"`
	Animation      common.Animation  `json:"animation,omitempty"`

	// fields of persisted document this version does not know about
	extra map[string]json.RawMessage
}

// Clone returns deep copy of the item.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	c.Content = it.Content.Clone()
	c.StyleOverrides = maps.Clone(it.StyleOverrides)
	if c.StyleOverrides == nil {
		c.StyleOverrides = map[string]string{}
	}
	c.extra = maps.Clone(it.extra)
	return &c
}

// Equal compares items by value.
func (it *Item) Equal(o *Item) bool {
	if it == nil || o == nil {
		return it == o
	}
	return it.ID == o.ID &&
		it.LayoutID == o.LayoutID &&
		it.Animation == o.Animation &&
		it.Content.Equal(o.Content) &&
		maps.Equal(it.StyleOverrides, o.StyleOverrides)
}

type itemAlias Item

func (it *Item) MarshalJSON() ([]byte, error) {
	content := it.Content
	if content == nil {
		content = common.Content{}
	}
	overrides := it.StyleOverrides
	if overrides == nil {
		overrides = map[string]string{}
	}
	a := itemAlias(*it)
	a.Content, a.StyleOverrides = content, overrides
	return marshalWithExtra(&a, it.extra)
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var a itemAlias
	extra, err := unmarshalWithExtra(data, &a, itemFields)
	if err != nil {
		return err
	}
	*it = Item(a)
	it.extra = extra
	if it.Content == nil {
		it.Content = common.Content{}
	}
	if it.StyleOverrides == nil {
		it.StyleOverrides = map[string]string{}
	}
	return nil
}

var itemFields = []string{"id", "layoutId", "content", "styleOverrides", "animation"}
