package domain

import (
	"fmt"
	"strings"
)

// Tag is a user tag; "name" or "name:value"
type Tag struct {
	Name  string
	Value *string
}

// String returns the wire form of the tag
func (t Tag) String() string {
	if t.Value == nil {
		return t.Name
	}
	return t.Name + ":" + *t.Value
}

// ParseTag parses "name", "name:value" or the "#value" shorthand for "name:value"
func ParseTag(raw string) (Tag, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "#") {
		raw = "name:" + strings.TrimPrefix(raw, "#")
	}
	if raw == "" {
		return Tag{}, fmt.Errorf("empty tag")
	}

	name, value, hasValue := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, fmt.Errorf("tag %q has no name", raw)
	}

	tag := Tag{Name: name}
	if hasValue {
		value = strings.TrimSpace(value)
		if value == "" {
			return Tag{}, fmt.Errorf("tag %q has an empty value", raw)
		}
		tag.Value = &value
	}
	return tag, nil
}

// ParseTags parses and deduplicates raw tags, keeping first-seen order
func ParseTags(raw []string) ([]Tag, error) {
	seen := make(map[string]bool, len(raw))
	tags := make([]Tag, 0, len(raw))
	for _, r := range raw {
		tag, err := ParseTag(r)
		if err != nil {
			return nil, err
		}
		if seen[tag.String()] {
			continue
		}
		seen[tag.String()] = true
		tags = append(tags, tag)
	}
	return tags, nil
}
