package model

import (
	"encoding/json"
	"fmt"
)

// Widget is one node of a serialized widget-tree snapshot, as produced by the
// scripting engine's object-tree dump. It is a point-in-time copy: the live
// UI may have moved on by the time it is searched.
type Widget struct {
	Properties Properties `json:"properties"`
	Children   []Widget   `json:"children,omitempty"`
}

// Properties carries the identifying attributes of a snapshot node.
type Properties struct {
	ID   string `json:"Id"`
	Text string `json:"Text,omitempty"`
	Type string `json:"Type,omitempty"`
}

// ParseTree decodes a serialized object-tree snapshot.
func ParseTree(data []byte) (*Widget, error) {
	var root Widget
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse object tree: %w", err)
	}
	return &root, nil
}
