package plan

import (
	"encoding/json"
	"fmt"
)

// Drop payload kinds. The editor only acts on its own multi-session
// variant; every other kind is forwarded to the host unchanged.
const (
	PayloadTemplate     = "template"
	PayloadExercise     = "exercise"
	PayloadSession      = "session"
	PayloadBlock        = "block"
	PayloadMultiSession = "multi-session"
)

// DropPayload is the tagged union carried by a drag from the library
// panel (or from the plan itself, for multi-session drags). Item stays
// opaque for foreign kinds.
type DropPayload struct {
	Type string          `json:"type"`
	Item json.RawMessage `json:"item"`
}

// MultiSessionItem is the payload body of a multi-session drag: a set
// of source indices within one declared source day.
type MultiSessionItem struct {
	SourceDay string `json:"sourceDay"`
	Indices   []int  `json:"indices"`
}

// DecodeMultiSession parses the payload body of a multi-session drop.
// Calling it on any other payload kind is a caller error.
func (p DropPayload) DecodeMultiSession() (MultiSessionItem, error) {
	var item MultiSessionItem
	if p.Type != PayloadMultiSession {
		return item, fmt.Errorf("%w: payload type %q is not %s", ErrInvalidParameter, p.Type, PayloadMultiSession)
	}
	if err := json.Unmarshal(p.Item, &item); err != nil {
		return item, fmt.Errorf("%w: decoding multi-session payload: %v", ErrInvalidParameter, err)
	}
	return item, nil
}
