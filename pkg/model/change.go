package model

// ChangeType classifies a single-key mutation.
type ChangeType string

const (
	ChangeNew    ChangeType = "new"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// EventChange is fired after every mutation of a Node or of any Node below it.
const EventChange = "change"

// Change describes a single-key mutation. It is the argument of "<key>:<type>" events.
// NewValue is nil for deletions.
type Change struct {
	Type     ChangeType `json:"type"`
	Name     string     `json:"name"`
	OldValue any        `json:"oldValue,omitempty"`
	NewValue any        `json:"newValue,omitempty"`
}

// EventName returns the event fired for a change of type t at key.
func EventName(key string, t ChangeType) string {
	return key + ":" + string(t)
}

// ChangeOf extracts the Change carried by an event's arguments.
// Bubbled "<key>:update" events carry no descriptor; ok is false for them.
func ChangeOf(args []any) (Change, bool) {
	if len(args) == 0 {
		return Change{}, false
	}
	c, ok := args[0].(Change)
	return c, ok
}

// Bubble is the argument of a "change" event forwarded from a descendant.
// Path lists the keys from the Node that fired down to the Node that was mutated.
// A "change" fired for the Node's own mutation carries no arguments.
type Bubble struct {
	Path []string
}

// BubbleOf extracts the Bubble carried by a "change" event's arguments.
func BubbleOf(args []any) (Bubble, bool) {
	if len(args) == 0 {
		return Bubble{}, false
	}
	b, ok := args[0].(Bubble)
	return b, ok
}
