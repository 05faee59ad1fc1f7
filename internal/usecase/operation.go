package usecase

import (
	"fmt"

	"resume-builder/internal/model"
)

// OpKind names a form action.
type OpKind string

const (
	OpSetScalar           OpKind = "set_scalar"
	OpSetTopLevel         OpKind = "set_top_level"
	OpSetElement          OpKind = "set_element"
	OpAppendElement       OpKind = "append_element"
	OpSetNestedElement    OpKind = "set_nested_element"
	OpAppendNestedElement OpKind = "append_nested_element"
	OpReset               OpKind = "reset"
)

// Operation is one form action as the UI sends it. Which fields matter
// depends on Op.
type Operation struct {
	Op         OpKind `json:"op"`
	Section    string `json:"section,omitempty"`
	Field      string `json:"field,omitempty"`
	Subsection string `json:"subsection,omitempty"`
	Index      int    `json:"index,omitempty"`
	Value      string `json:"value,omitempty"`
}

// Apply is the document reducer: it returns the document that results from
// op, or doc itself together with an error.
func Apply(doc model.Resume, op Operation) (model.Resume, error) {
	switch op.Op {
	case OpSetScalar:
		return SetScalar(doc, op.Section, op.Field, op.Value)
	case OpSetTopLevel:
		field := op.Field
		if field == "" {
			field = op.Section
		}
		return SetTopLevelScalar(doc, field, op.Value)
	case OpSetElement:
		return SetArrayElement(doc, op.Section, op.Index, op.Value)
	case OpAppendElement:
		return AppendArrayElement(doc, op.Section, op.Value)
	case OpSetNestedElement:
		return SetNestedArrayElement(doc, op.Section, op.Subsection, op.Index, op.Value)
	case OpAppendNestedElement:
		return AppendNestedArrayElement(doc, op.Section, op.Subsection, op.Value)
	case OpReset:
		return model.Default(), nil
	}
	return doc, fmt.Errorf("%w: %q", ErrUnknownOperation, op.Op)
}
