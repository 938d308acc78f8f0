package selection

import (
	"github.com/mcoot/wordhunt/internal/model"
)

// IntentKind is the kind of input event driving a selection
type IntentKind string

const (
	IntentPress   IntentKind = "press"
	IntentExtend  IntentKind = "extend"
	IntentRelease IntentKind = "release"
	IntentAbort   IntentKind = "abort" // Pointer left the grid
)

// Intent is a single input event
type Intent struct {
	Kind IntentKind
	Pos  model.Position // Unused for release and abort
}

// Press starts a drag at pos
func Press(pos model.Position) Intent {
	return Intent{Kind: IntentPress, Pos: pos}
}

// Extend moves the drag onto pos
func Extend(pos model.Position) Intent {
	return Intent{Kind: IntentExtend, Pos: pos}
}

// Release ends the drag and asks for a match
func Release() Intent {
	return Intent{Kind: IntentRelease}
}

// Abort ends the drag without matching
func Abort() Intent {
	return Intent{Kind: IntentAbort}
}

// OutcomeKind describes what an intent did to the selection
type OutcomeKind string

const (
	OutcomeIgnored  OutcomeKind = "ignored"
	OutcomeStarted  OutcomeKind = "started"
	OutcomeExtended OutcomeKind = "extended"
	OutcomeReleased OutcomeKind = "released"
	OutcomeAborted  OutcomeKind = "aborted"
)

// Outcome is the result of applying an intent.
// Path is set only for OutcomeReleased and holds the cells to match.
type Outcome struct {
	Kind OutcomeKind
	Path []model.Position
}

// Apply is the selection transition function. found reports cells that
// belong to already-matched words; they cannot be pressed or dragged over.
// The input selection is not modified.
func Apply(sel model.Selection, intent Intent, found func(model.Position) bool) (model.Selection, Outcome) {
	if found == nil {
		found = func(model.Position) bool { return false }
	}

	switch sel.State {
	case model.SelectionDragging:
		return applyDragging(sel, intent, found)
	default:
		return applyIdle(sel, intent, found)
	}
}

func applyIdle(sel model.Selection, intent Intent, found func(model.Position) bool) (model.Selection, Outcome) {
	if intent.Kind != IntentPress || found(intent.Pos) {
		return sel, Outcome{Kind: OutcomeIgnored}
	}
	return model.Selection{
		State:  model.SelectionDragging,
		Anchor: intent.Pos,
		Path:   []model.Position{intent.Pos},
	}, Outcome{Kind: OutcomeStarted}
}

func applyDragging(sel model.Selection, intent Intent, found func(model.Position) bool) (model.Selection, Outcome) {
	switch intent.Kind {
	case IntentExtend:
		if found(intent.Pos) || sel.Contains(intent.Pos) {
			return sel, Outcome{Kind: OutcomeIgnored}
		}
		if !extendsLine(sel, intent.Pos) {
			return model.IdleSelection(), Outcome{Kind: OutcomeAborted}
		}
		path := make([]model.Position, len(sel.Path), len(sel.Path)+1)
		copy(path, sel.Path)
		return model.Selection{
			State:  model.SelectionDragging,
			Anchor: sel.Anchor,
			Path:   append(path, intent.Pos),
		}, Outcome{Kind: OutcomeExtended}

	case IntentRelease:
		path := make([]model.Position, len(sel.Path))
		copy(path, sel.Path)
		return model.IdleSelection(), Outcome{Kind: OutcomeReleased, Path: path}

	case IntentAbort:
		return model.IdleSelection(), Outcome{Kind: OutcomeAborted}

	default:
		// A new press while dragging is ignored
		return sel, Outcome{Kind: OutcomeIgnored}
	}
}

// extendsLine checks the candidate against the anchor distance rule and, once
// the line has a direction, against that direction.
func extendsLine(sel model.Selection, candidate model.Position) bool {
	if !IsValidDirection(sel.Anchor, candidate, len(sel.Path)) {
		return false
	}
	if len(sel.Path) < 2 {
		return true
	}
	dr, dc := stepOf(sel.Anchor, sel.Path[1])
	cr, cc := stepOf(sel.Anchor, candidate)
	return dr == cr && dc == cc
}
