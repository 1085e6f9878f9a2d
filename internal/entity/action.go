package entity

const (
	ActionReady     ActionKind = "ready"
	ActionOccupy    ActionKind = "occupy"
	ActionSurrender ActionKind = "surrender"
)

type ActionKind string

// Action is a player intent. Cell is only set for occupy.
type Action struct {
	Kind ActionKind
	Cell Cell
}

func Ready() Action {
	return Action{Kind: ActionReady}
}

func Occupy(cell Cell) Action {
	return Action{Kind: ActionOccupy, Cell: cell}
}

func Surrender() Action {
	return Action{Kind: ActionSurrender}
}

func (that Action) String() string {
	if that.Kind == ActionOccupy {
		return string(that.Kind) + that.Cell.String()
	}

	return string(that.Kind)
}
