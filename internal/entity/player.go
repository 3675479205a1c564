package entity

const (
	Circle Player = "circle"
	Cross  Player = "cross"

	// PlayerTie is the match result when the board fills up without a line.
	PlayerTie = "-"
)

// Player is one of the two sides. Circle always moves first.
type Player string

func (that Player) Valid() bool {
	return that == Circle || that == Cross
}

// Other returns the opponent of the player, or an empty Player when the identity is unknown.
func (that Player) Other() Player {
	switch that {
	case Circle:
		return Cross
	case Cross:
		return Circle
	default:
		return ""
	}
}
