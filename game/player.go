package game

// Player is one of the two sides. First (red) always moves first.
type Player int

const (
	First Player = iota
	Second
)

// Players returns both players in their total order.
func Players() [2]Player {
	return [2]Player{First, Second}
}

// Inverse returns the opponent.
func (p Player) Inverse() Player {
	if p == First {
		return Second
	}
	return First
}

func (p Player) String() string {
	switch p {
	case First:
		return "red"
	case Second:
		return "green"
	}
	return "unknown"
}
