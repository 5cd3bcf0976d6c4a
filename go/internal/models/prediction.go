package models

// Side identifies which team of a game a prediction picks
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Valid reports whether s is a known side
func (s Side) Valid() bool {
	return s == SideHome || s == SideAway
}

