// meta/meta.go
package meta

// BOARD_RADIUS is the radius of the default hexagonal board (61 cells).
const BOARD_RADIUS = 4

// SEARCH_DEPTH is the default lookahead of the search opponent.
const SEARCH_DEPTH = 4

// WIN_LENGTH is the shortest run that wins for the player who made it.
const WIN_LENGTH = 4

// MAX_WIN_LENGTH is the longest run that still wins.
const MAX_WIN_LENGTH = 5

// LOSE_LENGTH is the run length that loses for the player who made it.
const LOSE_LENGTH = 3

// MAX_TURNS bounds a single game; a full default board ends the game sooner.
const MAX_TURNS = 300
