// meta/meta.go
package meta

// MIN_BOARD_SIZE and MAX_BOARD_SIZE bound the board sizes swept.
const MIN_BOARD_SIZE = 66
const MAX_BOARD_SIZE = 70

// MIN_DIE_FACES and MAX_DIE_FACES bound the die sizes swept.
const MIN_DIE_FACES = 4
const MAX_DIE_FACES = 4

// MIN_PLAYERS, MAX_PLAYERS and PLAYERS_STEP define the player counts tested on every board.
const MIN_PLAYERS = 4
const MAX_PLAYERS = 6
const PLAYERS_STEP = 2

// BOARDS_PER_COMBO defines the board instances generated per (size, faces).
const BOARDS_PER_COMBO = 50

// GAMES_PER_BOARD defines the games played per (board, player count).
const GAMES_PER_BOARD = 2000

// MOVES_PER_PLAYER caps a game at this many moves per player.
const MOVES_PER_PLAYER = 30

// WIN_BAND is the half width of the accepted good-win fraction around 0.5.
const WIN_BAND = 0.05

// MIN_FINISH_FRACTION is the least share of games that must finish under the cap.
const MIN_FINISH_FRACTION = 0.55

// MAX_BOARD_ATTEMPTS bounds regeneration of a board whose cuts cannot all be placed.
const MAX_BOARD_ATTEMPTS = 1000

// SEED is the default master seed.
const SEED = 1
