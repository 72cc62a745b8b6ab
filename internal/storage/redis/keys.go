package redis

import (
	"fmt"

	"github.com/eslteam/chesstutor/internal/model"
)

// Key prefix for all application data
const keyPrefix = "chesstutor"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// ratingKey returns the Redis key for a PlayerRating
func ratingKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:rating:%s", keyPrefix, playerID)
}

// gameKey returns the Redis key for a free-play Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// sessionKey returns the Redis key for a PuzzleSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// puzzleKey returns the Redis key for a PuzzleRecord
func puzzleKey(id model.PuzzleID) string {
	return fmt.Sprintf("%s:puzzle:%s", keyPrefix, id)
}

// puzzleIndexKey returns the Redis key for the SET of loaded puzzle ids
func puzzleIndexKey() string {
	return fmt.Sprintf("%s:idx:puzzles", keyPrefix)
}
