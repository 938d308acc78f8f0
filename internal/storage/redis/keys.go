package redis

import (
	"fmt"

	"github.com/mcoot/wordhunt/internal/model"
)

// Key prefix for all word hunt data
const keyPrefix = "wordhunt"

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

// roundKey returns the Redis key for a Round
func roundKey(id model.RoundID) string {
	return fmt.Sprintf("%s:round:%s", keyPrefix, id)
}

// activeRoundsIndexKey returns the Redis key for the SET of active round IDs
func activeRoundsIndexKey() string {
	return fmt.Sprintf("%s:idx:active_rounds", keyPrefix)
}

// categoryKey returns the Redis key for a Category
func categoryKey(id model.CategoryID) string {
	return fmt.Sprintf("%s:category:%s", keyPrefix, id)
}

// categoryOrderKey returns the Redis key for the LIST of category IDs in save order
func categoryOrderKey() string {
	return fmt.Sprintf("%s:idx:categories", keyPrefix)
}
