package entity

const botIDPrefix = "bot:"

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Mark   string `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

func (that *Player) IsBot() bool {
	return len(that.ID) >= len(botIDPrefix) && that.ID[:len(botIDPrefix)] == botIDPrefix
}

// NewBotPlayer - the built-in opponent for single player games.
func NewBotPlayer(gameID, mark string) *Player {
	return &Player{
		ID:     botIDPrefix + gameID,
		Name:   "BrandBot",
		Mark:   mark,
		GameID: gameID,
	}
}
