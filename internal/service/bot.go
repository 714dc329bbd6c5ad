package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/brandclash/brandclash-backend/internal/brand"
	"github.com/brandclash/brandclash-backend/internal/chain"
	"github.com/brandclash/brandclash-backend/internal/entity"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	dictionary *brand.Dictionary
}

func NewBotService(dictionary *brand.Dictionary) BotService {
	return &botService{dictionary: dictionary}
}

// MakeTurn - the bot plays a random dictionary brand that continues the
// chain and has not been used yet. When no such brand exists the bot
// forfeits, which hands the win to the human.
func (that *botService) MakeTurn(game *entity.Game) error {
	var botPlayer *entity.Player
	for _, player := range game.Players {
		if player.IsBot() {
			botPlayer = player
			break
		}
	}

	if botPlayer == nil {
		return ErrBotNotFound
	}

	candidates := make([]string, 0)
	for _, entry := range that.dictionary.Brands() {
		if !chain.Continues(entry.Name, game.LastWord) {
			continue
		}

		if game.UsedWord(entry.Name) {
			continue
		}

		candidates = append(candidates, entry.Name)
	}

	if len(candidates) == 0 {
		if err := game.Forfeit(botPlayer.Mark); err != nil {
			return fmt.Errorf("bot failed to forfeit: %w", err)
		}

		return nil
	}

	chosenWord := candidates[rand.Intn(len(candidates))] //nolint: gosec // it's ok

	if err := game.AcceptWord(botPlayer.Mark, chosenWord, entity.SourceDatabase); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
