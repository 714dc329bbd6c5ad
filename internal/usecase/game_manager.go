package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brandclash/brandclash-backend/internal/apperror"
	"github.com/brandclash/brandclash-backend/internal/entity"
	"github.com/brandclash/brandclash-backend/internal/pkg"
	"github.com/brandclash/brandclash-backend/internal/repository"
	"github.com/brandclash/brandclash-backend/internal/validator"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	GetWaitingPublicGame(ctx context.Context) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type wordValidator interface {
	ValidateWithFallback(ctx context.Context, word, previousWord string) validator.Result
}

type botService interface {
	MakeTurn(game *entity.Game) error
}

// GameManager - owns the game lifecycle: matchmaking, word submissions,
// forfeits and restarts. All state lives in the repositories; the manager
// itself is stateless.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	validator  wordValidator
	bot        botService
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, wordValidator wordValidator, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		validator:  wordValidator,
		bot:        bot,
	}
}

// SubmitWord - validates the word for the player's game and, when accepted,
// applies it: history, score, turn flip, and the bot's reply in bot games.
// The game revision is captured before the validation round trip; a restart
// that happened while the external lookup was in flight makes the stale
// submission fail with ErrGameRestarted instead of mutating the new game.
func (that *GameManager) SubmitWord(ctx context.Context, playerID, word string) (*entity.Game, validator.Result, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, validator.Result{}, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, validator.Result{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, validator.Result{}, err
	}

	if game.Turn != player.Mark {
		return game, validator.Result{}, apperror.ErrNotYourTurn
	}

	revision := game.Revision

	verdict := that.validator.ValidateWithFallback(ctx, word, game.LastWord)

	// the lookup may have taken a while; reload and drop the submission if
	// the game moved on without it
	game, err = that.getGameByID(ctx, player.GameID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, validator.Result{}, apperror.ErrGameRestarted
		}

		return nil, validator.Result{}, fmt.Errorf("failed to reload game: %w", err)
	}

	if game.Revision != revision {
		return game, validator.Result{}, apperror.ErrGameRestarted
	}

	if !verdict.Valid {
		return game, verdict, nil
	}

	if err = game.AcceptWord(player.Mark, word, verdict.Source); err != nil {
		return game, verdict, fmt.Errorf("failed to apply word: %w", err)
	}

	if game.IsWithBot() && game.IsOngoing() {
		if err = that.bot.MakeTurn(game); err != nil {
			return game, verdict, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return game, verdict, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.deleteGame(ctx, game)
	}

	return game, verdict, nil
}

// ForfeitGame - the player gives up; the opponent wins and the session is
// cleaned up.
func (that *GameManager) ForfeitGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.Forfeit(player.Mark); err != nil {
		return game, fmt.Errorf("failed to forfeit: %w", err)
	}

	that.deleteGame(ctx, game)

	return game, nil
}

// RestartGame - abandons the current chain and starts the same game over.
func (that *GameManager) RestartGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Restart()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *GameManager) JoinGameByID(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	existingGame, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == existingGame.ID {
		return existingGame, nil
	}

	if len(existingGame.Players) == 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameAlreadyExists, gameID)
	}

	player.GameID = existingGame.ID
	player.Mark = entity.PlayerTwo
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	existingGame.Status = entity.StatusOngoing
	existingGame.Players = append(existingGame.Players, player)
	if err = that.updateGame(ctx, existingGame); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return existingGame, nil
}

// CreateOrJoinToPublicGame - joins the first public game still waiting for
// an opponent, or opens a new one.
func (that *GameManager) CreateOrJoinToPublicGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	waitingGame, err := that.gameRepo.GetWaitingPublicGame(ctx)
	if errors.Is(err, repository.ErrNoWaitingPublicGames) {
		return that.createGame(ctx, player, entity.PublicType)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find waiting public game: %w", err)
	}

	return that.JoinGameByID(ctx, waitingGame.ID, player.ID)
}

func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return that.createGame(ctx, player, gameType)
	}

	existingGame, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error) {
	gameID := pkg.GenerateGameID()

	player.GameID = gameID
	player.Mark = entity.PlayerOne

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	newGame := entity.NewGame(gameID, gameType)
	newGame.Players = []*entity.Player{player}

	if newGame.IsWithBot() {
		newGame.Players = append(newGame.Players, entity.NewBotPlayer(gameID, entity.PlayerTwo))
		newGame.Status = entity.StatusOngoing
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame")

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		player.Mark = ""
		player.GameID = ""

		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to update player", "error", err)
		}
	}

	log.Info("game deleted", "gameID", game.ID)
}
