package entity

import (
	"testing"

	"github.com/brandclash/brandclash-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOngoingGame() *Game {
	game := NewGame("000", PrivateType)
	game.Players = []*Player{
		{ID: "p1", Mark: PlayerOne, GameID: "000"},
		{ID: "p2", Mark: PlayerTwo, GameID: "000"},
	}
	game.Status = StatusOngoing

	return game
}

func TestNewGame(t *testing.T) {
	// When: creating a new game instance
	game := NewGame("000", PrivateType)

	// Then: the game should have the expected initial state
	require.NotNil(t, game)
	assert.Equal(t, PlayerOne, game.Turn)
	assert.Equal(t, StatusWaiting, game.Status)
	assert.Empty(t, game.Words)
	assert.Empty(t, game.LastWord)
	assert.Empty(t, game.Winner)
	assert.Equal(t, map[string]int{PlayerOne: 0, PlayerTwo: 0}, game.Scores)
}

func TestGame_AcceptWord(t *testing.T) {
	t.Run("Accepted word scores trimmed length and flips turn", func(t *testing.T) {
		// Given: an ongoing game with player one to move
		game := newOngoingGame()

		// When: player one plays "Nike" with surrounding whitespace
		err := game.AcceptWord(PlayerOne, "  Nike ", SourceDatabase)

		// Then: the word is recorded trimmed, scored by its length, turn passes
		require.NoError(t, err)
		assert.Equal(t, []WordEntry{{Player: PlayerOne, Word: "Nike", Source: SourceDatabase}}, game.Words)
		assert.Equal(t, "Nike", game.LastWord)
		assert.Equal(t, 4, game.Scores[PlayerOne])
		assert.Equal(t, 0, game.Scores[PlayerTwo])
		assert.Equal(t, PlayerTwo, game.Turn)
	})

	t.Run("Scores accumulate per player across turns", func(t *testing.T) {
		// Given: an ongoing game
		game := newOngoingGame()

		// When: both players play in turn
		require.NoError(t, game.AcceptWord(PlayerOne, "Nike", SourceDatabase))
		require.NoError(t, game.AcceptWord(PlayerTwo, "Esso", SourceDatabase))
		require.NoError(t, game.AcceptWord(PlayerOne, "Oreo", SourceExternal))

		// Then: scores only ever grow, by each accepted word's length
		assert.Equal(t, 8, game.Scores[PlayerOne])
		assert.Equal(t, 4, game.Scores[PlayerTwo])
		assert.Equal(t, "Oreo", game.LastWord)
		assert.Equal(t, PlayerTwo, game.Turn)
		assert.Len(t, game.Words, 3)
	})

	t.Run("Revision bumps on every accepted word", func(t *testing.T) {
		game := newOngoingGame()
		before := game.Revision

		require.NoError(t, game.AcceptWord(PlayerOne, "Nike", SourceDatabase))

		assert.Equal(t, before+1, game.Revision)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: an ongoing game with player one to move
		game := newOngoingGame()

		// When: player two tries to move first
		err := game.AcceptWord(PlayerTwo, "Nike", SourceDatabase)

		// Then: ErrNotYourTurn, state unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Empty(t, game.Words)
		assert.Equal(t, PlayerOne, game.Turn)
		assert.Equal(t, 0, game.Scores[PlayerTwo])
	})

	t.Run("Error when game is waiting for an opponent", func(t *testing.T) {
		game := NewGame("000", PublicType)

		err := game.AcceptWord(PlayerOne, "Nike", SourceDatabase)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Error after game finished", func(t *testing.T) {
		game := newOngoingGame()
		require.NoError(t, game.Forfeit(PlayerOne))

		err := game.AcceptWord(PlayerTwo, "Nike", SourceDatabase)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Error on blank word", func(t *testing.T) {
		game := newOngoingGame()

		err := game.AcceptWord(PlayerOne, "   ", SourceDatabase)

		require.ErrorIs(t, err, ErrEmptyWord)
		assert.Empty(t, game.Words)
	})
}

func TestGame_Forfeit(t *testing.T) {
	t.Run("Forfeiting player loses, opponent wins", func(t *testing.T) {
		// Given: an ongoing game
		game := newOngoingGame()

		// When: player one forfeits
		err := game.Forfeit(PlayerOne)

		// Then: the game is over and player two is the winner
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, PlayerTwo, game.Winner)
		assert.Empty(t, game.Turn)
	})

	t.Run("Winner is only ever set once the game is over", func(t *testing.T) {
		game := newOngoingGame()

		assert.Empty(t, game.Winner)
		require.NoError(t, game.Forfeit(PlayerTwo))
		assert.Equal(t, PlayerOne, game.Winner)
	})

	t.Run("Cannot forfeit a finished game", func(t *testing.T) {
		game := newOngoingGame()
		require.NoError(t, game.Forfeit(PlayerOne))

		err := game.Forfeit(PlayerTwo)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, PlayerTwo, game.Winner)
	})
}

func TestGame_Restart(t *testing.T) {
	// Given: a game that has been played on and finished
	game := newOngoingGame()
	require.NoError(t, game.AcceptWord(PlayerOne, "Nike", SourceDatabase))
	require.NoError(t, game.Forfeit(PlayerTwo))
	revision := game.Revision

	// When: restarting
	game.Restart()

	// Then: a clean slate with player one to move and a newer revision
	assert.Empty(t, game.Words)
	assert.Empty(t, game.LastWord)
	assert.Empty(t, game.Winner)
	assert.Equal(t, PlayerOne, game.Turn)
	assert.Equal(t, StatusOngoing, game.Status)
	assert.Equal(t, map[string]int{PlayerOne: 0, PlayerTwo: 0}, game.Scores)
	assert.Greater(t, game.Revision, revision)
}

func TestGame_NextRequiredLetter(t *testing.T) {
	game := newOngoingGame()

	// Given: no word played yet
	assert.Empty(t, game.NextRequiredLetter())

	// When: a word is accepted
	require.NoError(t, game.AcceptWord(PlayerOne, "Nike", SourceDatabase))

	// Then: the next word must start with its last letter
	assert.Equal(t, "e", game.NextRequiredLetter())
}

func TestGame_UsedWord(t *testing.T) {
	game := newOngoingGame()
	require.NoError(t, game.AcceptWord(PlayerOne, "Nike", SourceDatabase))

	assert.True(t, game.UsedWord("nike"))
	assert.True(t, game.UsedWord(" NIKE "))
	assert.False(t, game.UsedWord("Adidas"))
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, PlayerTwo, Opponent(PlayerOne))
	assert.Equal(t, PlayerOne, Opponent(PlayerTwo))
}

func TestPlayer_IsBot(t *testing.T) {
	bot := NewBotPlayer("42", PlayerTwo)

	assert.True(t, bot.IsBot())
	assert.Equal(t, "42", bot.GameID)
	assert.False(t, (&Player{ID: "human"}).IsBot())
}
