package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/eslteam/chesstutor/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.GameTTL = time.Hour
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerGetsTTL() {
	guest := &model.Player{ID: "guest-1", IsGuest: true}
	err := s.storage.SavePlayer(s.ctx, guest)
	s.Require().NoError(err)

	ttl := s.mini.TTL(playerKey("guest-1"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestRegisteredPlayerHasNoTTL() {
	player := &model.Player{ID: "player-1", IsGuest: false}
	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	ttl := s.mini.TTL(playerKey("player-1"))
	s.Equal(time.Duration(0), ttl)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1"})

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestRegisteredPlayerLookupByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash",
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.PlayerID)
	s.Equal("hash", retrieved.PasswordHash)
}

func (s *StorageSuite) TestRegisteredPlayerUnknownUsername() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Rating tests

func (s *StorageSuite) TestSaveAndGetRating() {
	rating := &model.PlayerRating{
		PlayerID: "player-1",
		Elo:      912,
	}

	err := s.storage.SaveRating(s.ctx, rating)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRating(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(912, retrieved.Elo)
}

func (s *StorageSuite) TestGetRatingNotFound() {
	_, err := s.storage.GetRating(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrRatingNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGameRoundTripsBoard() {
	game := &model.Game{
		ID:            "game-1",
		PlayerID:      "player-1",
		Board:         model.DefaultBoard(),
		CurrentPlayer: model.Black,
	}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.DefaultBoard(), retrieved.Board)
	s.Equal(model.Black, retrieved.CurrentPlayer)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSessionRoundTripsMoves() {
	moves, err := model.ParseMoveList("e8d7 a2e6 d7d8 f7f8")
	s.Require().NoError(err)

	session := &model.PuzzleSession{
		ID:            "session-1",
		PuzzleID:      "00sHx",
		Moves:         moves,
		CurrentStep:   2,
		AwaitingReply: true,
	}

	err = s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(moves, retrieved.Moves)
	s.Equal(2, retrieved.CurrentStep)
	s.True(retrieved.AwaitingReply)
}

func (s *StorageSuite) TestSessionGetsTTL() {
	_ = s.storage.SaveSession(s.ctx, &model.PuzzleSession{ID: "session-1"})

	ttl := s.mini.TTL(sessionKey("session-1"))
	s.Equal(time.Hour, ttl)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, &model.PuzzleSession{ID: "session-1"})

	err := s.storage.DeleteSession(s.ctx, "session-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Puzzle catalog tests

func (s *StorageSuite) TestSaveAndListPuzzles() {
	puzzles := []*model.PuzzleRecord{
		{ID: "p1", Rating: 1000, Themes: []string{"mate"}},
		{ID: "p2", Rating: 1500},
	}

	err := s.storage.SavePuzzles(s.ctx, puzzles)
	s.Require().NoError(err)

	ids, err := s.storage.ListPuzzleIDs(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]model.PuzzleID{"p1", "p2"}, ids)

	p, err := s.storage.GetPuzzle(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal([]string{"mate"}, p.Themes)
}

func (s *StorageSuite) TestGetPuzzleNotFound() {
	_, err := s.storage.GetPuzzle(s.ctx, "p1")
	s.ErrorIs(err, model.ErrPuzzleNotFound)
}

func (s *StorageSuite) TestSavePuzzlesEmptyIsNoOp() {
	err := s.storage.SavePuzzles(s.ctx, nil)
	s.Require().NoError(err)

	ids, err := s.storage.ListPuzzleIDs(s.ctx)
	s.Require().NoError(err)
	s.Empty(ids)
}
