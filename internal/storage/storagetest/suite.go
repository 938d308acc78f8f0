// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/storage"
)

// Suite runs the common storage checks. Backends embed it and set Storage in SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// SampleRound returns an active round with a small grid and two words
func SampleRound(id model.RoundID, playerID model.PlayerID) *model.Round {
	grid := model.NewGrid(3, 4)
	for row, letters := range []string{"CATX", "DOGY", "ZZZZ"} {
		for col, r := range letters {
			grid.Set(model.Position{Row: row, Col: col}, r)
		}
	}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Round{
		ID:         id,
		PlayerID:   playerID,
		CategoryID: "animals",
		State:      model.RoundStateActive,
		Grid:       grid,
		Words: []model.PlacedWord{
			{Word: "CAT", Path: []model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
			{Word: "DOG", Path: []model.Position{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}},
		},
		Found:            []bool{false, false},
		Selection:        model.IdleSelection(),
		DurationSeconds:  120,
		RemainingSeconds: 120,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Player tests

func (s *Suite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		Address:     "0x52908400098527886E0F7030069857D2E4169EE7",
		IsGuest:     true,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	err := s.Storage.SavePlayer(s.Ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
	s.Equal(player.Address, retrieved.Address)
	s.True(retrieved.IsGuest)
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	s.Require().NoError(s.Storage.SavePlayer(s.Ctx, player))

	err := s.Storage.DeletePlayer(s.Ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.Storage.GetPlayer(s.Ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *Suite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	err := s.Storage.SaveRegisteredPlayer(s.Ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetRegisteredPlayer(s.Ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
	s.Equal(rp.PasswordHash, retrieved.PasswordHash)
}

func (s *Suite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	s.Require().NoError(s.Storage.SaveRegisteredPlayer(s.Ctx, rp))

	retrieved, err := s.Storage.GetRegisteredPlayerByUsername(s.Ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *Suite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.Storage.GetRegisteredPlayerByUsername(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Round tests

func (s *Suite) TestSaveAndGetRound() {
	round := SampleRound("round-1", "player-1")

	err := s.Storage.SaveRound(s.Ctx, round)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetRound(s.Ctx, "round-1")
	s.Require().NoError(err)
	s.Equal(round.PlayerID, retrieved.PlayerID)
	s.Equal(round.State, retrieved.State)
	s.Equal(round.Grid.RowStrings(), retrieved.Grid.RowStrings())
	s.Equal(round.Words, retrieved.Words)
	s.Equal(round.Found, retrieved.Found)
	s.Equal(round.RemainingSeconds, retrieved.RemainingSeconds)
	s.True(round.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *Suite) TestSaveRoundOverwrites() {
	round := SampleRound("round-1", "player-1")
	s.Require().NoError(s.Storage.SaveRound(s.Ctx, round))

	round.Found[1] = true
	round.FoundCells = append(round.FoundCells, round.Words[1].Path...)
	round.CorrectCount = 1
	round.Selection = model.Selection{
		State:  model.SelectionDragging,
		Anchor: model.Position{Row: 0, Col: 0},
		Path:   []model.Position{{Row: 0, Col: 0}},
	}
	s.Require().NoError(s.Storage.SaveRound(s.Ctx, round))

	retrieved, err := s.Storage.GetRound(s.Ctx, "round-1")
	s.Require().NoError(err)
	s.Equal(1, retrieved.CorrectCount)
	s.Equal([]bool{false, true}, retrieved.Found)
	s.Equal(round.FoundCells, retrieved.FoundCells)
	s.Equal(model.SelectionDragging, retrieved.Selection.State)
	s.Equal(round.Selection.Path, retrieved.Selection.Path)
}

func (s *Suite) TestGetRoundReturnsIndependentCopy() {
	s.Require().NoError(s.Storage.SaveRound(s.Ctx, SampleRound("round-1", "player-1")))

	first, err := s.Storage.GetRound(s.Ctx, "round-1")
	s.Require().NoError(err)
	first.CorrectCount = 5
	first.Grid.Set(model.Position{Row: 0, Col: 0}, 'Q')

	second, err := s.Storage.GetRound(s.Ctx, "round-1")
	s.Require().NoError(err)
	s.Equal(0, second.CorrectCount)
	s.Equal('C', second.Grid.Get(model.Position{Row: 0, Col: 0}))
}

func (s *Suite) TestGetRoundNotFound() {
	_, err := s.Storage.GetRound(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *Suite) TestDeleteRound() {
	s.Require().NoError(s.Storage.SaveRound(s.Ctx, SampleRound("round-1", "player-1")))

	err := s.Storage.DeleteRound(s.Ctx, "round-1")
	s.Require().NoError(err)

	_, err = s.Storage.GetRound(s.Ctx, "round-1")
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *Suite) TestListActiveRounds() {
	active := SampleRound("round-1", "player-1")
	finished := SampleRound("round-2", "player-2")
	finished.State = model.RoundStateFinished
	finished.EndReason = model.EndReasonTimeout

	s.Require().NoError(s.Storage.SaveRound(s.Ctx, active))
	s.Require().NoError(s.Storage.SaveRound(s.Ctx, finished))

	rounds, err := s.Storage.ListActiveRounds(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(rounds, 1)
	s.Equal(model.RoundID("round-1"), rounds[0].ID)

	// Finishing the last active round empties the list
	active.State = model.RoundStateFinished
	s.Require().NoError(s.Storage.SaveRound(s.Ctx, active))

	rounds, err = s.Storage.ListActiveRounds(s.Ctx)
	s.Require().NoError(err)
	s.Empty(rounds)
}

// Category tests

func (s *Suite) TestSaveAndGetCategory() {
	c := &model.Category{ID: "animals", Name: "Animals", Words: []string{"CAT", "DOG"}}

	err := s.Storage.SaveCategory(s.Ctx, c)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetCategory(s.Ctx, "animals")
	s.Require().NoError(err)
	s.Equal(c, retrieved)
}

func (s *Suite) TestGetCategoryNotFound() {
	_, err := s.Storage.GetCategory(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrCategoryNotFound)
}

func (s *Suite) TestListCategoriesInSaveOrder() {
	for _, id := range []model.CategoryID{"zoo", "art", "music"} {
		s.Require().NoError(s.Storage.SaveCategory(s.Ctx, &model.Category{ID: id, Name: string(id), Words: []string{"WORD"}}))
	}
	// Re-saving keeps the original position
	s.Require().NoError(s.Storage.SaveCategory(s.Ctx, &model.Category{ID: "zoo", Name: "Zoo", Words: []string{"LION"}}))

	categories, err := s.Storage.ListCategories(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(categories, 3)
	s.Equal(model.CategoryID("zoo"), categories[0].ID)
	s.Equal([]string{"LION"}, categories[0].Words)
	s.Equal(model.CategoryID("art"), categories[1].ID)
	s.Equal(model.CategoryID("music"), categories[2].ID)
}
