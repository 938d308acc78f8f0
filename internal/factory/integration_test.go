package factory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/selection"
)

const address = "0x52908400098527886E0F7030069857D2E4169EE7"

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp(model.RoundConfig{Rows: 8, Cols: 8, DurationSeconds: 5})
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestCategories(s.ctx))
}

func (s *IntegrationSuite) selectWord(roundID model.RoundID, playerID model.PlayerID, word model.PlacedWord, reversed bool) {
	path := append([]model.Position(nil), word.Path...)
	if reversed {
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
	}

	_, err := s.app.RoundController.Press(s.ctx, roundID, playerID, path[0])
	s.Require().NoError(err)
	for _, cell := range path[1:] {
		res, err := s.app.RoundController.Extend(s.ctx, roundID, playerID, cell)
		s.Require().NoError(err)
		s.Equal(selection.OutcomeExtended, res.Outcome)
	}
	res, err := s.app.RoundController.Release(s.ctx, roundID, playerID)
	s.Require().NoError(err)
	s.Require().NotNil(res.Matched)
	s.Equal(word.Word, res.Matched.Word)
}

func (s *IntegrationSuite) TestCompleteRoundAndClaim() {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Alice", address)
	s.Require().NoError(err)

	rd, err := s.app.RoundController.StartRound(s.ctx, session.PlayerID, "pets")
	s.Require().NoError(err)
	s.Equal(8, rd.Grid.Rows)
	s.Len(rd.Words, 4)

	// Every cell holds a letter and every word reads correctly from its path
	for _, row := range rd.Grid.RowStrings() {
		s.Len(row, 8)
		s.Equal(strings.ToUpper(row), row)
	}
	for _, w := range rd.Words {
		s.Equal(w.Word, rd.Grid.Letters(w.Path))
	}

	for i, w := range rd.Words {
		s.selectWord(rd.ID, session.PlayerID, w, i%2 == 1)
	}

	final, err := s.app.RoundController.GetRound(s.ctx, rd.ID)
	s.Require().NoError(err)
	s.Equal(model.RoundStateFinished, final.State)
	s.Equal(model.EndReasonCompleted, final.EndReason)
	s.Equal(4, final.CorrectCount)

	claim, err := s.app.RoundController.ClaimReward(s.ctx, rd.ID, session.PlayerID, session.Player.Address)
	s.Require().NoError(err)
	s.Equal(4, claim.Points)

	balance, err := s.app.Ledger.Balance(s.ctx, address)
	s.Require().NoError(err)
	s.Equal(4, balance)
}

func (s *IntegrationSuite) TestRoundTimesOutThroughTicker() {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Alice", "")
	s.Require().NoError(err)

	rd, err := s.app.RoundController.StartRound(s.ctx, session.PlayerID, "")
	s.Require().NoError(err)

	for i := 0; i < 5; i++ {
		s.Equal(1, s.app.RoundTicker.TickOnce(s.ctx))
	}
	s.Equal(0, s.app.RoundTicker.TickOnce(s.ctx))

	final, err := s.app.RoundController.GetRound(s.ctx, rd.ID)
	s.Require().NoError(err)
	s.Equal(model.EndReasonTimeout, final.EndReason)
	s.Equal(0, final.RemainingSeconds)

	_, err = s.app.RoundController.Press(s.ctx, rd.ID, session.PlayerID, model.Position{})
	s.ErrorIs(err, model.ErrRoundFinished)
}

func (s *IntegrationSuite) TestNewRoundReplacesActiveRound() {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Alice", "")
	s.Require().NoError(err)

	first, err := s.app.RoundController.StartRound(s.ctx, session.PlayerID, "pets")
	s.Require().NoError(err)
	second, err := s.app.RoundController.StartRound(s.ctx, session.PlayerID, "colours")
	s.Require().NoError(err)

	ids, err := s.app.RoundController.ActiveRoundIDs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.RoundID{second.ID}, ids)

	old, err := s.app.RoundController.GetRound(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(model.EndReasonAbandoned, old.EndReason)
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorage() {
	_, err := New(Config{StorageType: "cassandra"})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeSQLite})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewWithSQLiteLoadsCategories() {
	app, err := New(Config{StorageType: StorageTypeSQLite, SQLitePath: s.T().TempDir() + "/wordhunt.db"})
	s.Require().NoError(err)
	defer app.Close()

	s.Require().NoError(app.LoadCategories(s.ctx, ""))
	s.Len(app.CategoryService.List(), 9)

	stored, err := app.Storage.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Len(stored, 9)
}
