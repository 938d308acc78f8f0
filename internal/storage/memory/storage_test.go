package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	memory *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.memory = New()
	s.Storage = s.memory
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestSaveRoundCopiesInput() {
	round := storagetest.SampleRound("round-1", "player-1")
	s.Require().NoError(s.memory.SaveRound(s.Ctx, round))

	round.CorrectCount = 7

	retrieved, err := s.memory.GetRound(s.Ctx, "round-1")
	s.Require().NoError(err)
	s.Equal(0, retrieved.CorrectCount)
	s.Equal(model.RoundStateActive, retrieved.State)
}
