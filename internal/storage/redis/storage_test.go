package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini  *miniredis.Miniredis
	redis *Storage
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
	cfg.RoundTTL = time.Hour

	s.redis = NewWithClient(client, cfg)
	s.Storage = s.redis
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guestPlayer := &model.Player{
		ID:      "guest-1",
		IsGuest: true,
	}
	registeredPlayer := &model.Player{
		ID:      "registered-1",
		IsGuest: false,
	}

	_ = s.redis.SavePlayer(s.Ctx, guestPlayer)
	_ = s.redis.SavePlayer(s.Ctx, registeredPlayer)

	// Check that guest has TTL and registered doesn't
	guestTTL := s.mini.TTL(playerKey(guestPlayer.ID))
	registeredTTL := s.mini.TTL(playerKey(registeredPlayer.ID))

	s.True(guestTTL > 0, "Guest player should have TTL")
	s.Equal(time.Duration(0), registeredTTL, "Registered player should not have TTL")
}

func (s *StorageSuite) TestRoundTTL() {
	_ = s.redis.SaveRound(s.Ctx, storagetest.SampleRound("round-1", "player-1"))

	ttl := s.mini.TTL(roundKey("round-1"))
	s.True(ttl > 0, "Round should have TTL")
}

func (s *StorageSuite) TestActiveIndexTracksState() {
	round := storagetest.SampleRound("round-1", "player-1")
	s.Require().NoError(s.redis.SaveRound(s.Ctx, round))

	members, err := s.mini.Members(activeRoundsIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"round-1"}, members)

	round.State = model.RoundStateFinished
	s.Require().NoError(s.redis.SaveRound(s.Ctx, round))

	members, _ = s.mini.Members(activeRoundsIndexKey())
	s.Empty(members, "index should be empty once the round finishes")
}

func (s *StorageSuite) TestListActiveRoundsDropsExpiredRounds() {
	s.Require().NoError(s.redis.SaveRound(s.Ctx, storagetest.SampleRound("round-1", "player-1")))
	s.Require().NoError(s.redis.SaveRound(s.Ctx, storagetest.SampleRound("round-2", "player-2")))

	s.mini.Del(roundKey("round-1"))

	rounds, err := s.redis.ListActiveRounds(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(rounds, 1)
	s.Equal(model.RoundID("round-2"), rounds[0].ID)

	members, err := s.mini.Members(activeRoundsIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"round-2"}, members)
}

func (s *StorageSuite) TestCategoryNoTTL() {
	_ = s.redis.SaveCategory(s.Ctx, &model.Category{ID: "animals", Name: "Animals", Words: []string{"CAT"}})

	ttl := s.mini.TTL(categoryKey("animals"))
	s.Equal(time.Duration(0), ttl, "Category should not have TTL")
}
