package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mkrella/matchroom/internal/dependencies/mocks"
	"github.com/mkrella/matchroom/internal/model"
	"github.com/mkrella/matchroom/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock)
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedUser(id model.UserID, username string) {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: id, Username: username}))
}

func (s *ServiceSuite) getUser(id model.UserID) *model.User {
	user, err := s.storage.GetUser(s.ctx, id)
	s.Require().NoError(err)
	return user
}

func roomWithSeats(seats ...model.Seat) *model.Room {
	return &model.Room{
		Code:       "ABC123",
		HostID:     seats[0].ID,
		Players:    seats,
		MaxPlayers: 4,
		Started:    true,
	}
}

// RecordResult tests

func (s *ServiceSuite) TestRecordResultTwoPlayers() {
	s.seedUser("u_a", "alice")
	s.seedUser("u_b", "bob")
	room := roomWithSeats(
		model.Seat{ID: "u_a", Username: "alice"},
		model.Seat{ID: "u_b", Username: "bob"},
	)

	err := s.service.RecordResult(s.ctx, room, "u_a")
	s.Require().NoError(err)

	alice := s.getUser("u_a")
	s.Equal(1, alice.Stats.Wins)
	s.Equal(0, alice.Stats.Losses)
	s.Equal(1, alice.Stats.VS["bob"].Wins)
	s.Equal(0, alice.Stats.VS["bob"].Losses)

	bob := s.getUser("u_b")
	s.Equal(0, bob.Stats.Wins)
	s.Equal(1, bob.Stats.Losses)
	s.Equal(1, bob.Stats.VS["alice"].Losses)
	s.Equal(0, bob.Stats.VS["alice"].Wins)
}

func (s *ServiceSuite) TestRecordResultThreePlayersEveryoneVersusEveryone() {
	s.seedUser("u_a", "alice")
	s.seedUser("u_b", "bob")
	s.seedUser("u_c", "carol")
	room := roomWithSeats(
		model.Seat{ID: "u_a", Username: "alice"},
		model.Seat{ID: "u_b", Username: "bob"},
		model.Seat{ID: "u_c", Username: "carol"},
	)

	err := s.service.RecordResult(s.ctx, room, "u_a")
	s.Require().NoError(err)

	alice := s.getUser("u_a")
	s.Equal(1, alice.Stats.Wins)
	s.Equal(0, alice.Stats.Losses)
	s.Equal(1, alice.Stats.VS["bob"].Wins)
	s.Equal(1, alice.Stats.VS["carol"].Wins)

	// Losers lose to every other player, not just the winner
	bob := s.getUser("u_b")
	s.Equal(1, bob.Stats.Losses)
	s.Equal(1, bob.Stats.VS["alice"].Losses)
	s.Equal(1, bob.Stats.VS["carol"].Losses)

	carol := s.getUser("u_c")
	s.Equal(1, carol.Stats.Losses)
	s.Equal(1, carol.Stats.VS["alice"].Losses)
	s.Equal(1, carol.Stats.VS["bob"].Losses)
}

func (s *ServiceSuite) TestRecordResultAppendsOneHistoryEntry() {
	s.seedUser("u_a", "alice")
	s.seedUser("u_b", "bob")
	room := roomWithSeats(
		model.Seat{ID: "u_a", Username: "alice"},
		model.Seat{ID: "u_b", Username: "bob"},
	)

	err := s.service.RecordResult(s.ctx, room, "u_b")
	s.Require().NoError(err)

	records, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.NotEmpty(records[0].ID)
	s.Equal(model.RoomCode("ABC123"), records[0].RoomCode)
	s.Equal([]string{"alice", "bob"}, records[0].Players)
	s.Equal("bob", records[0].Winner)
	s.Equal(s.clock.CurrentTime, records[0].PlayedAt)
}

func (s *ServiceSuite) TestRecordResultSkipsMissingUsers() {
	s.seedUser("u_a", "alice")
	// u_ghost has a seat but no user record
	room := roomWithSeats(
		model.Seat{ID: "u_a", Username: "alice"},
		model.Seat{ID: "u_ghost", Username: "ghost"},
	)

	err := s.service.RecordResult(s.ctx, room, "u_a")
	s.Require().NoError(err)

	alice := s.getUser("u_a")
	s.Equal(1, alice.Stats.Wins)
	s.Equal(1, alice.Stats.VS["ghost"].Wins)

	// History still records the full seat list
	records, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal([]string{"alice", "ghost"}, records[0].Players)
}

func (s *ServiceSuite) TestRecordResultRejectsUnseatedWinner() {
	s.seedUser("u_a", "alice")
	room := roomWithSeats(model.Seat{ID: "u_a", Username: "alice"})

	err := s.service.RecordResult(s.ctx, room, "u_stranger")
	s.ErrorIs(err, model.ErrNotInRoom)

	// Nothing recorded
	alice := s.getUser("u_a")
	s.Equal(0, alice.Stats.Wins)
	records, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *ServiceSuite) TestRecordResultAccumulates() {
	s.seedUser("u_a", "alice")
	s.seedUser("u_b", "bob")
	room := roomWithSeats(
		model.Seat{ID: "u_a", Username: "alice"},
		model.Seat{ID: "u_b", Username: "bob"},
	)

	s.Require().NoError(s.service.RecordResult(s.ctx, room, "u_a"))
	s.Require().NoError(s.service.RecordResult(s.ctx, room, "u_b"))

	alice := s.getUser("u_a")
	s.Equal(1, alice.Stats.Wins)
	s.Equal(1, alice.Stats.Losses)
	s.Equal(1, alice.Stats.VS["bob"].Wins)
	s.Equal(1, alice.Stats.VS["bob"].Losses)

	records, err := s.storage.ListMatches(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 2)
}

// History tests

func (s *ServiceSuite) TestHistoryNewestFirst() {
	s.seedUser("u_a", "alice")
	s.seedUser("u_b", "bob")
	room := roomWithSeats(
		model.Seat{ID: "u_a", Username: "alice"},
		model.Seat{ID: "u_b", Username: "bob"},
	)

	s.Require().NoError(s.service.RecordResult(s.ctx, room, "u_a"))
	s.clock.Advance(time.Hour)
	s.Require().NoError(s.service.RecordResult(s.ctx, room, "u_b"))

	records, err := s.service.History(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("bob", records[0].Winner)
	s.Equal("alice", records[1].Winner)
	s.True(records[0].PlayedAt.After(records[1].PlayedAt))
}

func (s *ServiceSuite) TestHistoryEmpty() {
	records, err := s.service.History(s.ctx)
	s.Require().NoError(err)
	s.Empty(records)
}

// Leaderboard tests

func (s *ServiceSuite) TestLeaderboardRanksByWins() {
	alice := &model.User{ID: "u_a", Username: "alice"}
	alice.Stats.Wins = 3
	bob := &model.User{ID: "u_b", Username: "bob"}
	bob.Stats.Wins = 5
	carol := &model.User{ID: "u_c", Username: "carol"}
	carol.Stats.Wins = 1

	s.Require().NoError(s.storage.SaveUser(s.ctx, alice))
	s.Require().NoError(s.storage.SaveUser(s.ctx, bob))
	s.Require().NoError(s.storage.SaveUser(s.ctx, carol))

	users, err := s.service.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	s.Equal("bob", users[0].Username)
	s.Equal("alice", users[1].Username)
	s.Equal("carol", users[2].Username)
}

func (s *ServiceSuite) TestLeaderboardBreaksTiesByLossesThenName() {
	alice := &model.User{ID: "u_a", Username: "alice"}
	alice.Stats.Wins = 2
	alice.Stats.Losses = 4
	bob := &model.User{ID: "u_b", Username: "bob"}
	bob.Stats.Wins = 2
	bob.Stats.Losses = 1
	carol := &model.User{ID: "u_c", Username: "carol"}
	carol.Stats.Wins = 2
	carol.Stats.Losses = 4

	s.Require().NoError(s.storage.SaveUser(s.ctx, alice))
	s.Require().NoError(s.storage.SaveUser(s.ctx, bob))
	s.Require().NoError(s.storage.SaveUser(s.ctx, carol))

	users, err := s.service.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	s.Equal("bob", users[0].Username)
	s.Equal("alice", users[1].Username)
	s.Equal("carol", users[2].Username)
}
