package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mkrella/matchroom/internal/model"
	"github.com/mkrella/matchroom/internal/storage"
)

type FileSinkSuite struct {
	suite.Suite
	path string
	sink *FileSink
	ctx  context.Context
}

func TestFileSinkSuite(t *testing.T) {
	suite.Run(t, new(FileSinkSuite))
}

func (s *FileSinkSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "snapshot.json")
	s.sink = NewFileSink(s.path)
	s.ctx = context.Background()
}

func (s *FileSinkSuite) TestLoadMissing() {
	_, err := s.sink.Load(s.ctx)
	s.ErrorIs(err, ErrNoSnapshot)
}

func (s *FileSinkSuite) TestWriteLoadRoundTrip() {
	snap := storage.NewSnapshot()
	user := &model.User{ID: "u_1", Username: "alice"}
	user.Stats.Wins = 2
	user.Stats.Versus("bob").Wins = 2
	snap.Users["u_1"] = user
	snap.Credentials["alice"] = &model.Credential{UserID: "u_1", Username: "alice", PasswordHash: "hash"}
	snap.Sessions["tok_abc"] = &model.Session{Token: "tok_abc", UserID: "u_1"}
	snap.Rooms["ABC123"] = &model.Room{
		Code:     "ABC123",
		HostID:   "u_1",
		Players:  []model.Seat{{ID: "u_1", Username: "alice", Connected: true}},
		State:    json.RawMessage(`{"turn":1}`),
		Revision: 3,
	}
	snap.History = []*model.MatchRecord{{ID: "m_1", RoomCode: "ABC123", Winner: "alice"}}

	s.Require().NoError(s.sink.Write(s.ctx, snap))

	loaded, err := s.sink.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, loaded.Users["u_1"].Stats.Wins)
	s.Equal(2, loaded.Users["u_1"].Stats.VS["bob"].Wins)
	s.Equal("hash", loaded.Credentials["alice"].PasswordHash)
	s.Equal(model.UserID("u_1"), loaded.Sessions["tok_abc"].UserID)
	s.Equal(int64(3), loaded.Rooms["ABC123"].Revision)
	s.JSONEq(`{"turn":1}`, string(loaded.Rooms["ABC123"].State))
	s.Require().Len(loaded.History, 1)
	s.Equal("alice", loaded.History[0].Winner)
}

func (s *FileSinkSuite) TestWriteReplacesPrevious() {
	snap := storage.NewSnapshot()
	snap.Rooms["ABC123"] = &model.Room{Code: "ABC123", HostID: "u_1", Revision: 1}
	s.Require().NoError(s.sink.Write(s.ctx, snap))

	snap.Rooms["ABC123"].Revision = 2
	s.Require().NoError(s.sink.Write(s.ctx, snap))

	loaded, err := s.sink.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), loaded.Rooms["ABC123"].Revision)
}

func (s *FileSinkSuite) TestLoadCorruptFile() {
	s.Require().NoError(os.WriteFile(s.path, []byte("not json"), 0o644))

	_, err := s.sink.Load(s.ctx)
	s.Error(err)
	s.NotErrorIs(err, ErrNoSnapshot)
}
