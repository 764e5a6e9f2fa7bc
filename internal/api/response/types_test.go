package response

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrella/matchroom/internal/model"
)

func testRoom() *model.Room {
	return &model.Room{
		Code:   "ABC123",
		HostID: "u_1",
		Players: []model.Seat{
			{ID: "u_1", Username: "alice", Connected: true},
			{ID: "u_2", Username: "bob", Connected: false},
		},
		MaxPlayers: 3,
		Started:    true,
		Locked:     true,
		State:      json.RawMessage(`{"turn":2}`),
		Revision:   7,
		CreatedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC),
	}
}

func TestRoomFromModelExposesOnlyPublicFields(t *testing.T) {
	data, err := json.Marshal(RoomFromModel(testRoom(), "u_1"))
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	assert.ElementsMatch(t, []string{
		"id", "hostId", "players", "started", "locked",
		"revision", "state", "youAreHost",
	}, keys)
}

func TestRoomFromModelCopiesSeatsAndState(t *testing.T) {
	room := testRoom()
	resp := RoomFromModel(room, "u_2")

	assert.Equal(t, "ABC123", resp.ID)
	assert.Equal(t, "u_1", resp.HostID)
	require.Len(t, resp.Players, 2)
	assert.Equal(t, "alice", resp.Players[0].Username)
	assert.True(t, resp.Players[0].Connected)
	assert.False(t, resp.Players[1].Connected)
	assert.EqualValues(t, 7, resp.Revision)

	// State is a copy; mutating the model afterwards must not bleed through
	room.State[len(room.State)-2] = '9'
	assert.JSONEq(t, `{"turn":2}`, string(resp.State))
}

func TestRoomFromModelComputesYouAreHostPerCaller(t *testing.T) {
	room := testRoom()

	assert.True(t, RoomFromModel(room, "u_1").YouAreHost)
	assert.False(t, RoomFromModel(room, "u_2").YouAreHost)
	assert.False(t, RoomFromModel(room, "u_9").YouAreHost)
}
