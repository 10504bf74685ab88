package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"DemoLab/DemoServer/activity"
)

func TestNewStateIsEmpty(t *testing.T) {
	s := NewState("s1", nil, nil)
	assert.Equal(t, "s1", s.ID())
	assert.Nil(t, s.User())
	assert.False(t, s.LoggedIn())
}

func TestLoginThenLogout(t *testing.T) {
	s := NewState("s1", zaptest.NewLogger(t), nil)

	s.Login("alice")
	require.NotNil(t, s.User())
	assert.Equal(t, &User{Username: "alice"}, s.User())
	assert.True(t, s.LoggedIn())

	s.Logout()
	assert.Nil(t, s.User())
	assert.False(t, s.LoggedIn())
}

func TestLoginLogoutSequencesEndEmpty(t *testing.T) {
	for _, names := range [][]string{
		{"alice"},
		{"alice", "bob"},
		{"", "carol", "carol"},
	} {
		s := NewState("s", nil, nil)
		for _, name := range names {
			s.Login(name)
		}
		s.Logout()
		assert.Nil(t, s.User(), "after logins %v", names)
	}
}

func TestLogoutOnEmptySessionIsNoop(t *testing.T) {
	s := NewState("s1", nil, nil)
	s.Logout()
	s.Logout()
	assert.Nil(t, s.User())
}

func TestLoginReplacesUser(t *testing.T) {
	s := NewState("s1", nil, nil)
	s.Login("alice")
	s.Login("bob")
	assert.Equal(t, "bob", s.User().Username)
}

func TestUserReturnsCopy(t *testing.T) {
	s := NewState("s1", nil, nil)
	s.Login("alice")

	u := s.User()
	u.Username = "mallory"
	assert.Equal(t, "alice", s.User().Username)
}

func TestStateRecordsActivity(t *testing.T) {
	feed := activity.NewFeed(10)
	s := NewState("s1", nil, feed)

	s.Login("alice")
	s.Logout()

	history := feed.History(0)
	require.Len(t, history, 2)
	assert.Equal(t, activity.KindSession, history[0].Kind)
	assert.Equal(t, "alice", history[0].Actor)
	assert.Equal(t, "logged in", history[0].Message)
	assert.Equal(t, "alice", history[1].Actor)
	assert.Equal(t, "logged out", history[1].Message)
}

func TestOnChangeSeesEveryMutation(t *testing.T) {
	var seen []*User
	s := NewState("s1", nil, nil)
	s.onChange = func(id string, user *User) {
		assert.Equal(t, "s1", id)
		seen = append(seen, user)
	}

	s.Login("alice")
	s.Logout()

	require.Len(t, seen, 2)
	assert.Equal(t, &User{Username: "alice"}, seen[0])
	assert.Nil(t, seen[1])
}
