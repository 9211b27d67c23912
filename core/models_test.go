package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("the quick brown fox")
		b := IDFromContent("the quick brown fox")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content yields distinct ids", func(t *testing.T) {
		a := IDFromContent("alpha")
		b := IDFromContent("beta")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		assert.NotPanics(t, func() { IDFromContent("") })
	})
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "assistant", RoleAssistant.String())
	assert.Equal(t, "unknown", Role(0).String())
}

func TestTurnMUSRoundTrip(t *testing.T) {
	turn := Turn{
		Id:        IDFromContent("hello"),
		Role:      RoleAssistant,
		Contents:  "The document says hello.",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	buf := make([]byte, TurnMUS.Size(turn))
	n := TurnMUS.Marshal(turn, buf)
	require.Equal(t, len(buf), n)

	decoded, n, err := TurnMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, turn, decoded)
}

func TestTurnMUSUnmarshalTruncated(t *testing.T) {
	turn := Turn{Id: 7, Role: RoleUser, Contents: "question", CreatedAt: time.Now().UTC()}
	buf := make([]byte, TurnMUS.Size(turn))
	TurnMUS.Marshal(turn, buf)

	_, _, err := TurnMUS.Unmarshal(buf[:2])
	assert.Error(t, err)
}
