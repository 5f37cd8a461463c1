package randx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestIDShape(t *testing.T) {
	id, err := GuestID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, GuestIDPrefix))
	assert.Len(t, id, len(GuestIDPrefix)+GuestIDRawLength)
	assert.True(t, IsValidGuestID(id))
}

func TestGuestIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		id, err := GuestID()
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "generated duplicate guest id %s", id)
		seen[id] = struct{}{}
	}
}

func TestIsValidGuestID(t *testing.T) {
	cases := []struct {
		name string
		id   string
		want bool
	}{
		{"empty", "", false},
		{"noPrefix", "abcdefgh", false},
		{"tooShort", "guest_abc", false},
		{"tooLong", "guest_abcdefghi", false},
		{"badChar", "guest_abc-efgh", false},
		{"valid", "guest_Abc3efg9", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidGuestID(tc.id))
		})
	}
}

func TestMessageIDIsUUID(t *testing.T) {
	id := MessageID()

	assert.Len(t, id, 36)
	assert.Equal(t, 4, strings.Count(id, "-"))
}
