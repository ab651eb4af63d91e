package cache

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRoom struct {
	ID     string `json:"id"`
	Number string `json:"room_number"`
}

func TestEncodeDecode(t *testing.T) {
	raw, err := encode(cachedRoom{ID: "r-1", Number: "101"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"r-1","room_number":"101"}`, string(raw))

	var room cachedRoom
	require.NoError(t, decode(string(raw), &room))
	assert.Equal(t, cachedRoom{ID: "r-1", Number: "101"}, room)
}

func TestEncodeDecode_StringsStayRaw(t *testing.T) {
	raw, err := encode("blacklisted")
	require.NoError(t, err)
	assert.Equal(t, "blacklisted", string(raw))

	var value string
	require.NoError(t, decode("blacklisted", &value))
	assert.Equal(t, "blacklisted", value)
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := encode(make(chan int))
	assert.Error(t, err)
}

func TestDecode_Corrupt(t *testing.T) {
	var room cachedRoom
	assert.Error(t, decode("{not json", &room))
}

func TestIsMiss(t *testing.T) {
	assert.True(t, IsMiss(fmt.Errorf("failed to get cache value: %w", Nil)))
	assert.False(t, IsMiss(errors.New("connection refused")))
	assert.False(t, IsMiss(nil))
}
