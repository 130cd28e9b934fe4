package origin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "https://example.com", Normalize("https://example.com/"))
	assert.Equal(t, "https://example.com", Normalize("  https://example.com///  "))
	assert.Equal(t, "http://localhost:5173", Normalize("http://localhost:5173"))
	assert.Equal(t, "", Normalize("  "))
}

func TestParseAllowList(t *testing.T) {
	list, err := ParseAllowList(" https://a.example.com/ ,https://b.example.com,, http://localhost:5173/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://a.example.com",
		"https://b.example.com",
		"http://localhost:5173",
	}, list.Origins())
	assert.Equal(t, "https://a.example.com,https://b.example.com,http://localhost:5173", list.String())
}

func TestParseAllowList_Dedup(t *testing.T) {
	list, err := ParseAllowList("https://example.com,https://example.com/")
	require.NoError(t, err)
	assert.Len(t, list.Origins(), 1)
}

func TestParseAllowList_Invalid(t *testing.T) {
	for _, raw := range []string{
		"example.com",
		"https://example.com/app",
		"https://example.com?x=1",
		"https://user@example.com",
		"://nohost",
	} {
		_, err := ParseAllowList(raw)
		assert.Error(t, err, "raw: %s", raw)
	}
}

func TestParseAllowList_Empty(t *testing.T) {
	list, err := ParseAllowList("")
	require.NoError(t, err)
	assert.True(t, list.Empty())
	assert.True(t, list.Allows(""))
	assert.False(t, list.Allows("https://example.com"))
}

func TestAllowList_Allows(t *testing.T) {
	list, err := NewAllowList([]string{"https://example.com"})
	require.NoError(t, err)

	assert.True(t, list.Allows(""), "no origin is always allowed")
	assert.True(t, list.Allows("https://example.com"))
	assert.True(t, list.Allows("https://example.com/"), "trailing slash is ignored")
	assert.False(t, list.Allows("https://evil.example.com"))
	assert.False(t, list.Allows("http://example.com"))
	assert.False(t, list.Allows("https://example.com:8443"))
}

func TestAllowList_OriginsIsCopy(t *testing.T) {
	list, err := NewAllowList([]string{"https://example.com"})
	require.NoError(t, err)

	got := list.Origins()
	got[0] = "https://mutated.example.com"
	assert.True(t, list.Allows("https://example.com"))
}
