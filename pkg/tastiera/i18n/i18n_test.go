package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizeWithoutInit(t *testing.T) {
	instance = nil

	msg := &Message{ID: "key.space", Other: "space"}
	assert.Equal(t, "space", Localize(msg, nil))
	assert.Equal(t, "", Localize(nil, nil))
}

func TestInitFromBytesAndSwitchLanguage(t *testing.T) {
	t.Cleanup(func() { instance = nil })

	err := InitFromBytes([]MessageFile{
		{Name: "en.json", Content: []byte(`{"key.space": "space"}`)},
		{Name: "fr.json", Content: []byte(`{"key.space": "espace"}`)},
	})
	require.NoError(t, err)

	msg := &Message{ID: "key.space", Other: "space"}
	assert.Equal(t, "space", Localize(msg, nil))

	require.NoError(t, SetWithCode("fr"))
	assert.Equal(t, "espace", Localize(msg, nil))

	// Unknown messages fall back to the default text.
	missing := &Message{ID: "key.missing", Other: "fallback"}
	assert.Equal(t, "fallback", Localize(missing, nil))
}

func TestSetWithCodeRejectsGarbage(t *testing.T) {
	assert.Error(t, SetWithCode("not a language"))
}

func TestInitFromBytesBadContent(t *testing.T) {
	t.Cleanup(func() { instance = nil })

	err := InitFromBytes([]MessageFile{
		{Name: "en.json", Content: []byte(`{`)},
	})
	assert.Error(t, err)
}
