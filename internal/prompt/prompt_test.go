package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskNonEmpty_RetriesOnEmptyLines(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("\n\nacme\n"), &out)

	answer, err := AskNonEmpty(p, "Name of Account", false, 0)
	require.NoError(t, err)
	assert.Equal(t, "acme", answer)
	assert.Equal(t, 3, strings.Count(out.String(), "Name of Account: "))
}

func TestAskNonEmpty_LastLineWithoutNewline(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("tok123"), &bytes.Buffer{})

	answer, err := AskNonEmpty(p, "Access Token", true, 0)
	require.NoError(t, err)
	assert.Equal(t, "tok123", answer)
}

func TestAskNonEmpty_StripsCRLF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("acme\r\n"), &bytes.Buffer{})

	answer, err := AskNonEmpty(p, "Name of Account", false, 0)
	require.NoError(t, err)
	assert.Equal(t, "acme", answer)
}

func TestAskNonEmpty_EOF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("\n\n"), &bytes.Buffer{})

	_, err := AskNonEmpty(p, "Access Token", true, 0)
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestAskNonEmpty_Bounded(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("\n\n\nlate\n"), &bytes.Buffer{})

	_, err := AskNonEmpty(p, "Name of Account", false, 2)
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestAskNonEmpty_SequentialQuestionsShareReader(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("acme\n\ntok123\n"), &bytes.Buffer{})

	name, err := AskNonEmpty(p, "Name of Account", false, 0)
	require.NoError(t, err)
	token, err := AskNonEmpty(p, "Access Token", true, 0)
	require.NoError(t, err)

	assert.Equal(t, "acme", name)
	assert.Equal(t, "tok123", token)
}
