package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(a Answer, calls *int) func() Answer {
	return func() Answer {
		*calls++
		return a
	}
}

func TestParseAnswer(t *testing.T) {
	cases := map[string]Answer{"yes": AnswerYes, "Y": AnswerYes, "no": AnswerNo, "discard": AnswerNo, "cancel": AnswerCancel, "": AnswerCancel}
	for in, want := range cases {
		got, err := ParseAnswer(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAnswer("maybe")
	assert.Error(t, err)
}

func TestRequestCloseWithoutChangesDoesNotAsk(t *testing.T) {
	s := New(WithDocument(threeTrackDocument()))
	calls := 0
	assert.True(t, s.RequestClose(answer(AnswerCancel, &calls)))
	assert.Equal(t, 0, calls)
	assert.Nil(t, s.Document())
}

func TestRequestCloseCancel(t *testing.T) {
	s := New(WithDocument(threeTrackDocument()))
	s.StripEmptyTracks()
	calls := 0

	assert.False(t, s.RequestClose(answer(AnswerCancel, &calls)))
	assert.Equal(t, 1, calls)
	assert.NotNil(t, s.Document())
	assert.True(t, s.CancelClose())
}

func TestRequestCloseDiscard(t *testing.T) {
	s := New(WithDocument(threeTrackDocument()))
	s.StripEmptyTracks()
	calls := 0

	assert.True(t, s.RequestClose(answer(AnswerNo, &calls)))
	assert.Equal(t, 1, calls)
	assert.Nil(t, s.Document())
	assert.Equal(t, "File closed.", s.Status())
}

func TestRequestCloseSave(t *testing.T) {
	dir := t.TempDir()
	path := writeSample(t, dir)
	s := New()
	require.True(t, s.Read(path))
	s.StripEmptyTracks()
	calls := 0

	assert.True(t, s.RequestClose(answer(AnswerYes, &calls)))
	assert.Equal(t, 1, calls)
	assert.Nil(t, s.Document())

	reread := New()
	require.True(t, reread.Read(path))
	assert.Len(t, reread.TrackList(), 2)
}

func TestRequestCloseSaveFailureKeepsDocument(t *testing.T) {
	s := New(WithDocument(threeTrackDocument()))
	s.StripEmptyTracks()
	calls := 0

	// loaded from memory, so there is no file name to save to
	assert.False(t, s.RequestClose(answer(AnswerYes, &calls)))
	assert.NotNil(t, s.Document())
	assert.True(t, s.UnsavedChanges())
	assert.Equal(t, "No file name to save to.", s.Status())
}
