package session

import (
	"fmt"
	"strings"
)

// Answer is the reply to "You have unsaved work. Do you want to save now?".
type Answer int

const (
	AnswerCancel Answer = iota
	AnswerYes
	AnswerNo
)

func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "save":
		return AnswerYes, nil
	case "no", "n", "discard":
		return AnswerNo, nil
	case "cancel", "":
		return AnswerCancel, nil
	}
	return AnswerCancel, fmt.Errorf("unknown answer %q", s)
}

// PromptIfUnsaved asks whether to save when there is unsaved work and sets
// CancelClose from the reply. ask is not called when nothing needs saving.
// A "yes" saves over the current file; closing goes ahead only if that save
// worked.
func (s *Session) PromptIfUnsaved(ask func() Answer) {
	if !s.unsaved || s.doc == nil {
		s.cancelClose = false
		return
	}
	switch ask() {
	case AnswerYes:
		s.cancelClose = true
		s.Save(true)
	case AnswerNo:
		s.cancelClose = false
	default:
		s.cancelClose = true
	}
}

// RequestClose closes the document unless the unsaved-work prompt cancels it.
// It reports whether the document was closed.
func (s *Session) RequestClose(ask func() Answer) bool {
	s.PromptIfUnsaved(ask)
	if s.cancelClose {
		return false
	}
	s.Close()
	return true
}
