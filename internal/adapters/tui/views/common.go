package views

import (
	"errors"

	"scenelink/internal/application"
)

// ViewState is the size and status message shared by every view.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage shows msg in the status area
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err as an error message. Missing scenes and nodes get a
// hint, since they usually mean the file changed on disk.
func (s *ViewState) SetError(err error) {
	msg := err.Error()
	if errors.Is(err, application.ErrNotFound) {
		msg += " (press r to reload)"
	}
	s.SetMessage(msg, true)
}

// ClearMessage clears the status area
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}
