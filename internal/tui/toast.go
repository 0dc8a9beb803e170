package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// toastDuration is how long a notification stays on screen.
const toastDuration = 4 * time.Second

type toast struct {
	id    string
	text  string
	isErr bool
}

type toastExpiredMsg struct {
	id string
}

// toastStack holds the currently visible transient notifications.
type toastStack struct {
	toasts []toast
}

// Push adds a notification and returns the command that expires it.
func (s *toastStack) Push(text string, isErr bool) tea.Cmd {
	t := toast{id: uuid.NewString(), text: text, isErr: isErr}
	s.toasts = append(s.toasts, t)
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: t.id}
	})
}

// Expire removes the notification with the given id.
func (s *toastStack) Expire(id string) {
	for i, t := range s.toasts {
		if t.id == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// View renders the stack, newest last.
func (s *toastStack) View() string {
	if len(s.toasts) == 0 {
		return ""
	}
	out := ""
	for _, t := range s.toasts {
		line := "✓ " + t.text
		style := SuccessStyle
		if t.isErr {
			line = "✗ " + t.text
			style = ErrorStyle
		}
		out += style.Render(line) + "\n"
	}
	return out
}
