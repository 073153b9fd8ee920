package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"relay-backend/internal/chatclient"
)

const quitCommand = "/bye"

// UI is the terminal client form: a transcript view above a single-line input.
type UI struct {
	app        *tview.Application
	transcript *tview.TextView
	input      *tview.InputField
	session    *chatclient.Session
	ctx        context.Context
}

func New(ctx context.Context, session *chatclient.Session) *UI {
	u := &UI{
		app:     tview.NewApplication(),
		session: session,
		ctx:     ctx,
	}
	u.app.EnablePaste(true)

	u.transcript = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	u.transcript.SetTitle("AI Chatbot").SetBorder(true)
	u.transcript.SetScrollable(true)

	u.input = tview.NewInputField().
		SetLabel("> ").
		SetPlaceholder("Type a message...").
		SetFieldBackgroundColor(tcell.ColorDefault)
	u.input.SetBorder(true)
	u.input.SetDoneFunc(u.handleKey)

	// Entries are appended from request goroutines.
	session.OnAppend(func(e chatclient.Entry) {
		u.app.QueueUpdateDraw(func() {
			fmt.Fprint(u.transcript, FormatEntry(e))
			u.transcript.ScrollToEnd()
		})
	})

	return u
}

func (u *UI) Run() error {
	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(u.transcript, 0, 1, false).
		AddItem(u.input, 3, 0, true)

	return u.app.SetRoot(layout, true).SetFocus(u.input).Run()
}

func (u *UI) handleKey(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}

	content := u.input.GetText()
	if strings.TrimSpace(content) == quitCommand {
		u.app.Stop()
		return
	}
	if strings.TrimSpace(content) == "" {
		return
	}

	u.input.SetText("")
	go u.session.Submit(u.ctx, content)
}

// FormatEntry renders one transcript entry with tview color tags.
func FormatEntry(e chatclient.Entry) string {
	text := tview.Escape(e.Content)
	if e.Role == chatclient.RoleUser {
		return fmt.Sprintf("[red::b]You:[-::-] %s\n\n", text)
	}
	return fmt.Sprintf("[green::b]Bot:[-::-] %s\n\n", text)
}
