package cli

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sunwheel-labs/sunwheel/pkg/document"
)

func pickerModel(t *testing.T, n int) DocListModel {
	t.Helper()
	docs := make([]*document.Document, n)
	for i := range docs {
		doc, err := document.New(fmt.Sprintf("Doc %02d", i))
		if err != nil {
			t.Fatal(err)
		}
		docs[i] = doc
	}
	return NewDocListModel(docs)
}

func keyPress(t *testing.T, m DocListModel, key string) (DocListModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "pgup":
		msg = tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		msg = tea.KeyMsg{Type: tea.KeyPgDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(DocListModel), cmd
}

func TestDocPickerCursorClamps(t *testing.T) {
	m := pickerModel(t, 3)

	m, _ = keyPress(t, m, "k")
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the top: %d", m.Cursor)
	}

	for i := 0; i < 5; i++ {
		m, _ = keyPress(t, m, "j")
	}
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want clamped to 2", m.Cursor)
	}
}

func TestDocPickerScrollFollowsCursor(t *testing.T) {
	m := pickerModel(t, 30) // default viewport height is 15

	for i := 0; i < 20; i++ {
		m, _ = keyPress(t, m, "j")
	}
	if m.Cursor != 20 {
		t.Fatalf("cursor = %d, want 20", m.Cursor)
	}
	if m.Offset != 6 {
		t.Errorf("offset = %d, want 6 so the cursor stays in view", m.Offset)
	}

	m, _ = keyPress(t, m, "pgup")
	if m.Cursor != 5 {
		t.Errorf("after pgup cursor = %d, want 5", m.Cursor)
	}
	if m.Offset != 5 {
		t.Errorf("after pgup offset = %d, want 5", m.Offset)
	}
}

func TestDocPickerEnterSelects(t *testing.T) {
	m := pickerModel(t, 3)

	m, _ = keyPress(t, m, "j")
	m, cmd := keyPress(t, m, "enter")

	if m.Selected == nil || m.Selected.ID != m.Docs[1].ID {
		t.Errorf("Selected = %v, want the second document", m.Selected)
	}
	if cmd == nil {
		t.Fatal("enter should quit the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("enter produced %T, want tea.QuitMsg", cmd())
	}
}

func TestDocPickerQuitLeavesNoSelection(t *testing.T) {
	m := pickerModel(t, 3)

	m, cmd := keyPress(t, m, "q")
	if m.Selected != nil {
		t.Errorf("quit without enter selected %v", m.Selected)
	}
	if cmd == nil {
		t.Fatal("q should quit the program")
	}
}

func TestDocPickerView(t *testing.T) {
	m := pickerModel(t, 30)

	view := m.View()
	if !strings.Contains(view, "▸") {
		t.Error("view lacks the cursor marker")
	}
	if !strings.Contains(view, "1 of 30") {
		t.Error("view lacks the position footer")
	}
	if !strings.Contains(view, "↓ more") {
		t.Error("view should flag rows below the viewport")
	}

	m, _ = keyPress(t, m, "j")
	if got := m.View(); !strings.Contains(got, "2 of 30") {
		t.Error("footer did not follow the cursor")
	}
}

func TestDocPickerResizeClampsViewport(t *testing.T) {
	m := pickerModel(t, 3)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = next.(DocListModel)
	if m.Height != 5 {
		t.Errorf("height = %d, want floor of 5", m.Height)
	}
}
