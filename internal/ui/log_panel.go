package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	mlapp "mindlink/internal/app"
)

// logPanelCapacity bounds the visible log list. It matches the session
// event log's own ring size.
const logPanelCapacity = 500

// logPanel renders session log entries newest first. All methods must run
// on the UI goroutine.
type logPanel struct {
	list    *widget.List
	entries []mlapp.LogEntry
}

func newLogPanel(initial []mlapp.LogEntry) *logPanel {
	p := &logPanel{}
	p.entries = append(p.entries, initial...)

	p.list = widget.NewList(
		func() int {
			return len(p.entries)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis

			return label
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(p.entries) {
				return
			}
			item.(*widget.Label).SetText(formatLogEntry(p.entries[id]))
		},
	)

	return p
}

func (p *logPanel) Widget() fyne.CanvasObject {
	return p.list
}

// Prepend inserts a new entry at the top of the list.
func (p *logPanel) Prepend(entry mlapp.LogEntry) {
	p.entries = append([]mlapp.LogEntry{entry}, p.entries...)
	if len(p.entries) > logPanelCapacity {
		p.entries = p.entries[:logPanelCapacity]
	}
	p.list.Refresh()
}

func formatLogEntry(entry mlapp.LogEntry) string {
	marker := ""
	switch entry.Severity {
	case mlapp.SeverityWarning:
		marker = " [warn]"
	case mlapp.SeverityError:
		marker = " [error]"
	}

	return fmt.Sprintf("%s%s %s", entry.At.Format("15:04:05"), marker, entry.Message)
}
