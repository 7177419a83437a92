package game

import "github.com/thekrainbow/gomoku/internal/board"

type HistoryEntry struct {
	Move      board.Move   `json:"move"`
	Player    board.Player `json:"player"`
	ElapsedMs float64      `json:"elapsedMs"`
	Automated bool         `json:"automated"`
	Source    string       `json:"source,omitempty"`
}

type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

func (h MoveHistory) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}
