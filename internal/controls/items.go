package controls

// itemList is a list of labelled entries with a single selection.
// Selected is -1 when nothing is selected.
type itemList struct {
	items    []string
	selected int

	// Selected fires with the new index whenever the selection changes.
	Selected Event[int]
}

func newItemList(items []string) itemList {
	return itemList{items: append([]string(nil), items...), selected: -1}
}

// setItems replaces the entries and clears the selection if it no longer fits.
func (l *itemList) setItems(items []string) bool {
	if equalStrings(l.items, items) {
		return false
	}
	l.items = append([]string(nil), items...)
	if l.selected >= len(l.items) {
		l.selected = -1
	}
	return true
}

// selectIndex selects i. Out-of-range or unchanged selections do nothing.
func (l *itemList) selectIndex(i int) bool {
	if i < 0 || i >= len(l.items) || i == l.selected {
		return false
	}
	l.selected = i
	l.Selected.Emit(i)
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
