package display

// Accordion tracks which issue's detail pane is expanded.
// At most one pane is open at a time; opening one closes any other.
// The zero value has every pane collapsed.
type Accordion struct {
	// open is the index of the open pane plus one; zero means none.
	open int
}

// Toggle opens the pane at index, closing any other.
// Toggling the pane that is already open collapses it.
func (a *Accordion) Toggle(index int) {
	if index < 0 {
		return
	}
	if a.IsOpen(index) {
		a.open = 0
		return
	}
	a.open = index + 1
}

// Collapse closes any open pane.
func (a *Accordion) Collapse() {
	a.open = 0
}

// IsOpen reports whether the pane at index is expanded.
func (a *Accordion) IsOpen(index int) bool {
	return index >= 0 && a.open == index+1
}

// Selected returns the index of the open pane, if any.
func (a *Accordion) Selected() (int, bool) {
	if a.open == 0 {
		return 0, false
	}
	return a.open - 1, true
}
