package logic

// Navigator handles cursor movement and viewport management over a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// UpdateState updates the list length and visible height, keeping the cursor in range
func (n *Navigator) UpdateState(total, viewportHeight int) {
	n.total = total
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	n.viewportHeight = viewportHeight
	n.clamp()
	n.ensureSelectedVisible()
}

// SelectedIndex returns the current selected index
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the index of the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns the number of rows the list may use
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// SetSelectedIndex moves the cursor and scrolls it into view
func (n *Navigator) SetSelectedIndex(index int) int {
	n.selectedIndex = index
	n.clamp()
	n.ensureSelectedVisible()
	return n.selectedIndex
}

// MoveBy moves the cursor by delta rows
func (n *Navigator) MoveBy(delta int) int {
	return n.SetSelectedIndex(n.selectedIndex + delta)
}

// PageUp moves the cursor up one page
func (n *Navigator) PageUp() int {
	return n.MoveBy(-n.pageSize())
}

// PageDown moves the cursor down one page
func (n *Navigator) PageDown() int {
	return n.MoveBy(n.pageSize())
}

// Home moves the cursor to the first row
func (n *Navigator) Home() int {
	return n.SetSelectedIndex(0)
}

// End moves the cursor to the last row
func (n *Navigator) End() int {
	return n.SetSelectedIndex(n.total - 1)
}

// VisibleRange returns the half-open range of rows to render and whether scroll indicators
// are needed above and below it
func (n *Navigator) VisibleRange() (start, end int, more, less bool) {
	start = n.viewportOffset
	height := n.effectiveHeight()
	end = start + height
	if end > n.total {
		end = n.total
	}
	return start, end, start > 0, end < n.total
}

// pageSize leaves room for both scroll indicators
func (n *Navigator) pageSize() int {
	if h := n.viewportHeight - 2; h > 1 {
		return h
	}
	return 1
}

func (n *Navigator) clamp() {
	if n.selectedIndex >= n.total {
		n.selectedIndex = n.total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
}

// effectiveHeight is the viewport height minus the rows taken by scroll indicators
func (n *Navigator) effectiveHeight() int {
	needsTop := n.viewportOffset > 0
	needsBottom := n.viewportOffset+n.viewportHeight < n.total

	// Showing the top indicator can push the last rows out of view
	if !needsBottom && needsTop && n.total-n.viewportOffset > n.viewportHeight-1 {
		needsBottom = true
	}

	h := n.viewportHeight
	if needsTop {
		h--
	}
	if needsBottom {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	h := n.effectiveHeight()
	if n.selectedIndex >= n.viewportOffset+h {
		n.viewportOffset = n.selectedIndex - h + 1
		// Moving down reveals the top indicator, which costs another row
		if h2 := n.effectiveHeight(); n.selectedIndex >= n.viewportOffset+h2 {
			n.viewportOffset = n.selectedIndex - h2 + 1
		}
	}

	maxOffset := n.total - n.effectiveHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
