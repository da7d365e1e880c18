// Package history keeps a most-recently-used list of picked colors.
package history

import (
	"fmt"
	"sync"

	"github.com/jsvensson/hclsliders/internal/color"
)

// MaxMemory is the largest memory bound a History accepts.
const MaxMemory = 999

// History is an MRU list of sRGB colors, newest first. A zero Memory keeps
// every color. A History is safe for concurrent use.
type History struct {
	mu     sync.RWMutex
	colors []color.Color
	memory int
}

// New returns an empty history bounded to memory colors.
func New(memory int) (*History, error) {
	h := &History{}
	if err := h.SetMemory(memory); err != nil {
		return nil, err
	}
	return h, nil
}

// Memory returns the bound on the number of kept colors, 0 for unbounded.
func (h *History) Memory() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.memory
}

// SetMemory changes the bound and trims the oldest colors past it.
func (h *History) SetMemory(memory int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if memory < 0 || memory > MaxMemory {
		return fmt.Errorf("history memory %d out of range [0, %d]", memory, MaxMemory)
	}
	h.memory = memory
	h.trim()
	return nil
}

// Len returns the number of colors.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.colors)
}

// Colors returns a copy of every color, newest first.
func (h *History) Colors() []color.Color {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]color.Color(nil), h.colors...)
}

// At returns the color at index i.
func (h *History) At(i int) (color.Color, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if err := h.check(i); err != nil {
		return color.Color{}, err
	}
	return h.colors[i], nil
}

// Add puts c at the front. An equal color already present is moved to the
// front instead of being added twice. Colors are stored as sRGB.
func (h *History) Add(c color.Color) {
	c = color.Convert(c, color.SRGB)
	h.mu.Lock()
	defer h.mu.Unlock()
	if i := h.index(c); i >= 0 {
		h.moveToFront(i)
		return
	}
	h.colors = append([]color.Color{c}, h.colors...)
	h.trim()
}

// Window returns up to n colors starting at offset, for scrolling views.
func (h *History) Window(offset, n int) []color.Color {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(h.colors) || n <= 0 {
		return nil
	}
	end := min(offset+n, len(h.colors))
	return append([]color.Color(nil), h.colors[offset:end]...)
}

// Use returns the color at index i and moves it to the front.
func (h *History) Use(i int) (color.Color, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.check(i); err != nil {
		return color.Color{}, err
	}
	c := h.colors[i]
	h.moveToFront(i)
	return c, nil
}

// Delete removes the color at index i.
func (h *History) Delete(i int) error {
	return h.DeleteRange(i, i)
}

// DeleteRange removes the colors between indexes a and b inclusive. The
// indexes may be given in either order.
func (h *History) DeleteRange(a, b int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if a > b {
		a, b = b, a
	}
	if err := h.check(a); err != nil {
		return err
	}
	if err := h.check(b); err != nil {
		return err
	}
	h.colors = append(h.colors[:a], h.colors[b+1:]...)
	return nil
}

// Clear removes every color.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors = nil
}

func (h *History) index(c color.Color) int {
	for i, o := range h.colors {
		if o == c {
			return i
		}
	}
	return -1
}

func (h *History) moveToFront(i int) {
	if i == 0 {
		return
	}
	c := h.colors[i]
	copy(h.colors[1:i+1], h.colors[:i])
	h.colors[0] = c
}

func (h *History) trim() {
	if h.memory > 0 && len(h.colors) > h.memory {
		h.colors = h.colors[:h.memory]
	}
}

func (h *History) check(i int) error {
	if i < 0 || i >= len(h.colors) {
		return fmt.Errorf("history index %d out of range [0, %d)", i, len(h.colors))
	}
	return nil
}
