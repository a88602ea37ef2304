// Package tabs models a tab strip where exactly one tab is active at a time.
//
// Each tab names a target panel. Activating a tab shows its panel, hides every
// other panel and disables the active tab so it cannot be re-triggered. All
// transitions are explicit method calls; listeners registered with OnChange
// are notified synchronously after the state has been updated.
package tabs

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/arloliu/fitview/errs"
)

// Keys that activate a focused tab.
const (
	KeyEnter = "Enter"
	KeySpace = " "
)

// ChangeFunc is called when the active tab changes. prev is empty on the
// first activation.
type ChangeFunc func(prev, next string)

// TabState is the rendered state of a single tab.
type TabState struct {
	Target   string
	Selected bool
	Disabled bool
}

// PanelState is the rendered state of a single panel.
type PanelState struct {
	ID     string
	Hidden bool
}

// State is a snapshot of a Set.
type State struct {
	Active string
	Tabs   []TabState
	Panels []PanelState
}

// Set is a group of tabs and the panels they control.
//
// Set is safe for concurrent use.
type Set struct {
	mu        sync.Mutex
	targets   []string
	panels    []string
	active    string
	listeners []ChangeFunc
}

// New creates a tab set. targets lists the panel ID each tab controls, in
// display order; panels lists the panel IDs that exist.
//
// A target without a matching panel is kept as a tab but can never become
// active.
//
// Returns ErrNoTabs or ErrNoPanels when either list is empty, and
// ErrDuplicateTab when two tabs share a target.
func New(targets []string, panels []string) (*Set, error) {
	if len(targets) == 0 {
		return nil, errs.ErrNoTabs
	}
	if len(panels) == 0 {
		return nil, errs.ErrNoPanels
	}

	for i, t := range targets {
		if slices.Contains(targets[:i], t) {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateTab, t)
		}
	}

	return &Set{
		targets: slices.Clone(targets),
		panels:  slices.Clone(panels),
	}, nil
}

// OnChange registers fn to be called on every change of the active tab.
func (s *Set) OnChange(fn ChangeFunc) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Init selects the initial tab and returns its target.
//
// The first candidate that exists wins: the tab named by hash (a leading '#'
// is ignored), then the tab named by preActive, then the first tab. All
// panels are hidden before the candidate is shown, so if the candidate has
// no panel nothing is visible and Init returns "".
func (s *Set) Init(hash string, preActive string) string {
	s.mu.Lock()

	initial := s.targets[0]
	if h := trimHash(hash); h != "" && slices.Contains(s.targets, h) {
		initial = h
	} else if preActive != "" && slices.Contains(s.targets, preActive) {
		initial = preActive
	}

	prev := s.active
	s.active = ""
	if s.hasPanel(initial) {
		s.active = initial
	}
	next := s.active
	listeners := s.listeners
	s.mu.Unlock()

	s.notify(listeners, prev, next)

	return next
}

// Activate makes target the active tab.
//
// Returns false, leaving the state untouched, when target is not a tab or
// has no panel. Re-activating the current tab returns true without notifying
// listeners.
func (s *Set) Activate(target string) bool {
	s.mu.Lock()
	if !slices.Contains(s.targets, target) || !s.hasPanel(target) {
		s.mu.Unlock()
		return false
	}

	prev := s.active
	s.active = target
	listeners := s.listeners
	s.mu.Unlock()

	s.notify(listeners, prev, target)

	return true
}

// Key handles a key press on the tab for target. Enter and Space activate
// the tab; any other key is ignored and returns false.
func (s *Set) Key(target string, key string) bool {
	switch key {
	case KeyEnter, KeySpace:
		return s.Activate(target)
	default:
		return false
	}
}

// HashChange activates the tab named by a new URL fragment. Fragments that
// match no tab are ignored.
func (s *Set) HashChange(hash string) bool {
	h := trimHash(hash)
	if h == "" {
		return false
	}

	return s.Activate(h)
}

// Active returns the active target, or "" when nothing is shown.
func (s *Set) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active
}

// State returns a snapshot of every tab and panel.
func (s *Set) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Active: s.active,
		Tabs:   make([]TabState, len(s.targets)),
		Panels: make([]PanelState, len(s.panels)),
	}
	for i, t := range s.targets {
		selected := s.active != "" && t == s.active
		st.Tabs[i] = TabState{Target: t, Selected: selected, Disabled: selected}
	}
	for i, p := range s.panels {
		st.Panels[i] = PanelState{ID: p, Hidden: s.active == "" || p != s.active}
	}

	return st
}

// Panel returns the state of a panel by ID.
func (st State) Panel(id string) (PanelState, error) {
	for _, p := range st.Panels {
		if p.ID == id {
			return p, nil
		}
	}

	return PanelState{}, fmt.Errorf("%w: %q", errs.ErrUnknownTab, id)
}

// Tab returns the state of a tab by target.
func (st State) Tab(target string) (TabState, error) {
	for _, t := range st.Tabs {
		if t.Target == target {
			return t, nil
		}
	}

	return TabState{}, fmt.Errorf("%w: %q", errs.ErrUnknownTab, target)
}

// hasPanel must be called with s.mu held.
func (s *Set) hasPanel(target string) bool {
	return target != "" && slices.Contains(s.panels, target)
}

func (s *Set) notify(listeners []ChangeFunc, prev, next string) {
	if prev == next {
		return
	}
	for _, fn := range listeners {
		fn(prev, next)
	}
}

func trimHash(hash string) string {
	return strings.TrimPrefix(hash, "#")
}
