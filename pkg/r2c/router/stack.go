package router

// StackEntry is a screen that can be returned to: the input it was started
// with and the position it reported when it was left.
type StackEntry struct {
	Screen Screen
	Input  any
	Resume any
}

// Stack holds the screens behind the current one.
type Stack struct {
	entries []StackEntry
}

func NewStack() *Stack {
	return &Stack{}
}

// Push records a screen before moving forward from it.
func (s *Stack) Push(screen Screen, input any, resume any) {
	s.entries = append(s.entries, StackEntry{Screen: screen, Input: input, Resume: resume})
}

// Pop removes the most recent entry, or returns nil.
func (s *Stack) Pop() *StackEntry {
	top := s.Peek()
	if top == nil {
		return nil
	}
	entry := *top
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the most recent entry without removing it, or nil.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear drops every entry, e.g. once a reboot has been committed.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
