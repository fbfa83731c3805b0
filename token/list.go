package token

import "github.com/emirpasic/gods/lists/arraylist"

// List is a FIFO/LIFO hybrid buffer used for pushback and lookahead: Push
// appends, Pop removes and returns the last token, and At gives indexed
// access clamped to the last valid index. It is backed by
// gods/lists/arraylist, the spec's "indexable ordered-object container"
// collaborator.
type List struct {
	items *arraylist.List
}

// NewList creates an empty token list.
func NewList() *List {
	return &List{items: arraylist.New()}
}

// Push appends tok. Pushing nil is a no-op.
func (l *List) Push(tok Token) {
	if tok == nil {
		return
	}
	l.items.Add(tok)
}

// Pop removes and returns the last token, or (nil, false) if the list is
// empty.
func (l *List) Pop() (Token, bool) {
	n := l.items.Size()
	if n == 0 {
		return nil, false
	}
	v, _ := l.items.Get(n - 1)
	l.items.Remove(n - 1)
	return v.(Token), true
}

// Last returns the most recently pushed token without removing it, or
// (nil, false) if the list is empty.
func (l *List) Last() (Token, bool) {
	n := l.items.Size()
	if n == 0 {
		return nil, false
	}
	v, _ := l.items.Get(n - 1)
	return v.(Token), true
}

// At returns the token at index i, clamping i to the last valid index
// (and a negative i to 0). It returns (nil, false) only for an empty list.
func (l *List) At(i int) (Token, bool) {
	n := l.items.Size()
	if n == 0 {
		return nil, false
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	v, found := l.items.Get(i)
	if !found {
		return nil, false
	}
	return v.(Token), true
}

// Len returns the number of tokens in the list.
func (l *List) Len() int {
	return l.items.Size()
}
