// Package exchange implements book bartering: browsing the books open for
// exchange and the seller's handling of incoming exchange requests.
package exchange

import (
	"errors"
	"fmt"
	"sync"

	"github.com/irsalhamdi/prelobook/core/book"
	"github.com/irsalhamdi/prelobook/core/catalog"
)

// BrowseLimit caps the unfiltered preview of the exchange page.
const BrowseLimit = 6

var (
	ErrNotFound      = errors.New("exchange request not found")
	ErrInvalidAction = errors.New("unknown exchange action")
)

// Browse filters the catalog by text and condition. Category and sort are
// not offered on the exchange page, so books keep their newest-first order.
// Without any filter only the first BrowseLimit books are returned; a filtered
// browse returns every match.
func Browse(books []book.Book, text string, conds []book.Condition) []book.Book {
	out := catalog.Search(books, catalog.Query{Text: text, Conditions: conds, Sort: catalog.Newest})
	if text == "" && len(conds) == 0 && len(out) > BrowseLimit {
		out = out[:BrowseLimit]
	}
	return out
}

type Status string

const (
	Pending   Status = "pending"
	Accepted  Status = "accepted"
	Rejected  Status = "rejected"
	Completed Status = "completed"
)

type Action string

const (
	Accept   Action = "terima"
	Reject   Action = "tolak"
	Complete Action = "selesai"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case Accept, Reject, Complete:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// transitions lists, per action, the status a request must be in and the
// status it moves to.
var transitions = map[Action]struct{ from, to Status }{
	Accept:   {Pending, Accepted},
	Reject:   {Pending, Rejected},
	Complete: {Accepted, Completed},
}

// TransitionError reports an action that is not allowed from the request's
// current status.
type TransitionError struct {
	Action Action
	Status Status
}

var passive = map[Action]string{
	Accept:   "diterima",
	Reject:   "ditolak",
	Complete: "diselesaikan",
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("permintaan tukar berstatus %s tidak dapat %s", e.Status, passive[e.Action])
}

type Party struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Offer struct {
	Title     string `json:"title"`
	Cover     string `json:"cover"`
	Condition string `json:"condition,omitempty"`
}

type Request struct {
	ID            string `json:"id"`
	User          Party  `json:"user"`
	BookOffered   Offer  `json:"bookOffered"`
	BookRequested Offer  `json:"bookRequested"`
	Status        Status `json:"status"`
	Date          string `json:"date"`
}

// Board keeps the exchange requests received by each seller.
type Board struct {
	mu       sync.Mutex
	bySeller map[string][]Request
}

func NewBoard() *Board {
	return &Board{bySeller: make(map[string][]Request)}
}

func (b *Board) requests(sellerID string) []Request {
	rs, ok := b.bySeller[sellerID]
	if !ok {
		rs = seed()
		b.bySeller[sellerID] = rs
	}
	return rs
}

// List splits the seller's requests into those awaiting a decision and the
// rest.
func (b *Board) List(sellerID string) (pending, history []Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range b.requests(sellerID) {
		if r.Status == Pending {
			pending = append(pending, r)
			continue
		}
		history = append(history, r)
	}
	return pending, history
}

func (b *Board) Apply(sellerID, id string, a Action) (Request, error) {
	t, ok := transitions[a]
	if !ok {
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidAction, a)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	rs := b.requests(sellerID)
	for i := range rs {
		if rs[i].ID != id {
			continue
		}
		if rs[i].Status != t.from {
			return Request{}, &TransitionError{Action: a, Status: rs[i].Status}
		}
		rs[i].Status = t.to
		return rs[i], nil
	}
	return Request{}, ErrNotFound
}

func seed() []Request {
	return []Request{
		{
			ID:            "1",
			User:          Party{Name: "Ahmad Fadilah", Avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400&h=400&fit=crop"},
			BookOffered:   Offer{Title: "Laskar Pelangi", Cover: "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=200&auto=format", Condition: "Bekas seperti baru"},
			BookRequested: Offer{Title: "Bumi Manusia", Cover: "https://images.unsplash.com/photo-1576504473326-1841fb7cb0b0?w=200&auto=format"},
			Status:        Pending,
			Date:          "12 Mei 2025",
		},
		{
			ID:            "2",
			User:          Party{Name: "Siti Aminah", Avatar: "https://images.unsplash.com/photo-1580489944761-15a19d654956?w=400&h=400&fit=crop"},
			BookOffered:   Offer{Title: "Filosofi Teras", Cover: "https://images.unsplash.com/photo-1515378791036-0648a3ef77b2?w=200&auto=format", Condition: "Bekas, sedikit coretan"},
			BookRequested: Offer{Title: "Atomic Habits", Cover: "https://images.unsplash.com/photo-1535905557558-afc4877a26fc?w=200&auto=format"},
			Status:        Accepted,
			Date:          "10 Mei 2025",
		},
		{
			ID:            "3",
			User:          Party{Name: "Budi Santoso", Avatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop"},
			BookOffered:   Offer{Title: "Sejarah Indonesia Modern", Cover: "https://images.unsplash.com/photo-1497633762265-9d179a990aa6?w=200&auto=format", Condition: "Bekas, halaman lengkap"},
			BookRequested: Offer{Title: "Biografi Soekarno", Cover: "https://images.unsplash.com/photo-1509266272358-7701da638078?w=200&auto=format"},
			Status:        Completed,
			Date:          "5 Mei 2025",
		},
	}
}
