package order

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	Processing Status = "processing"
	Shipped    Status = "shipped"
	Completed  Status = "completed"
	Cancelled  Status = "cancelled"
)

var labels = map[Status]string{
	Processing: "Diproses",
	Shipped:    "Dikirim",
	Completed:  "Selesai",
	Cancelled:  "Dibatalkan",
}

func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return "Tidak diketahui"
}

// ParseStatus accepts a status filter. "" and "all" select every order.
func ParseStatus(s string) (Status, error) {
	if s == "" || s == "all" {
		return "", nil
	}
	if _, ok := labels[Status(s)]; !ok {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return Status(s), nil
}

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidAction = errors.New("unknown order action")
)

// Action is a fulfilment step taken on an order by the seller.
type Action string

const (
	Ship     Action = "kirim"
	Complete Action = "selesai"
	Cancel   Action = "batal"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case Ship, Complete, Cancel:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// transitions lists, per action, the status an order must be in and the
// status it moves to. Completed and cancelled orders are final.
var transitions = map[Action]struct{ from, to Status }{
	Ship:     {Processing, Shipped},
	Complete: {Shipped, Completed},
	Cancel:   {Processing, Cancelled},
}

var passive = map[Action]string{
	Ship:     "dikirim",
	Complete: "diselesaikan",
	Cancel:   "dibatalkan",
}

// TransitionError reports an action that is not allowed from the order's
// current status.
type TransitionError struct {
	Action Action
	Status Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("pesanan berstatus %s tidak dapat %s", e.Status.Label(), passive[e.Action])
}

type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Status    Status          `json:"status"`
	Items     []Item          `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Item struct {
	BookID    string          `json:"bookId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// History keeps the orders placed since the process started.
type History struct {
	mu     sync.RWMutex
	byUser map[string][]Order
}

func NewHistory() *History {
	return &History{byUser: make(map[string][]Order)}
}

func (h *History) Create(o Order) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.byUser[o.UserID] = append(h.byUser[o.UserID], o)
}

// QueryByUser lists the orders of a user, newest first, optionally
// restricted to one status.
func (h *History) QueryByUser(userID string, status Status) []Order {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Order, 0, len(h.byUser[userID]))
	for _, o := range h.byUser[userID] {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Advance applies a fulfilment action to one of the user's orders.
func (h *History) Advance(userID, id string, a Action, now time.Time) (Order, error) {
	t, ok := transitions[a]
	if !ok {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidAction, a)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	orders := h.byUser[userID]
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if orders[i].Status != t.from {
			return Order{}, &TransitionError{Action: a, Status: orders[i].Status}
		}
		orders[i].Status = t.to
		orders[i].UpdatedAt = now
		return orders[i], nil
	}
	return Order{}, ErrNotFound
}
