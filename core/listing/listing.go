// Package listing manages the books a seller puts up for sale.
package listing

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("listing not found")

	// Conflict errors carry the message shown to the seller.
	ErrLocked       = errors.New("buku yang sudah terjual atau dihapus tidak dapat diubah")
	ErrNotAvailable = errors.New("hanya buku yang tersedia yang dapat ditandai terjual")
)

type Status string

const (
	Available Status = "available"
	Pending   Status = "pending"
	Sold      Status = "sold"
	Blocked   Status = "blocked"
	Deleted   Status = "deleted"
)

// Final reports whether a listing in this status can no longer change.
func (s Status) Final() bool {
	return s == Sold || s == Deleted
}

type Listing struct {
	ID           string    `json:"id"`
	SellerID     string    `json:"sellerId"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Publisher    string    `json:"publisher,omitempty"`
	PublishYear  int       `json:"publishYear"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags,omitempty"`
	Quantity     int       `json:"quantity"`
	Exchangeable bool      `json:"isExchangeable"`
	Images       []string  `json:"images"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ListingNew is the add/edit book form.
type ListingNew struct {
	Title        string   `json:"title" validate:"required"`
	Author       string   `json:"author" validate:"required"`
	Publisher    string   `json:"publisher"`
	PublishYear  int      `json:"publishYear" validate:"required,gte=1000,lte=9999"`
	Description  string   `json:"description" validate:"max=2000"`
	Price        int64    `json:"price" validate:"required,gt=0"`
	Category     string   `json:"category" validate:"required,oneof=academic novel reference children religious selfhelp"`
	Tags         []string `json:"tags"`
	Quantity     int      `json:"quantity" validate:"omitempty,gte=1"`
	Exchangeable bool     `json:"isExchangeable"`
	Images       []string `json:"images" validate:"min=1,max=5,dive,required"`
}

func (n ListingNew) apply(l *Listing) {
	l.Title = n.Title
	l.Author = n.Author
	l.Publisher = n.Publisher
	l.PublishYear = n.PublishYear
	l.Description = n.Description
	l.Price = n.Price
	l.Category = n.Category
	l.Tags = append([]string(nil), n.Tags...)
	l.Quantity = n.Quantity
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	l.Exchangeable = n.Exchangeable
	l.Images = append([]string(nil), n.Images...)
}

// Stats summarizes a seller's shelf for the dashboard.
type Stats struct {
	Active  int `json:"booksActive"`
	Pending int `json:"booksPending"`
	Sold    int `json:"booksSold"`
	Total   int `json:"booksTotal"`
}

// Shelf keeps the listings of every seller. Deleted listings are kept with
// their status so they stay visible in the seller's history.
type Shelf struct {
	mu       sync.RWMutex
	bySeller map[string][]*Listing
	now      func() time.Time
}

func NewShelf() *Shelf {
	return &Shelf{bySeller: make(map[string][]*Listing), now: time.Now}
}

// listings must be called with the write lock held.
func (s *Shelf) listings(sellerID string) []*Listing {
	ls, ok := s.bySeller[sellerID]
	if !ok {
		for _, l := range seed(sellerID, s.now().UTC()) {
			l := l
			ls = append(ls, &l)
		}
		s.bySeller[sellerID] = ls
	}
	return ls
}

func (s *Shelf) find(sellerID, id string) (*Listing, error) {
	for _, l := range s.listings(sellerID) {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, ErrNotFound
}

// List returns the seller's listings, newest first.
func (s *Shelf) List(sellerID string) []Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls := s.listings(sellerID)
	out := make([]Listing, 0, len(ls))
	for _, l := range ls {
		out = append(out, *l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Create adds an available listing. n must already be validated.
func (s *Shelf) Create(sellerID string, n ListingNew) Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	l := Listing{
		ID:        uuid.NewString(),
		SellerID:  sellerID,
		Status:    Available,
		CreatedAt: now,
		UpdatedAt: now,
	}
	n.apply(&l)

	s.bySeller[sellerID] = append(s.listings(sellerID), &l)
	return l
}

// Update replaces the editable fields of a listing.
func (s *Shelf) Update(sellerID, id string, n ListingNew) (Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.find(sellerID, id)
	if err != nil {
		return Listing{}, err
	}
	if l.Status.Final() {
		return Listing{}, ErrLocked
	}

	n.apply(l)
	l.UpdatedAt = s.now().UTC()
	return *l, nil
}

func (s *Shelf) MarkSold(sellerID, id string) (Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.find(sellerID, id)
	if err != nil {
		return Listing{}, err
	}
	switch {
	case l.Status.Final():
		return Listing{}, ErrLocked
	case l.Status != Available:
		return Listing{}, ErrNotAvailable
	}

	l.Status = Sold
	l.UpdatedAt = s.now().UTC()
	return *l, nil
}

func (s *Shelf) Delete(sellerID, id string) (Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.find(sellerID, id)
	if err != nil {
		return Listing{}, err
	}
	if l.Status.Final() {
		return Listing{}, ErrLocked
	}

	l.Status = Deleted
	l.UpdatedAt = s.now().UTC()
	return *l, nil
}

func (s *Shelf) Stats(sellerID string) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	for _, l := range s.listings(sellerID) {
		switch l.Status {
		case Available:
			st.Active++
		case Pending:
			st.Pending++
		case Sold:
			st.Sold++
		}
		if l.Status != Deleted {
			st.Total++
		}
	}
	return st
}

func seed(sellerID string, now time.Time) []Listing {
	base := []Listing{
		{ID: "1", Title: "Matematika Dasar SMA Kelas X", Author: "Prof. Dr. Budiman", Price: 75000, Status: Available, Category: "academic",
			Images: []string{"https://images.unsplash.com/photo-1576504473326-1841fb7cb0b0?w=500&auto=format"}},
		{ID: "2", Title: "Bumi Manusia", Author: "Pramoedya Ananta Toer", Price: 85000, Status: Pending, Category: "novel",
			Images: []string{"https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=500&auto=format"}},
		{ID: "3", Title: "Fisika Dasar Universitas", Author: "Dr. Andi Wijaya", Price: 120000, Status: Sold, Category: "academic",
			Images: []string{"https://images.unsplash.com/photo-1535905557558-afc4877a26fc?w=500&auto=format"}},
		{ID: "4", Title: "Kimia Kelas X", Author: "Drs. Surya Bintang", Price: 65000, Status: Available, Category: "academic",
			Images: []string{"https://images.unsplash.com/photo-1515378791036-0648a3ef77b2?w=500&auto=format"}},
	}

	// Seeded listings read top to bottom in the seller's list.
	for i := range base {
		base[i].SellerID = sellerID
		base[i].Quantity = 1
		base[i].CreatedAt = now.Add(-time.Duration(i+1) * time.Hour)
		base[i].UpdatedAt = base[i].CreatedAt
	}
	return base
}
