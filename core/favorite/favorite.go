// Package favorite keeps the books and bundles each user has saved.
package favorite

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNotFound    = errors.New("favorite not found")
	ErrInvalidKind = errors.New("unknown favorite kind")
)

// Kind names the catalog entity a favorite points to.
type Kind string

const (
	Book   Kind = "buku"
	Bundle Kind = "paket"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Book, Bundle:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// List holds catalog ids in the order they were saved.
type List struct {
	Books   []string `json:"books"`
	Bundles []string `json:"bundles"`
}

func (l *List) ids(k Kind) *[]string {
	if k == Bundle {
		return &l.Bundles
	}
	return &l.Books
}

func (l List) clone() List {
	return List{
		Books:   append([]string{}, l.Books...),
		Bundles: append([]string{}, l.Bundles...),
	}
}

// Store holds one favorites list per user. A user's list is seeded the
// first time it is touched.
type Store struct {
	mu     sync.Mutex
	byUser map[string]*List
}

func NewStore() *Store {
	return &Store{byUser: make(map[string]*List)}
}

// list must be called with the lock held.
func (s *Store) list(userID string) *List {
	l, ok := s.byUser[userID]
	if !ok {
		l = seed()
		s.byUser[userID] = l
	}
	return l
}

func (s *Store) Get(userID string) List {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list(userID).clone()
}

// Add saves id under kind. Saving an id twice keeps a single entry.
func (s *Store) Add(userID string, k Kind, id string) List {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.list(userID)
	ids := l.ids(k)
	for _, v := range *ids {
		if v == id {
			return l.clone()
		}
	}
	*ids = append(*ids, id)
	return l.clone()
}

func (s *Store) Remove(userID string, k Kind, id string) (List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.list(userID)
	ids := l.ids(k)
	for i, v := range *ids {
		if v == id {
			*ids = append((*ids)[:i:i], (*ids)[i+1:]...)
			return l.clone(), nil
		}
	}
	return List{}, fmt.Errorf("%s[%s]: %w", k, id, ErrNotFound)
}

func seed() *List {
	return &List{
		Books:   []string{"book1", "book4", "book6"},
		Bundles: []string{"package1", "package2"},
	}
}
