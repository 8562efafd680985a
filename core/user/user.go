package user

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/irsalhamdi/prelobook/validate"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

const defaultAvatar = "/placeholder.svg"

// Directory keeps the profiles seen by this process. Nothing is persisted
// and no password is ever stored.
type Directory struct {
	mu      sync.RWMutex
	byEmail map[string]User
	byID    map[string]string
}

func NewDirectory() *Directory {
	return &Directory{
		byEmail: make(map[string]User),
		byID:    make(map[string]string),
	}
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a profile, or renames the existing profile for email.
func (d *Directory) Register(name, email string) User {
	d.mu.Lock()
	defer d.mu.Unlock()

	k := key(email)
	if u, ok := d.byEmail[k]; ok {
		u.Name = name
		d.byEmail[k] = u
		return u
	}

	return d.create(name, email)
}

// SignIn returns the profile for email, creating one named after the local
// part of the address on first sight.
func (d *Directory) SignIn(email string) User {
	d.mu.Lock()
	defer d.mu.Unlock()

	if u, ok := d.byEmail[key(email)]; ok {
		return u
	}

	name := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		name = email[:i]
	}
	return d.create(name, email)
}

func (d *Directory) create(name, email string) User {
	u := User{
		ID:        validate.GenerateID(),
		Name:      name,
		Email:     email,
		Avatar:    defaultAvatar,
		CreatedAt: time.Now().UTC(),
	}
	d.byEmail[key(email)] = u
	d.byID[u.ID] = key(email)
	return u
}

func (d *Directory) Fetch(id string) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	k, ok := d.byID[id]
	if !ok {
		return User{}, fmt.Errorf("user[%s]: %w", id, ErrNotFound)
	}
	return d.byEmail[k], nil
}
