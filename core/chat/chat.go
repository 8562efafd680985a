// Package chat keeps the buyer's support conversations.
package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("thread not found")
	ErrEmpty    = errors.New("message text is empty")
)

type Sender string

const (
	FromUser  Sender = "user"
	FromAdmin Sender = "admin"
)

type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
}

type Thread struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Unread   int       `json:"unread"`
	Messages []Message `json:"messages"`
}

// Summary is a thread as shown in the conversation history.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	LastMessage string `json:"lastMessage"`
	Time        string `json:"time"`
	Unread      int    `json:"unread"`
}

func (t Thread) Summary() Summary {
	s := Summary{ID: t.ID, Name: t.Name, Avatar: t.Avatar, Unread: t.Unread}
	if n := len(t.Messages); n > 0 {
		s.LastMessage = t.Messages[n-1].Text
		s.Time = t.Messages[n-1].Timestamp
	}
	return s
}

func (t Thread) clone() Thread {
	t.Messages = append([]Message(nil), t.Messages...)
	return t
}

// Inbox holds one set of threads per user. A user's threads are seeded the
// first time they are touched.
type Inbox struct {
	mu     sync.Mutex
	byUser map[string][]*Thread
	now    func() time.Time
}

func NewInbox() *Inbox {
	return &Inbox{byUser: make(map[string][]*Thread), now: time.Now}
}

// threads must be called with the lock held.
func (in *Inbox) threads(userID string) []*Thread {
	ts, ok := in.byUser[userID]
	if !ok {
		for _, t := range seed() {
			t := t.clone()
			ts = append(ts, &t)
		}
		in.byUser[userID] = ts
	}
	return ts
}

func (in *Inbox) find(userID, threadID string) (*Thread, error) {
	for _, t := range in.threads(userID) {
		if t.ID == threadID {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

func (in *Inbox) List(userID string) []Summary {
	in.mu.Lock()
	defer in.mu.Unlock()

	ts := in.threads(userID)
	out := make([]Summary, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Summary())
	}
	return out
}

// Read returns a thread and marks it as read.
func (in *Inbox) Read(userID, threadID string) (Thread, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	t, err := in.find(userID, threadID)
	if err != nil {
		return Thread{}, err
	}
	t.Unread = 0
	return t.clone(), nil
}

// Send appends a message from the user to a thread.
func (in *Inbox) Send(userID, threadID, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmpty
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	t, err := in.find(userID, threadID)
	if err != nil {
		return Message{}, err
	}

	m := Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    FromUser,
		Timestamp: in.now().Format("15:04"),
	}
	t.Messages = append(t.Messages, m)
	return m, nil
}

func seed() []Thread {
	return []Thread{
		{
			ID:     "1",
			Name:   "Customer Service",
			Avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400&h=400&fit=crop",
			Unread: 2,
			Messages: []Message{
				{ID: "m1", Sender: FromAdmin, Timestamp: "10:30", Text: "Halo, ada yang bisa kami bantu?"},
				{ID: "m2", Sender: FromUser, Timestamp: "10:31", Text: "Saya ingin menanyakan stok buku Harry Potter and the Philosopher's Stone"},
				{ID: "m3", Sender: FromUser, Timestamp: "10:31", Text: "Apakah saat ini tersedia? Dan bagaimana kondisi bukunya?"},
				{ID: "m4", Sender: FromAdmin, Timestamp: "10:33", Text: "Saat ini buku tersebut masih tersedia 5 eksemplar. Kondisinya 90% seperti baru, hanya ada sedikit tanda pemakaian pada sudut cover."},
				{ID: "m5", Sender: FromAdmin, Timestamp: "10:33", Text: "Apakah Anda berminat untuk membelinya?"},
				{ID: "m6", Sender: FromUser, Timestamp: "10:34", Text: "Ya, saya tertarik. Apakah bisa dikirim hari ini?"},
				{ID: "m7", Sender: FromAdmin, Timestamp: "10:36", Text: "Tentu, kami dapat memproses pesanan Anda hari ini dan mengirimkannya segera. Estimasi tiba 2-3 hari kerja tergantung lokasi Anda."},
			},
		},
		{
			ID:     "2",
			Name:   "Admin Prelobook",
			Avatar: "https://images.unsplash.com/photo-1580489944761-15a19d654956?w=400&h=400&fit=crop",
			Messages: []Message{
				{ID: "m1", Sender: FromAdmin, Timestamp: "09:15", Text: "Selamat datang di Prelobook. Ada yang bisa kami bantu?"},
				{ID: "m2", Sender: FromUser, Timestamp: "09:16", Text: "Saya mau tanya kondisi buku Laskar Pelangi yang preloved"},
				{ID: "m3", Sender: FromAdmin, Timestamp: "09:18", Text: "Untuk buku Laskar Pelangi preloved, kondisinya 85% baik. Terdapat beberapa halaman yang sudah sedikit menguning dan ada sedikit lipatan di cover belakang. Namun secara keseluruhan masih sangat layak baca."},
				{ID: "m4", Sender: FromUser, Timestamp: "09:19", Text: "Berapa harganya?"},
				{ID: "m5", Sender: FromAdmin, Timestamp: "09:20", Text: "Harganya Rp 45.000 sudah termasuk ongkos kirim untuk wilayah Jawa."},
			},
		},
	}
}
