package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/irsalhamdi/prelobook/core/book"
)

type Sort string

const (
	Newest     Sort = "newest"
	Cheapest   Sort = "cheapest"
	BestSeller Sort = "bestSeller"
)

// ParseSort maps a query value to a sort key. The empty string selects Newest.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "", Newest:
		return Newest, nil
	case Cheapest, BestSeller:
		return Sort(s), nil
	}
	return "", fmt.Errorf("unknown sort option %q", s)
}

// Label is the Indonesian label shown on the sort selector.
func (s Sort) Label() string {
	switch s {
	case Cheapest:
		return "Termurah"
	case BestSeller:
		return "Terlaris"
	default:
		return "Terbaru"
	}
}

type Query struct {
	Text       string
	Category   string
	Conditions []book.Condition
	Sort       Sort
}

// Search returns the books matching q in q.Sort order. The input slice is
// never modified and ties keep their input order, so repeated calls with the
// same arguments return the same sequence.
func Search(books []book.Book, q Query) []book.Book {
	text := strings.ToLower(q.Text)

	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if q.Category != "" && b.Category != q.Category {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(b.Title), text) &&
			!strings.Contains(strings.ToLower(b.Author), text) {
			continue
		}
		if len(q.Conditions) > 0 && !hasCondition(q.Conditions, b.Condition) {
			continue
		}
		out = append(out, b)
	}

	var less func(i, j int) bool
	switch q.Sort {
	case Cheapest:
		less = func(i, j int) bool {
			return out[i].EffectivePrice().LessThan(out[j].EffectivePrice())
		}
	case BestSeller:
		less = func(i, j int) bool { return out[i].ReviewCount > out[j].ReviewCount }
	default:
		less = func(i, j int) bool { return out[i].Year > out[j].Year }
	}
	sort.SliceStable(out, less)

	return out
}

func hasCondition(set []book.Condition, c book.Condition) bool {
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}
