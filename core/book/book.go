package book

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type Condition string

const (
	New      Condition = "Baru"
	VeryGood Condition = "Sangat Baik"
	Good     Condition = "Baik"
	Fair     Condition = "Cukup Baik"
)

// Conditions lists every condition from best to worst.
var Conditions = []Condition{New, VeryGood, Good, Fair}

func (c Condition) Valid() bool {
	for _, v := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

func ParseCondition(s string) (Condition, error) {
	c := Condition(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown condition %q", s)
	}
	return c, nil
}

type Book struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Author      string    `json:"author" yaml:"author"`
	Publisher   string    `json:"publisher" yaml:"publisher"`
	Year        int       `json:"year" yaml:"year"`
	Price       int64     `json:"price" yaml:"price"`
	Discount    *int      `json:"discount,omitempty" yaml:"discount,omitempty"`
	Rating      float64   `json:"rating" yaml:"rating"`
	ReviewCount int       `json:"reviewCount" yaml:"reviewCount"`
	CoverImage  string    `json:"coverImage" yaml:"coverImage"`
	Category    string    `json:"category" yaml:"category"`
	Condition   Condition `json:"condition" yaml:"condition"`
	Description string    `json:"description" yaml:"description"`
	SellerID    string    `json:"sellerId" yaml:"sellerId"`
}

// DiscountPercent returns the discount, zero when the book has none.
func (b Book) DiscountPercent() int {
	if b.Discount == nil {
		return 0
	}
	return *b.Discount
}

// EffectivePrice is the listed price after the discount.
func (b Book) EffectivePrice() decimal.Decimal {
	return Discounted(b.Price, b.DiscountPercent())
}

func (b Book) Validate() error {
	if b.ID == "" {
		return errors.New("book id is empty")
	}
	if b.Price < 0 {
		return fmt.Errorf("book[%s]: negative price %d", b.ID, b.Price)
	}
	if d := b.DiscountPercent(); d < 0 || d > 100 {
		return fmt.Errorf("book[%s]: discount %d outside [0,100]", b.ID, d)
	}
	if !b.Condition.Valid() {
		return fmt.Errorf("book[%s]: unknown condition %q", b.ID, b.Condition)
	}
	return nil
}

// Discounted computes price × (1 − percent/100) without rounding.
func Discounted(price int64, percent int) decimal.Decimal {
	p := decimal.NewFromInt(price)
	if percent == 0 {
		return p
	}
	return p.Mul(decimal.NewFromInt(int64(100 - percent))).Div(decimal.NewFromInt(100))
}

type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

type Seller struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Rating      float64 `json:"rating" yaml:"rating"`
	ReviewCount int     `json:"reviewCount" yaml:"reviewCount"`
	Avatar      string  `json:"avatar" yaml:"avatar"`
}

type Promo struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Image    string `json:"image" yaml:"image"`
	Discount int    `json:"discount" yaml:"discount"`
}
