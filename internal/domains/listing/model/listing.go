package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Column limits của bảng listings. Validator chặt hơn (xem validation.go).
const (
	TitleColumnMax       = 200
	DescriptionColumnMax = 2000
	AddressColumnMax     = 500
)

// Listing entity (map bảng listings)
type Listing struct {
	ID          uuid.UUID       `db:"id"`
	Title       string          `db:"title"`
	Price       decimal.Decimal `db:"price"`
	Description *string         `db:"description"`
	Address     *string         `db:"address"`
}

// Clone returns a detached copy; pointer fields are copied too.
func (l Listing) Clone() Listing {
	c := l
	c.Description = cloneString(l.Description)
	c.Address = cloneString(l.Address)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
