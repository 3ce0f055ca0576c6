// Package menu holds the café's sellable items.
package menu

import (
	"errors"
	"strings"
	"unicode/utf8"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

// MaxNameLength bounds a menu item name.
const MaxNameLength = 100

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a drink or dish that can be put in a cart and ordered.
type Item struct {
	id    kernel.UUID
	name  string
	price kernel.Money

	isConstructed bool
}

// NewItem validates the identifier, the trimmed name and the price.
func NewItem(id kernel.UUID, name string, price kernel.Money) (*Item, error) {
	item := &Item{price: price, isConstructed: true}

	if err := errors.Join(item.setID(id), item.setName(name)); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate ensures the item was built by NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID     { return i.id }
func (i *Item) Name() string        { return i.name }
func (i *Item) Price() kernel.Money { return i.price }

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, MaxNameLength)
	}
	i.name = name
	return nil
}
