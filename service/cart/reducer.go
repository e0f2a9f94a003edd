package cart

import (
	"time"

	entity "storefront.GO/model/entity"
)

// State is the guest cart. TotalItems and TotalAmount are derived from Items
// by every reduction and are never set on their own.
type State struct {
	Items       []entity.CartLineItem `json:"items"`
	TotalItems  int                   `json:"totalItems"`
	TotalAmount int                   `json:"totalAmount"`
}

// Action is a cart state transition.
type Action interface {
	isAction()
}

type (
	AddItem struct {
		Product  entity.Product
		Variant  entity.ProductVariant
		Quantity int
		At       time.Time
	}
	UpdateItem struct {
		ID       string
		Quantity int
	}
	RemoveItem struct {
		ID string
	}
	ClearCart struct{}
	LoadCart  struct {
		Items []entity.CartLineItem
	}
	// RemoveOrdered takes the quantities of an order out of the cart. Lines
	// added or increased after the order was built stay.
	RemoveOrdered struct {
		Items []entity.CartLineItem
	}
)

func (AddItem) isAction()       {}
func (UpdateItem) isAction()    {}
func (RemoveItem) isAction()    {}
func (ClearCart) isAction()     {}
func (LoadCart) isAction()      {}
func (RemoveOrdered) isAction() {}

// Reduce applies a to s and returns the new state. s is not modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		id := entity.LineItemID(a.Product.ID, a.Variant.Size)
		items := cloneItems(s.Items)
		if i := indexOf(items, id); i >= 0 {
			items[i].Quantity += a.Quantity
		} else {
			items = append(items, entity.CartLineItem{
				ID:       id,
				Product:  a.Product,
				Variant:  a.Variant,
				Quantity: a.Quantity,
				AddedAt:  a.At,
			})
		}
		return derive(items)
	case UpdateItem:
		items := cloneItems(s.Items)
		if i := indexOf(items, a.ID); i >= 0 {
			items[i].Quantity = a.Quantity
		}
		return derive(items)
	case RemoveItem:
		items := make([]entity.CartLineItem, 0, len(s.Items))
		for _, item := range s.Items {
			if item.ID != a.ID {
				items = append(items, item)
			}
		}
		return derive(items)
	case ClearCart:
		return derive(nil)
	case RemoveOrdered:
		ordered := make(map[string]int, len(a.Items))
		for _, item := range a.Items {
			ordered[item.ID] += item.Quantity
		}
		items := make([]entity.CartLineItem, 0, len(s.Items))
		for _, item := range s.Items {
			item.Quantity -= ordered[item.ID]
			if item.Quantity >= 1 {
				items = append(items, item)
			}
		}
		return derive(items)
	case LoadCart:
		items := make([]entity.CartLineItem, 0, len(a.Items))
		for _, item := range a.Items {
			if item.Quantity >= 1 {
				items = append(items, item)
			}
		}
		return derive(items)
	default:
		return s
	}
}

func derive(items []entity.CartLineItem) State {
	if items == nil {
		items = []entity.CartLineItem{}
	}
	s := State{Items: items}
	for _, item := range items {
		s.TotalItems += item.Quantity
		s.TotalAmount += item.LineTotal()
	}
	return s
}

func indexOf(items []entity.CartLineItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []entity.CartLineItem) []entity.CartLineItem {
	out := make([]entity.CartLineItem, len(items), len(items)+1)
	copy(out, items)
	return out
}
