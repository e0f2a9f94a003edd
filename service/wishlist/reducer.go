package wishlist

import (
	entity "storefront.GO/model/entity"
)

type State struct {
	Items []entity.Product `json:"items"`
}

type Action interface {
	isAction()
}

type (
	AddItem       struct{ Product entity.Product }
	RemoveItem    struct{ ID string }
	ClearWishlist struct{}
	LoadWishlist  struct{ Items []entity.Product }
)

func (AddItem) isAction()       {}
func (RemoveItem) isAction()    {}
func (ClearWishlist) isAction() {}
func (LoadWishlist) isAction()  {}

// Reduce applies a to s. Adding a product already present returns s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddItem:
		if indexOf(s.Items, a.Product.ID) >= 0 {
			return s
		}
		items := make([]entity.Product, len(s.Items), len(s.Items)+1)
		copy(items, s.Items)
		return State{Items: append(items, a.Product)}
	case RemoveItem:
		items := make([]entity.Product, 0, len(s.Items))
		for _, p := range s.Items {
			if p.ID != a.ID {
				items = append(items, p)
			}
		}
		return State{Items: items}
	case ClearWishlist:
		return State{Items: []entity.Product{}}
	case LoadWishlist:
		// persisted data from older writers may hold duplicates
		items := make([]entity.Product, 0, len(a.Items))
		for _, p := range a.Items {
			if indexOf(items, p.ID) < 0 {
				items = append(items, p)
			}
		}
		return State{Items: items}
	default:
		return s
	}
}

func indexOf(items []entity.Product, id string) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
