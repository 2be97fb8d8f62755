package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	catalogx "github.com/velourlabs/scentbot/agent/catalog"
	contractx "github.com/velourlabs/scentbot/agent/contract"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrLineNotFound    = errors.New("product is not in the cart")
	ErrCustomerInvalid = errors.New("customer details are incomplete")
)

// OrderJournal records completed orders. Implementations must tolerate
// being called once per checkout; failures are logged, never surfaced.
type OrderJournal interface {
	Record(ctx context.Context, order Order) error
}

// Order is the checkout snapshot. It is returned to the caller and
// optionally journaled; it is never kept in the cart store.
type Order struct {
	OrderID  string             `json:"order_id"`
	Items    []LineItem         `json:"items"`
	Total    int                `json:"total"`
	Currency string             `json:"currency"`
	Customer contractx.Customer `json:"customer"`
	Payment  string             `json:"payment"`
	Delivery string             `json:"delivery"`
}

type Config struct {
	Currency       string
	DeliveryWindow string
}

// Service owns all cart mutations for every user. Product references are
// resolved fuzzily against the catalog before any mutation.
type Service struct {
	store    Store
	catalog  *catalogx.Catalog
	journal  OrderJournal
	validate *validator.Validate

	currency       string
	deliveryWindow string
}

func NewService(store Store, cat *catalogx.Catalog, journal OrderJournal, cfg Config) (*Service, error) {
	if store == nil {
		return nil, errors.New("cart store is required")
	}
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if journal == nil {
		journal = noopJournal{}
	}
	return &Service{
		store:          store,
		catalog:        cat,
		journal:        journal,
		validate:       validator.New(),
		currency:       cfg.Currency,
		deliveryWindow: cfg.DeliveryWindow,
	}, nil
}

type AddOutcome struct {
	Cart   []LineItem
	Added  catalogx.Product
	Action string // "added" | "merged" | "set"
}

// Add resolves the product reference and merges it into the user's cart.
// A second add for the same product increments the existing line unless
// setQty is true, in which case the line's quantity is overwritten.
func (s *Service) Add(ctx context.Context, userID, ref string, qty int, setQty bool) (AddOutcome, error) {
	prod, ok := Resolve(s.catalog.Products(), ref)
	if !ok {
		return AddOutcome{}, fmt.Errorf("%w: %q", ErrProductNotFound, ref)
	}
	if qty <= 0 {
		qty = 1
	}

	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return AddOutcome{}, fmt.Errorf("load cart: %w", err)
	}

	action := "added"
	merged := false
	for i := range items {
		if items[i].ProductID != prod.ID {
			continue
		}
		if setQty {
			items[i].Qty = qty
			action = "set"
		} else {
			items[i].Qty += qty
			action = "merged"
		}
		merged = true
		break
	}
	if !merged {
		items = append(items, LineItem{
			ProductID: prod.ID,
			Name:      prod.Name,
			Price:     prod.Price,
			Qty:       qty,
		})
	}

	if err := s.store.Save(ctx, userID, items); err != nil {
		return AddOutcome{}, fmt.Errorf("save cart: %w", err)
	}
	return AddOutcome{Cart: items, Added: prod, Action: action}, nil
}

type UpdateOutcome struct {
	Cart   []LineItem
	Action string // "updated" | "removed"
}

// Update sets the quantity of an existing line, or removes the line
// entirely when qty <= 0. The cart must already contain the product.
func (s *Service) Update(ctx context.Context, userID, ref string, qty int) (UpdateOutcome, error) {
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return UpdateOutcome{}, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return UpdateOutcome{}, ErrCartEmpty
	}

	prod, ok := Resolve(s.catalog.Products(), ref)
	if !ok {
		return UpdateOutcome{}, fmt.Errorf("%w: %q", ErrProductNotFound, ref)
	}

	idx := -1
	for i := range items {
		if items[i].ProductID == prod.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return UpdateOutcome{}, fmt.Errorf("%w: %s", ErrLineNotFound, prod.Name)
	}

	action := "updated"
	if qty <= 0 {
		items = append(items[:idx], items[idx+1:]...)
		action = "removed"
	} else {
		items[idx].Qty = qty
	}

	if err := s.store.Save(ctx, userID, items); err != nil {
		return UpdateOutcome{}, fmt.Errorf("save cart: %w", err)
	}
	return UpdateOutcome{Cart: items, Action: action}, nil
}

type ViewOutcome struct {
	Cart  []LineItem
	Total int
}

// View is a pure read: the user's cart, possibly empty, and the sum of
// price times qty across all lines.
func (s *Service) View(ctx context.Context, userID string) (ViewOutcome, error) {
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return ViewOutcome{}, fmt.Errorf("load cart: %w", err)
	}
	return ViewOutcome{Cart: items, Total: cartTotal(items)}, nil
}

// Checkout builds the order snapshot, journals it, and clears the cart.
// It is the only operation with an externally visible state reset; a
// failed checkout leaves the cart untouched.
func (s *Service) Checkout(ctx context.Context, userID string, customer contractx.Customer) (Order, error) {
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return Order{}, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return Order{}, ErrCartEmpty
	}

	if err := s.validate.Struct(customer); err != nil {
		return Order{}, fmt.Errorf("%w: name, address and phone are all required", ErrCustomerInvalid)
	}

	order := Order{
		OrderID:  fmt.Sprintf("ORD-%s-%d", userID, len(items)),
		Items:    items,
		Total:    cartTotal(items),
		Currency: s.currency,
		Customer: customer,
		Payment:  "Cash on Delivery",
		Delivery: s.deliveryWindow,
	}

	if err := s.journal.Record(ctx, order); err != nil {
		log.Warn().Err(err).Str("order_id", order.OrderID).Msg("order journal write failed")
	}

	if err := s.store.Clear(ctx, userID); err != nil {
		return Order{}, fmt.Errorf("clear cart: %w", err)
	}
	return order, nil
}

func cartTotal(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Price * item.Qty
	}
	return total
}

type noopJournal struct{}

func (noopJournal) Record(context.Context, Order) error {
	return nil
}
