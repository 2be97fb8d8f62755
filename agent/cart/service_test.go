package cart

import (
	"context"
	"errors"
	"testing"

	catalogx "github.com/velourlabs/scentbot/agent/catalog"
	contractx "github.com/velourlabs/scentbot/agent/contract"
)

type journalRecord struct {
	orders []Order
	err    error
}

func (j *journalRecord) Record(_ context.Context, o Order) error {
	if j.err != nil {
		return j.err
	}
	j.orders = append(j.orders, o)
	return nil
}

func newTestService(t *testing.T) (*Service, *journalRecord) {
	t.Helper()
	journal := &journalRecord{}
	svc, err := NewService(
		NewMemoryStore(),
		catalogx.Default("Velour Fragrances", "PKR"),
		journal,
		Config{Currency: "PKR", DeliveryWindow: "2-4 business days"},
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc, journal
}

func validCustomer() contractx.Customer {
	return contractx.Customer{Name: "Ada", Address: "12 Main St", Phone: "0300-1234567"}
}

func TestAddResolvesPartialName(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	out, err := svc.Add(context.Background(), "u1", "oud", 2, false)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(out.Cart) != 1 || out.Cart[0].ProductID != "ou1" || out.Cart[0].Qty != 2 {
		t.Fatalf("unexpected cart: %#v", out.Cart)
	}
	if out.Added.Name != "Oud Royale" {
		t.Fatalf("unexpected added product: %#v", out.Added)
	}
	if out.Cart[0].Price != 4800 || out.Cart[0].Name != "Oud Royale" {
		t.Fatalf("line must denormalize name and price: %#v", out.Cart[0])
	}
}

func TestAddUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.Add(context.Background(), "u1", "nonexistent-xyz", 1, false)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("Add() error = %v, want ErrProductNotFound", err)
	}
}

func TestAddAccumulatesQuantity(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", "ou1", 2, false); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	out, err := svc.Add(ctx, "u1", "Oud Royale", 3, false)
	if err != nil {
		t.Fatalf("second Add() error = %v", err)
	}
	if len(out.Cart) != 1 {
		t.Fatalf("adds for the same product must merge into one line, got %d", len(out.Cart))
	}
	if out.Cart[0].Qty != 5 {
		t.Fatalf("merged qty = %d, want 5", out.Cart[0].Qty)
	}
	if out.Action != "merged" {
		t.Fatalf("unexpected action: %s", out.Action)
	}
}

func TestAddSetQuantityIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", "rs1", 4, true); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	out, err := svc.Add(ctx, "u1", "rs1", 2, true)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(out.Cart) != 1 || out.Cart[0].Qty != 2 {
		t.Fatalf("set semantics must leave one line at the last quantity: %#v", out.Cart)
	}
	if out.Action != "set" {
		t.Fatalf("unexpected action: %s", out.Action)
	}
}

func TestAddDefaultsNonPositiveQty(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	out, err := svc.Add(context.Background(), "u1", "cy1", 0, false)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if out.Cart[0].Qty != 1 {
		t.Fatalf("non-positive add qty should default to 1, got %d", out.Cart[0].Qty)
	}
}

func TestUpdateRemovesLineOnZeroQty(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", "ou1", 2, false); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "rs1", 1, false); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	out, err := svc.Update(ctx, "u1", "oud", 0)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if out.Action != "removed" {
		t.Fatalf("unexpected action: %s", out.Action)
	}

	view, err := svc.View(ctx, "u1")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(view.Cart) != 1 || view.Cart[0].ProductID != "rs1" {
		t.Fatalf("removed line still present: %#v", view.Cart)
	}
	if view.Total != 3900 {
		t.Fatalf("total must exclude removed line, got %d", view.Total)
	}
}

func TestUpdateSetsQuantity(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", "cy1", 1, false); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	out, err := svc.Update(ctx, "u1", "citrus", 3)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if out.Action != "updated" || out.Cart[0].Qty != 3 {
		t.Fatalf("unexpected outcome: %#v", out)
	}
}

func TestUpdateRequiresNonEmptyCart(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.Update(context.Background(), "u1", "ou1", 2)
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("Update() error = %v, want ErrCartEmpty", err)
	}
}

func TestUpdateRequiresExistingLine(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", "ou1", 1, false); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	_, err := svc.Update(ctx, "u1", "rose noir", 2)
	if !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("Update() error = %v, want ErrLineNotFound", err)
	}
}

func TestViewEmptyCart(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	view, err := svc.View(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(view.Cart) != 0 || view.Total != 0 {
		t.Fatalf("unexpected view: %#v", view)
	}
}

func TestCheckoutClearsCartAndJournals(t *testing.T) {
	t.Parallel()

	svc, journal := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", "ou1", 2, false); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "rs1", 1, false); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	order, err := svc.Checkout(ctx, "u1", validCustomer())
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if order.OrderID != "ORD-u1-2" {
		t.Fatalf("unexpected order id: %s", order.OrderID)
	}
	if order.Total != 2*4800+3900 {
		t.Fatalf("unexpected total: %d", order.Total)
	}
	if order.Payment != "Cash on Delivery" || order.Delivery != "2-4 business days" {
		t.Fatalf("unexpected payment/delivery: %s / %s", order.Payment, order.Delivery)
	}
	if len(journal.orders) != 1 || journal.orders[0].OrderID != order.OrderID {
		t.Fatalf("order not journaled: %#v", journal.orders)
	}

	view, err := svc.View(ctx, "u1")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(view.Cart) != 0 || view.Total != 0 {
		t.Fatalf("checkout must clear the cart: %#v", view)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.Checkout(context.Background(), "u1", validCustomer())
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("Checkout() error = %v, want ErrCartEmpty", err)
	}
}

func TestCheckoutValidatesCustomer(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", "ou1", 1, false); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	for _, customer := range []contractx.Customer{
		{},
		{Name: "Ada", Address: "12 Main St"},
		{Name: "Ada", Phone: "0300"},
		{Address: "12 Main St", Phone: "0300"},
	} {
		_, err := svc.Checkout(ctx, "u1", customer)
		if !errors.Is(err, ErrCustomerInvalid) {
			t.Fatalf("customer=%#v: error = %v, want ErrCustomerInvalid", customer, err)
		}
	}

	// failed validation must not have touched the cart
	view, err := svc.View(ctx, "u1")
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	if len(view.Cart) != 1 {
		t.Fatalf("failed checkout mutated the cart: %#v", view.Cart)
	}
}

func TestCheckoutSurvivesJournalFailure(t *testing.T) {
	t.Parallel()

	journal := &journalRecord{err: errors.New("db down")}
	svc, err := NewService(
		NewMemoryStore(),
		catalogx.Default("Velour Fragrances", "PKR"),
		journal,
		Config{Currency: "PKR", DeliveryWindow: "2-4 business days"},
	)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", "ou1", 1, false); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := svc.Checkout(ctx, "u1", validCustomer()); err != nil {
		t.Fatalf("Checkout() must not fail on journal errors, got %v", err)
	}
}
