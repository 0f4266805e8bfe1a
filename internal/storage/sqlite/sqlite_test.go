package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/orderlines/internal/models"
	"github.com/mmynk/orderlines/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "orderlines-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestUser(t *testing.T, store *SQLiteStore, email string) *models.User {
	t.Helper()

	user := models.NewUser(email, "Test User", "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestSQLiteStore_Orders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice@example.com")

	t.Run("CreateOrder generates ID and timestamps", func(t *testing.T) {
		order := &models.Order{CustomerID: alice.ID}

		if err := store.CreateOrder(ctx, order); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		if order.ID == "" {
			t.Error("Expected order ID to be generated")
		}
		if order.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if order.UpdatedAt != order.CreatedAt {
			t.Errorf("UpdatedAt = %d, want %d", order.UpdatedAt, order.CreatedAt)
		}
	})

	t.Run("GetOrder retrieves lines in insertion order", func(t *testing.T) {
		original := &models.Order{
			CustomerID: alice.ID,
			Items: []models.LineItem{
				{ProductID: "P", Price: 15.0, Quantity: 1},
				{ProductID: "P", Price: 10.0, Quantity: 5},
				{ProductID: "A", Price: 0, Quantity: 2},
			},
		}
		if err := store.CreateOrder(ctx, original); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		retrieved, err := store.GetOrder(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}

		if retrieved.CustomerID != alice.ID {
			t.Errorf("CustomerID mismatch: got %s, want %s", retrieved.CustomerID, alice.ID)
		}
		if len(retrieved.Items) != len(original.Items) {
			t.Fatalf("Items count mismatch: got %d, want %d", len(retrieved.Items), len(original.Items))
		}
		for i, item := range retrieved.Items {
			want := original.Items[i]
			if item.ID == "" || item.ID != want.ID {
				t.Errorf("Item %d ID mismatch: got %q, want %q", i, item.ID, want.ID)
			}
			if item.ProductID != want.ProductID || item.Price != want.Price || item.Quantity != want.Quantity {
				t.Errorf("Item %d mismatch: got %+v, want %+v", i, item, want)
			}
			if item.Position != i {
				t.Errorf("Item %d position = %d", i, item.Position)
			}
		}
	})

	t.Run("GetOrder returns ErrNotFound for nonexistent order", func(t *testing.T) {
		_, err := store.GetOrder(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveItems replaces lines and keeps IDs", func(t *testing.T) {
		order := &models.Order{
			CustomerID: alice.ID,
			Items:      []models.LineItem{{ProductID: "A", Price: 1.5, Quantity: 1}},
		}
		if err := store.CreateOrder(ctx, order); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
		keptID := order.Items[0].ID

		items := []models.LineItem{
			{ID: keptID, ProductID: "A", Price: 1.5, Quantity: 4},
			{ProductID: "B", Price: 3, Quantity: 1},
		}
		if err := store.SaveItems(ctx, order.ID, items); err != nil {
			t.Fatalf("SaveItems failed: %v", err)
		}
		if items[1].ID == "" {
			t.Error("Expected new line to get an ID")
		}

		retrieved, err := store.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if len(retrieved.Items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(retrieved.Items))
		}
		if retrieved.Items[0].ID != keptID || retrieved.Items[0].Quantity != 4 {
			t.Errorf("First line = %+v, want ID %s quantity 4", retrieved.Items[0], keptID)
		}
		if retrieved.Items[1].ProductID != "B" {
			t.Errorf("Second line product = %s, want B", retrieved.Items[1].ProductID)
		}
	})

	t.Run("SaveItems returns ErrNotFound for nonexistent order", func(t *testing.T) {
		err := store.SaveItems(ctx, "nonexistent-id", nil)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveItems rejects invalid lines atomically", func(t *testing.T) {
		order := &models.Order{
			CustomerID: alice.ID,
			Items:      []models.LineItem{{ProductID: "A", Price: 2, Quantity: 2}},
		}
		if err := store.CreateOrder(ctx, order); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		err := store.SaveItems(ctx, order.ID, []models.LineItem{{ProductID: "A", Price: 2, Quantity: 0}})
		if err == nil {
			t.Fatal("Expected error for zero quantity line")
		}

		retrieved, err := store.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if len(retrieved.Items) != 1 || retrieved.Items[0].Quantity != 2 {
			t.Errorf("Expected original line to survive, got %+v", retrieved.Items)
		}
	})

	t.Run("CreateOrder fails for unknown customer", func(t *testing.T) {
		err := store.CreateOrder(ctx, &models.Order{CustomerID: "nobody"})
		if err == nil {
			t.Error("Expected foreign key error, got nil")
		}
	})
}

func TestSQLiteStore_ListOrders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, store, "alice@example.com")
	bob := createTestUser(t, store, "bob@example.com")

	first := &models.Order{CustomerID: alice.ID, CreatedAt: 100}
	second := &models.Order{
		CustomerID: alice.ID,
		CreatedAt:  200,
		Items:      []models.LineItem{{ProductID: "A", Price: 1, Quantity: 1}},
	}
	other := &models.Order{CustomerID: bob.ID}
	for _, o := range []*models.Order{first, second, other} {
		if err := store.CreateOrder(ctx, o); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
	}

	orders, err := store.ListOrders(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}

	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Errorf("Expected newest first, got %s, %s", orders[0].ID, orders[1].ID)
	}
	if len(orders[0].Items) != 1 {
		t.Errorf("Expected 1 item on newest order, got %d", len(orders[0].Items))
	}
	if len(orders[1].Items) != 0 {
		t.Errorf("Expected no items on oldest order, got %d", len(orders[1].Items))
	}

	none, err := store.ListOrders(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no orders, got %d", len(none))
	}
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "carol@example.com")

	tests := []struct {
		name    string
		get     func() (*models.User, error)
		wantNil bool
	}{
		{
			name: "by email",
			get:  func() (*models.User, error) { return store.GetUserByEmail(ctx, "carol@example.com") },
		},
		{
			name: "by ID",
			get:  func() (*models.User, error) { return store.GetUserByID(ctx, user.ID) },
		},
		{
			name:    "unknown email",
			get:     func() (*models.User, error) { return store.GetUserByEmail(ctx, "nobody@example.com") },
			wantNil: true,
		},
		{
			name:    "unknown ID",
			get:     func() (*models.User, error) { return store.GetUserByID(ctx, "nobody") },
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.get()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected nil user, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Expected user, got nil")
			}
			if got.ID != user.ID || got.Email != user.Email || got.PasswordHash != user.PasswordHash {
				t.Errorf("User mismatch: got %+v, want %+v", got, user)
			}
		})
	}

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := models.NewUser("carol@example.com", "Carol Again", "hash")
		err := store.CreateUser(ctx, dup)
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("Expected ErrDuplicate, got %v", err)
		}
	})
}
