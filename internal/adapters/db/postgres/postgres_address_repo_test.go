package postgres

import (
	"context"
	"testing"

	"github.com/pedrohqb/ecommerce-backend/internal/domain/apperrors"
	"github.com/pedrohqb/ecommerce-backend/internal/domain/model"
)

func TestPostgresAddressRepo_CRUD(t *testing.T) {
	repo := NewPostgresAddressRepo(setupDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, model.Address{
		UserID: 1, Street: "Rua das Flores", Number: "100", City: "São Paulo", State: "SP", ZipCode: "01000-000",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil || got.Street != "Rua das Flores" {
		t.Fatalf("get: %v", err)
	}

	got.City = "Campinas"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = repo.GetByID(ctx, id)
	if err != nil || got.City != "Campinas" {
		t.Fatalf("update not applied: %+v (%v)", got, err)
	}

	list, err := repo.ListByUser(ctx, 1)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v (%d)", err, len(list))
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, id); !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.Delete(ctx, id); !apperrors.IsNotFound(err) {
		t.Fatalf("delete missing: expected not found, got %v", err)
	}
}

func TestPostgresAddressRepo_UpdateMissing(t *testing.T) {
	repo := NewPostgresAddressRepo(setupDB(t))
	err := repo.Update(context.Background(), model.Address{ID: 404, Street: "x"})
	if !apperrors.IsUpdateFailed(err) {
		t.Fatalf("expected update failed, got %v", err)
	}
}
