package services

import (
	"context"
	"errors"
	"testing"

	"pharmatrace/internal/core/domain"
	"pharmatrace/internal/pkg/identity"
)

func TestCreateIngredient(t *testing.T) {
	ctx := context.Background()
	svc := NewIngredientService(newMemIngredientRepo())

	ingredient, err := svc.Create(ctx, testAdmin, &CreateIngredientInput{
		Kind:      "API",
		Name:      "Paracetamol",
		MinDoseMg: 200,
		MaxDoseMg: 1000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !identity.IsValid(ingredient.Identity) {
		t.Fatalf("minted identity is malformed: %s", ingredient.Identity)
	}

	stored, err := svc.GetByIdentity(ctx, domain.Identity(ingredient.Identity))
	if err != nil {
		t.Fatalf("GetByIdentity: %v", err)
	}
	if stored.Name != "Paracetamol" || stored.Kind != "API" {
		t.Fatalf("stored entry = %+v", stored)
	}
}

func TestCreateIngredientValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewIngredientService(newMemIngredientRepo())

	cases := map[string]*CreateIngredientInput{
		"unknown kind":    {Kind: "SOLVENT", Name: "Ethanol", MaxDoseMg: 10},
		"empty name":      {Kind: "EXCIPIENT", Name: "", MaxDoseMg: 10},
		"negative min":    {Kind: "API", Name: "X", MinDoseMg: -1, MaxDoseMg: 10},
		"inverted bounds": {Kind: "API", Name: "X", MinDoseMg: 10, MaxDoseMg: 5},
	}
	for name, input := range cases {
		if _, err := svc.Create(ctx, testAdmin, input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestGetIngredientNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewIngredientService(newMemIngredientRepo())

	_, err := svc.GetByIdentity(ctx, testAPI)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListIngredients(t *testing.T) {
	ctx := context.Background()
	svc := NewIngredientService(newMemIngredientRepo())

	for _, name := range []string{"Paracetamol", "Lactose", "Starch"} {
		if _, err := svc.Create(ctx, testAdmin, &CreateIngredientInput{
			Kind: "EXCIPIENT", Name: name, MaxDoseMg: 10,
		}); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	page, total, err := svc.List(ctx, 0, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
}
