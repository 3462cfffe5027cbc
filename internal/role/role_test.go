package role

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nerrad567/pulselink-core/internal/domain"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/database/dbtest"
)

func setupRepo(t *testing.T) *SQLRepository {
	t.Helper()
	return NewSQLRepository(dbtest.Open(t).DB)
}

func TestCreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, NewRole{Name: "admin"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 1 {
		t.Errorf("Create() id = %d, want 1", created.ID)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID == nil || *byID != *created {
		t.Errorf("GetByID() = %+v, want %+v", byID, created)
	}

	byName, err := repo.GetByName(ctx, "admin")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Errorf("GetByName() = %+v, want id %d", byName, created.ID)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := setupRepo(t)

	tests := []struct {
		name string
		in   NewRole
	}{
		{"empty", NewRole{}},
		{"whitespace", NewRole{Name: "   "}},
		{"too long", NewRole{Name: strings.Repeat("r", maxNameLength+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(context.Background(), tt.in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Field != "role_name" {
				t.Errorf("Create() error = %v, want role_name validation error", err)
			}
		})
	}
}

func TestCreateDuplicate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, NewRole{Name: "viewer"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := repo.Create(ctx, NewRole{Name: "viewer"})
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("second Create() error = %v, want ErrDuplicate", err)
	}
}

func TestGetMissing(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	for _, id := range []int64{0, -1, 42} {
		got, err := repo.GetByID(ctx, id)
		if err != nil || got != nil {
			t.Errorf("GetByID(%d) = (%v, %v), want (nil, nil)", id, got, err)
		}
	}
	got, err := repo.GetByName(ctx, "")
	if err != nil || got != nil {
		t.Errorf("GetByName(\"\") = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	empty, err := repo.List(ctx, domain.NewPage(0, 0))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("List() on empty table = %#v, want empty non-nil slice", empty)
	}

	for _, name := range []string{"a", "b", "c"} {
		if _, err := repo.Create(ctx, NewRole{Name: name}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	page, err := repo.List(ctx, domain.Page{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page) != 2 || page[0].Name != "b" || page[1].Name != "c" {
		t.Errorf("List(2,1) = %+v, want [b c]", page)
	}
}

func TestUpdate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, NewRole{Name: "old"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := repo.Update(ctx, created.ID, Patch{}); !errors.Is(err, domain.ErrNoFieldsProvided) {
		t.Errorf("Update(empty) error = %v, want ErrNoFieldsProvided", err)
	}

	name := "new"
	res, err := repo.Update(ctx, created.ID, Patch{Name: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if res.Affected != 1 {
		t.Errorf("Update() affected = %d, want 1", res.Affected)
	}

	got, _ := repo.GetByID(ctx, created.ID)
	if got == nil || got.Name != "new" {
		t.Errorf("GetByID() after update = %+v", got)
	}

	res, err = repo.Update(ctx, 999, Patch{Name: &name})
	if err != nil || res.Affected != 0 {
		t.Errorf("Update(missing) = (%+v, %v), want affected 0", res, err)
	}

	blank := ""
	if _, err := repo.Update(ctx, created.ID, Patch{Name: &blank}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Update(blank) error = %v, want validation error", err)
	}
}

func TestDeleteAndExists(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, NewRole{Name: "temp"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ok, err := repo.Exists(ctx, created.ID)
	if err != nil || !ok {
		t.Fatalf("Exists() = (%v, %v), want true", ok, err)
	}

	res, err := repo.Delete(ctx, created.ID)
	if err != nil || res.Affected != 1 {
		t.Fatalf("Delete() = (%+v, %v), want affected 1", res, err)
	}

	res, err = repo.Delete(ctx, created.ID)
	if err != nil || res.Affected != 0 {
		t.Errorf("second Delete() = (%+v, %v), want affected 0", res, err)
	}

	ok, err = repo.Exists(ctx, created.ID)
	if err != nil || ok {
		t.Errorf("Exists() after delete = (%v, %v), want false", ok, err)
	}
	if got, _ := repo.GetByID(ctx, created.ID); got != nil {
		t.Errorf("GetByID() after delete = %+v, want nil", got)
	}
}
