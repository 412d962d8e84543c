package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

func newAccessFixture() (*AccessService, *stubUserRepo, *stubNomineeRepo) {
	users := newStubUserRepo(
		&domain.User{Principal: "WV-OWNER", Username: "owner", Role: domain.RoleUser},
		&domain.User{Principal: "WV-NOMINEE", Username: "nominee", Role: domain.RoleUser},
		&domain.User{Principal: "WV-ADMIN", Username: "admin", Role: domain.RoleAdmin},
		&domain.User{Principal: "WV-STRANGER", Username: "stranger", Role: domain.RoleUser},
	)
	nominees := newStubNomineeRepo()
	return NewAccessService(users, nominees, zerolog.Nop()), users, nominees
}

func TestResolveRole(t *testing.T) {
	svc, _, _ := newAccessFixture()
	ctx := context.Background()

	tests := []struct {
		caller string
		want   string
	}{
		{"WV-ADMIN", domain.RoleAdmin},
		{"WV-OWNER", domain.RoleUser},
		{"WV-UNKNOWN", domain.RoleGuest},
		{"", domain.RoleGuest},
	}
	for _, tt := range tests {
		role, err := svc.ResolveRole(ctx, tt.caller)
		if err != nil {
			t.Fatalf("ResolveRole(%q): %v", tt.caller, err)
		}
		if role != tt.want {
			t.Errorf("ResolveRole(%q) = %q, want %q", tt.caller, role, tt.want)
		}
	}
}

func TestCanReadMatrix(t *testing.T) {
	svc, _, nominees := newAccessFixture()
	ctx := context.Background()
	nominees.byOwner["WV-OWNER"] = domain.Nominee{Principal: "WV-NOMINEE", Name: "Asha"}

	tests := []struct {
		name   string
		caller string
		owner  string
		want   bool
	}{
		{"owner reads own", "WV-OWNER", "WV-OWNER", true},
		{"admin reads anyone", "WV-ADMIN", "WV-OWNER", true},
		{"nominee reads grantor", "WV-NOMINEE", "WV-OWNER", true},
		{"stranger denied", "WV-STRANGER", "WV-OWNER", false},
		{"nominee grant is not symmetric", "WV-OWNER", "WV-NOMINEE", false},
		{"empty caller denied", "", "WV-OWNER", false},
		{"empty owner denied", "WV-ADMIN", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CanRead(ctx, tt.caller, tt.owner)
			if err != nil {
				t.Fatalf("CanRead: %v", err)
			}
			if got != tt.want {
				t.Errorf("CanRead(%q, %q) = %v, want %v", tt.caller, tt.owner, got, tt.want)
			}
		})
	}
}

func TestRemovingNomineeRevokesReadImmediately(t *testing.T) {
	svc, _, nominees := newAccessFixture()
	ctx := context.Background()
	nominees.byOwner["WV-OWNER"] = domain.Nominee{Principal: "WV-NOMINEE", Name: "Asha"}

	if ok, _ := svc.CanRead(ctx, "WV-NOMINEE", "WV-OWNER"); !ok {
		t.Fatalf("nominee should read before removal")
	}

	if err := nominees.Delete(ctx, "WV-OWNER"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if ok, _ := svc.CanRead(ctx, "WV-NOMINEE", "WV-OWNER"); ok {
		t.Fatalf("former nominee must be denied on the very next check")
	}
}

func TestCanWriteOwnerOnly(t *testing.T) {
	svc, _, nominees := newAccessFixture()
	ctx := context.Background()
	nominees.byOwner["WV-OWNER"] = domain.Nominee{Principal: "WV-NOMINEE", Name: "Asha"}

	if ok, _ := svc.CanWrite(ctx, "WV-OWNER", "WV-OWNER"); !ok {
		t.Fatalf("owner must be able to write own data")
	}
	// admin and nominee read, never write
	if ok, _ := svc.CanWrite(ctx, "WV-ADMIN", "WV-OWNER"); ok {
		t.Fatalf("admin must not write another identity's data")
	}
	if ok, _ := svc.CanWrite(ctx, "WV-NOMINEE", "WV-OWNER"); ok {
		t.Fatalf("nominee must not write the owner's data")
	}
}

func TestAssignRole(t *testing.T) {
	svc, users, _ := newAccessFixture()
	ctx := context.Background()

	if err := svc.AssignRole(ctx, "WV-OWNER", "WV-STRANGER", domain.RoleAdmin); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-admin elevation should be unauthorized, got %v", err)
	}

	if err := svc.AssignRole(ctx, "WV-ADMIN", "WV-STRANGER", "superuser"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("unknown role should be rejected, got %v", err)
	}

	if err := svc.AssignRole(ctx, "WV-ADMIN", "WV-STRANGER", domain.RoleAdmin); err != nil {
		t.Fatalf("admin elevation failed: %v", err)
	}
	u, _ := users.FindByPrincipal(ctx, "WV-STRANGER")
	if u.Role != domain.RoleAdmin {
		t.Fatalf("role not persisted, got %q", u.Role)
	}
}
