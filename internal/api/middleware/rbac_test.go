package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
)

type stubUserFinder struct {
	users map[string]*domain.User
	err   error
	calls int
}

func (f *stubUserFinder) FindByID(_ context.Context, id string) (*domain.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func adminContext(principal *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(PrincipalKey, *principal)
	}
	return c, rec
}

func TestRequireAdmin_Allows(t *testing.T) {
	finder := &stubUserFinder{users: map[string]*domain.User{
		"a1": {ID: "a1", Role: domain.RoleAdmin},
	}}
	c, rec := adminContext(&domain.Principal{ID: "a1"})

	called := false
	handler := RequireAdmin(finder, zerolog.Nop())(func(c echo.Context) error {
		called = true
		p, _ := PrincipalFrom(c)
		if p.Role != domain.RoleAdmin {
			t.Fatalf("principal role not refreshed: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin_Rejects(t *testing.T) {
	cases := []struct {
		name      string
		principal *domain.Principal
		finder    *stubUserFinder
	}{
		{"standard user", &domain.Principal{ID: "u1"}, &stubUserFinder{users: map[string]*domain.User{"u1": {ID: "u1", Role: domain.RoleStandard}}}},
		{"unknown user", &domain.Principal{ID: "ghost"}, &stubUserFinder{users: map[string]*domain.User{}}},
		{"lookup failure", &domain.Principal{ID: "a1"}, &stubUserFinder{err: errors.New("mongo down")}},
		{"no principal", nil, &stubUserFinder{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := adminContext(tc.principal)

			handler := RequireAdmin(tc.finder, zerolog.Nop())(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			if err := handler(c); err != nil {
				t.Fatalf("lookup errors must not propagate: %v", err)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if body := decodeRejection(t, rec); body.Success || body.Message != "UnAuthorized Access" {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestRequireAdmin_ReadsRoleEveryRequest(t *testing.T) {
	user := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	finder := &stubUserFinder{users: map[string]*domain.User{"a1": user}}
	mw := RequireAdmin(finder, zerolog.Nop())
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	c, rec := adminContext(&domain.Principal{ID: "a1"})
	_ = mw(next)(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 while admin, got %d", rec.Code)
	}

	user.Role = domain.RoleStandard
	c, rec = adminContext(&domain.Principal{ID: "a1"})
	_ = mw(next)(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after demotion, got %d", rec.Code)
	}
	if finder.calls != 2 {
		t.Fatalf("expected a lookup per request, got %d", finder.calls)
	}
}
