package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/clean-auth/internal/controller"
	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
	"github.com/ErlanBelekov/clean-auth/internal/transport/http/handler"
)

type fakeList struct {
	got []controller.ListUsersRequest
}

func (f *fakeList) Handle(_ context.Context, req controller.ListUsersRequest) controller.Response {
	f.got = append(f.got, req)
	return controller.OK([]*domain.User{{ID: 1, Name: "Ann Lee", Email: "ann@example.com", PasswordHash: "secret"}})
}

type fakeCreateUser struct {
	actors []domain.Role
}

func (f *fakeCreateUser) Handle(_ context.Context, actor domain.Role, _ controller.SignUpRequest) controller.Response {
	f.actors = append(f.actors, actor)
	return controller.Created()
}

type fakeCreateRole struct {
	got []controller.CreateRoleRequest
}

func (f *fakeCreateRole) Handle(_ context.Context, req controller.CreateRoleRequest) controller.Response {
	f.got = append(f.got, req)
	return controller.BadRequest(domain.ErrRoleExists)
}

func TestListUsers_PassesQueryAndHidesHash(t *testing.T) {
	list := &fakeList{}
	h := handler.NewUserHandler(list, &fakeCreateUser{}, messages.Default())
	r := gin.New()
	r.GET("/api/users", h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users?page=2&limit=5", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if list.got[0] != (controller.ListUsersRequest{Page: "2", Limit: "5"}) {
		t.Errorf("request = %+v", list.got[0])
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Errorf("password hash leaked: %s", w.Body.String())
	}
}

func TestCreateUser_WithoutRoleInContext_Returns403(t *testing.T) {
	create := &fakeCreateUser{}
	h := handler.NewUserHandler(&fakeList{}, create, messages.Default())
	r := gin.New()
	r.POST("/api/users", h.Create)

	w := post(r, "/api/users", `{}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if len(create.actors) != 0 {
		t.Error("controller must not run without an authorized role")
	}
}

func TestCreateUser_PassesActorRole(t *testing.T) {
	create := &fakeCreateUser{}
	h := handler.NewUserHandler(&fakeList{}, create, messages.Default())
	r := gin.New()
	r.POST("/api/users", func(c *gin.Context) {
		c.Set("role", domain.Role{Name: domain.RoleAdmin})
		c.Next()
	}, h.Create)

	w := post(r, "/api/users", `{"name":"Bob","email":"bob@example.com","password":"longenough","role":"developer"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if len(create.actors) != 1 || create.actors[0].Name != domain.RoleAdmin {
		t.Errorf("actors = %+v", create.actors)
	}
}

func TestCreateRole_RendersBusinessError(t *testing.T) {
	create := &fakeCreateRole{}
	h := handler.NewRoleHandler(create, messages.Default())
	r := gin.New()
	r.POST("/api/roles", h.Create)

	w := post(r, "/api/roles", `{"name":"auditor","permissions":["list_all"]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(create.got) != 1 || create.got[0].Name != "auditor" || create.got[0].Permissions[0] != "list_all" {
		t.Errorf("request = %+v", create.got)
	}
}
