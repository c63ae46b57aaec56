package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-order-backend/internal/handler"
	"github.com/iliyamo/restaurant-order-backend/internal/middleware"
	"github.com/iliyamo/restaurant-order-backend/internal/model"
	"github.com/iliyamo/restaurant-order-backend/internal/repository"
)

// fakeUserStore keeps users in memory keyed by email.
type fakeUserStore struct {
	users  map[string]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, email, name, passwordHash string) (int64, error) {
	if _, ok := f.users[email]; ok {
		return 0, repository.ErrEmailExists
	}
	f.nextID++
	f.users[email] = &model.User{ID: f.nextID, Email: email, Name: name, PasswordHash: passwordHash}
	return f.nextID, nil
}

func (f *fakeUserStore) List(context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) RoleByEmail(_ context.Context, email string) (string, error) {
	u, ok := f.users[email]
	if !ok {
		return "", repository.ErrNotFound
	}
	return u.Role, nil
}

func (f *fakeUserStore) PromoteToAdmin(_ context.Context, id int64) error {
	for _, u := range f.users {
		if u.ID == id {
			u.Role = model.RoleAdmin
			return nil
		}
	}
	return repository.ErrNotFound
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister_DuplicateIsSoftSuccess(t *testing.T) {
	store := newFakeUserStore()
	h := handler.NewUserHandler(store, 4)
	e := echo.New()

	c, rec := postJSON(e, "/v1/users", `{"email":"u@x.com","name":"U"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, store.users, 1)

	c, rec = postJSON(e, "/v1/users", `{"email":"u@x.com","name":"U"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
	assert.Len(t, store.users, 1, "no second insert on duplicate registration")
}

func TestRegister_HashesOptionalPassword(t *testing.T) {
	store := newFakeUserStore()
	h := handler.NewUserHandler(store, 4)
	e := echo.New()

	c, rec := postJSON(e, "/v1/users", `{"email":"u@x.com","password":"s3cret"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	u := store.users["u@x.com"]
	require.NotNil(t, u)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "s3cret", u.PasswordHash, "password is never stored in the clear")
}

func TestIsAdmin_OtherUsersEmailAnswersFalse(t *testing.T) {
	store := newFakeUserStore()
	_, err := store.Create(context.Background(), "boss@x.com", "Boss", "")
	require.NoError(t, err)
	require.NoError(t, store.PromoteToAdmin(context.Background(), 1))

	h := handler.NewUserHandler(store, 4)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/users/admin/:email")
	c.SetParamNames("email")
	c.SetParamValues("boss@x.com")
	c.Set(middleware.ContextEmailKey, "someone-else@x.com")

	require.NoError(t, h.IsAdmin(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"admin":false`)
}

func TestIsAdmin_OwnEmailReflectsRole(t *testing.T) {
	store := newFakeUserStore()
	_, err := store.Create(context.Background(), "boss@x.com", "Boss", "")
	require.NoError(t, err)
	require.NoError(t, store.PromoteToAdmin(context.Background(), 1))

	h := handler.NewUserHandler(store, 4)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/users/admin/:email")
	c.SetParamNames("email")
	c.SetParamValues("boss@x.com")
	c.Set(middleware.ContextEmailKey, "boss@x.com")

	require.NoError(t, h.IsAdmin(c))
	assert.Contains(t, rec.Body.String(), `"admin":true`)
}
