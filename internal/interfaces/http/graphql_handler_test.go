package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-api/internal/application/auth"
	"github.com/jhoicas/storefront-api/internal/application/ports"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/storefront-api/internal/interfaces/graph"
	apphttp "github.com/jhoicas/storefront-api/internal/interfaces/http"
	"github.com/jhoicas/storefront-api/pkg/hash"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

type nopMailer struct{}

func (nopMailer) Send(context.Context, ports.Email) error { return nil }

type testServer struct {
	app *fiber.App
	db  *sqlite.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	log := logger.Nop()
	authUC := auth.NewAuthUseCase(db.Users(), hash.NewBcrypt(4), nopMailer{},
		auth.SessionConfig{Secret: testSecret, Issuer: "test"},
		auth.ResetConfig{FrontendURL: "http://localhost:7777", From: "shop@test"}, log)
	itemUC := usecase.NewItemUseCase(db.Items(), db.Users())
	cartUC := usecase.NewCartUseCase(db.Cart(), db.Items(), db.Users())

	schema, err := graph.NewSchema(graph.NewResolver(authUC, itemUC, cartUC, log))
	require.NoError(t, err)

	app := apphttp.NewApp(apphttp.RouterDeps{
		Schema:        schema,
		Log:           log,
		SessionSecret: testSecret,
		FrontendURL:   "http://localhost:7777",
		AppName:       "storefront-test",
	})
	return &testServer{app: app, db: db}
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

// do ejecuta una operación; cookie puede ser nil.
func (s *testServer) do(t *testing.T, cookie *http.Cookie, query string, vars map[string]interface{}) (*gqlResponse, *http.Response) {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": vars})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out gqlResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return &out, resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func errorCode(t *testing.T, r *gqlResponse) string {
	t.Helper()
	require.NotEmpty(t, r.Errors)
	code, _ := r.Errors[0].Extensions["code"].(string)
	return code
}

const signupMutation = `mutation($email: String!, $password: String!, $name: String!) {
  signup(email: $email, password: $password, name: $name) { id email permissions }
}`

func (s *testServer) signup(t *testing.T, email string) (string, *http.Cookie) {
	t.Helper()
	r, resp := s.do(t, nil, signupMutation, map[string]interface{}{"email": email, "password": "pw123456", "name": "Test"})
	require.Empty(t, r.Errors)
	var u struct{ ID string }
	require.NoError(t, json.Unmarshal(r.Data["signup"], &u))
	c := sessionCookie(resp)
	require.NotNil(t, c)
	return u.ID, c
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignupSigninMe_EndToEnd(t *testing.T) {
	s := newTestServer(t)

	r, resp := s.do(t, nil, signupMutation, map[string]interface{}{"email": "a@b.com", "password": "pw123456", "name": "Ana"})
	require.Empty(t, r.Errors)
	var created struct {
		ID          string
		Email       string
		Permissions []string
	}
	require.NoError(t, json.Unmarshal(r.Data["signup"], &created))
	assert.Equal(t, "a@b.com", created.Email)
	assert.Equal(t, []string{"USER"}, created.Permissions)

	c := sessionCookie(resp)
	require.NotNil(t, c, "signup debe dejar la cookie de sesión")
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 31536000, c.MaxAge)

	r, resp = s.do(t, nil, `mutation { signin(email: "A@B.com", password: "pw123456") { id } }`, nil)
	require.Empty(t, r.Errors)
	signinCookie := sessionCookie(resp)
	require.NotNil(t, signinCookie)

	r, _ = s.do(t, signinCookie, `{ me { id email } }`, nil)
	require.Empty(t, r.Errors)
	var me struct{ ID, Email string }
	require.NoError(t, json.Unmarshal(r.Data["me"], &me))
	assert.Equal(t, created.ID, me.ID)
}

func TestMe_SinSesionEsNull(t *testing.T) {
	s := newTestServer(t)
	r, _ := s.do(t, nil, `{ me { id } }`, nil)
	require.Empty(t, r.Errors)
	assert.Equal(t, "null", string(r.Data["me"]))

	r, _ = s.do(t, &http.Cookie{Name: "token", Value: "basura"}, `{ me { id } }`, nil)
	require.Empty(t, r.Errors)
	assert.Equal(t, "null", string(r.Data["me"]))
}

func TestSignin_Errores(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "a@b.com")

	r, _ := s.do(t, nil, `mutation { signin(email: "x@b.com", password: "pw123456") { id } }`, nil)
	assert.Equal(t, graph.CodeUserNotFound, errorCode(t, r))

	r, _ = s.do(t, nil, `mutation { signin(email: "a@b.com", password: "mal") { id } }`, nil)
	assert.Equal(t, graph.CodeInvalidPassword, errorCode(t, r))
	assert.Equal(t, "Invalid password!", r.Errors[0].Message)
}

func TestSignout_BorraCookie(t *testing.T) {
	s := newTestServer(t)
	_, c := s.signup(t, "a@b.com")

	r, resp := s.do(t, c, `mutation { signout { message } }`, nil)
	require.Empty(t, r.Errors)
	cleared := sessionCookie(resp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestUsers_SoloAdmin(t *testing.T) {
	s := newTestServer(t)
	id, c := s.signup(t, "a@b.com")

	r, _ := s.do(t, nil, `{ users { id } }`, nil)
	assert.Equal(t, graph.CodeNotAuthenticated, errorCode(t, r))

	r, _ = s.do(t, c, `{ users { id } }`, nil)
	assert.Equal(t, graph.CodePermissionDenied, errorCode(t, r))

	require.NoError(t, s.db.Users().UpdatePermissions(context.Background(), id,
		[]entity.Permission{entity.PermissionUser, entity.PermissionAdmin}))
	r, _ = s.do(t, c, `{ users { id permissions } }`, nil)
	require.Empty(t, r.Errors)
	var users []struct{ ID string }
	require.NoError(t, json.Unmarshal(r.Data["users"], &users))
	assert.Len(t, users, 1)
}

func TestItemsYCarrito(t *testing.T) {
	s := newTestServer(t)
	_, c := s.signup(t, "a@b.com")

	r, _ := s.do(t, nil, `mutation { createItem(title: "Hat", description: "d", price: 1250) { id } }`, nil)
	assert.Equal(t, graph.CodeNotAuthenticated, errorCode(t, r))

	r, _ = s.do(t, c, `mutation { createItem(title: "Hat", description: "Red hat", price: 1250) { id price formattedPrice user { email } } }`, nil)
	require.Empty(t, r.Errors)
	var item struct {
		ID             string
		Price          int
		FormattedPrice string
		User           struct{ Email string }
	}
	require.NoError(t, json.Unmarshal(r.Data["createItem"], &item))
	assert.Equal(t, 1250, item.Price)
	assert.Equal(t, "$12.50", item.FormattedPrice)
	assert.Equal(t, "a@b.com", item.User.Email)

	r, _ = s.do(t, nil, `{ items(where: {title_contains: "ha"}, orderBy: price_DESC, first: 10) { id } itemsConnection { aggregate { count } } }`, nil)
	require.Empty(t, r.Errors)
	assert.JSONEq(t, `{"aggregate":{"count":1}}`, string(r.Data["itemsConnection"]))

	vars := map[string]interface{}{"id": item.ID}
	addToCart := `mutation($id: ID!) { addToCart(id: $id) { id quantity } }`
	r, _ = s.do(t, nil, addToCart, vars)
	assert.Equal(t, graph.CodeNotAuthenticated, errorCode(t, r))

	s.do(t, c, addToCart, vars)
	r, _ = s.do(t, c, addToCart, vars)
	require.Empty(t, r.Errors)
	var line struct {
		ID       string
		Quantity int
	}
	require.NoError(t, json.Unmarshal(r.Data["addToCart"], &line))
	assert.Equal(t, 2, line.Quantity)

	r, _ = s.do(t, c, `{ me { cart { quantity item { title } } } }`, nil)
	require.Empty(t, r.Errors)
	assert.JSONEq(t, `{"cart":[{"quantity":2,"item":{"title":"Hat"}}]}`, string(r.Data["me"]))

	r, _ = s.do(t, c, `mutation($id: ID!) { removeFromCart(id: $id) { id } }`, map[string]interface{}{"id": line.ID})
	require.Empty(t, r.Errors)

	r, _ = s.do(t, c, `mutation($id: ID!) { deleteItem(id: $id) { id } }`, vars)
	require.Empty(t, r.Errors)
	r, _ = s.do(t, nil, `query($id: ID!) { item(where: {id: $id}) { id } }`, vars)
	require.Empty(t, r.Errors)
	assert.Equal(t, "null", string(r.Data["item"]))
}

func TestDeleteItem_AjenoSinPermiso(t *testing.T) {
	s := newTestServer(t)
	_, owner := s.signup(t, "owner@b.com")
	_, other := s.signup(t, "other@b.com")

	r, _ := s.do(t, owner, `mutation { createItem(title: "Lamp", price: 100) { id } }`, nil)
	require.Empty(t, r.Errors)
	var item struct{ ID string }
	require.NoError(t, json.Unmarshal(r.Data["createItem"], &item))

	r, _ = s.do(t, other, `mutation($id: ID!) { deleteItem(id: $id) { id } }`, map[string]interface{}{"id": item.ID})
	assert.Equal(t, graph.CodePermissionDenied, errorCode(t, r))
}

func TestBodyInvalido(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestItemUser_NoExponeDatosDelDueño(t *testing.T) {
	s := newTestServer(t)
	_, owner := s.signup(t, "owner@b.com")
	_, other := s.signup(t, "other@b.com")

	r, _ := s.do(t, owner, `mutation { createItem(title: "Lamp", price: 100) { id } }`, nil)
	require.Empty(t, r.Errors)

	const q = `{ items { title user { name email permissions } } }`
	for _, c := range []*http.Cookie{nil, other} {
		r, _ = s.do(t, c, q, nil)
		require.Empty(t, r.Errors)
		assert.JSONEq(t, `[{"title":"Lamp","user":{"name":"Test","email":null,"permissions":[]}}]`, string(r.Data["items"]))
	}

	r, _ = s.do(t, owner, q, nil)
	require.Empty(t, r.Errors)
	assert.JSONEq(t, `[{"title":"Lamp","user":{"name":"Test","email":"owner@b.com","permissions":["USER"]}}]`, string(r.Data["items"]))
}

func TestSignup_PasswordLargo(t *testing.T) {
	s := newTestServer(t)
	r, resp := s.do(t, nil, signupMutation, map[string]interface{}{
		"email": "l@b.com", "password": strings.Repeat("p", 80), "name": "Largo",
	})
	assert.Equal(t, graph.CodeInvalidInput, errorCode(t, r))
	assert.Nil(t, sessionCookie(resp))
}
