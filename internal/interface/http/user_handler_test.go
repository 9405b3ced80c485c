package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/yudistiraa/signup-api/internal/application"
	"github.com/yudistiraa/signup-api/internal/infrastructure/memory"
	handlers "github.com/yudistiraa/signup-api/internal/interface/http"
	"github.com/yudistiraa/signup-api/internal/router"
	usermodule "github.com/yudistiraa/signup-api/internal/router/modules"
	"github.com/yudistiraa/signup-api/pkg/helpers"
	"github.com/yudistiraa/signup-api/pkg/mailer"
)

type stubMailer struct {
	sendErr error
	sent    int
}

func (m *stubMailer) SendActivation(context.Context, string, string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent++
	return nil
}

var _ mailer.Mailer = (*stubMailer)(nil)

func newTestServer(repo *memory.UserRepository, m mailer.Mailer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := userapp.NewService(repo, m, helpers.UUIDTokenGenerator{}, nil, nil)
	v := userapp.NewRegistrationValidator(repo)
	h := handlers.NewUserHandler(svc, v, nil)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(usermodule.New(h))
	reg.RegisterAll()
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

const validUserBody = `{"username":"user1","email":"user1@gmail.com","password":"P4ssword"}`

func TestRegisterEndpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("returns 200 and User Created for a valid signup", func(t *testing.T) {
		repo := memory.NewUserRepository()
		rec := postJSON(t, newTestServer(repo, &stubMailer{}), "/api/1.0/users", validUserBody)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"User Created"}`, rec.Body.String())
	})

	t.Run("saves the user inactive with a hashed password", func(t *testing.T) {
		repo := memory.NewUserRepository()
		postJSON(t, newTestServer(repo, &stubMailer{}), "/api/1.0/users", validUserBody)

		require.Equal(t, 1, repo.Count())
		u, err := repo.GetByEmail(ctx, "user1@gmail.com")
		require.NoError(t, err)
		assert.Equal(t, "user1", u.Username)
		assert.True(t, u.Inactive)
		assert.NotEmpty(t, u.ActivationToken)
		assert.NotEqual(t, "P4ssword", u.Password)
	})

	t.Run("ignores a caller-supplied inactive flag", func(t *testing.T) {
		repo := memory.NewUserRepository()
		body := `{"username":"user1","email":"user1@gmail.com","password":"P4ssword","inactive":false}`
		rec := postJSON(t, newTestServer(repo, &stubMailer{}), "/api/1.0/users", body)

		require.Equal(t, http.StatusOK, rec.Code)
		u, err := repo.GetByEmail(ctx, "user1@gmail.com")
		require.NoError(t, err)
		assert.True(t, u.Inactive)
	})

	t.Run("returns field messages for invalid input", func(t *testing.T) {
		cases := []struct {
			name    string
			body    string
			field   string
			message string
		}{
			{
				name:    "null username",
				body:    `{"username":null,"email":"user1@gmail.com","password":"P4ssword"}`,
				field:   "username",
				message: "Username cannot be null",
			},
			{
				name:    "short username",
				body:    `{"username":"usr","email":"user1@gmail.com","password":"P4ssword"}`,
				field:   "username",
				message: "Must have min 4 and max 32 characters",
			},
			{
				name:    "null email",
				body:    `{"username":"user1","email":null,"password":"P4ssword"}`,
				field:   "email",
				message: "Email cannot be null",
			},
			{
				name:    "invalid email",
				body:    `{"username":"user1","email":"user1.gmail.com","password":"P4ssword"}`,
				field:   "email",
				message: "Email is not valid",
			},
			{
				name:    "null password",
				body:    `{"username":"user1","email":"user1@gmail.com","password":null}`,
				field:   "password",
				message: "Password cannot be null",
			},
			{
				name:    "short password",
				body:    `{"username":"user1","email":"user1@gmail.com","password":"P4ssw"}`,
				field:   "password",
				message: "Password must be at least 6 characters",
			},
			{
				name:    "weak password",
				body:    `{"username":"user1","email":"user1@gmail.com","password":"alllowercase"}`,
				field:   "password",
				message: "Password must have at least one uppercase, 1 lowercase letter and one number",
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				repo := memory.NewUserRepository()
				rec := postJSON(t, newTestServer(repo, &stubMailer{}), "/api/1.0/users", tc.body)

				require.Equal(t, http.StatusBadRequest, rec.Code)

				var parsed struct {
					ValidationErrors map[string]string `json:"validationErrors"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
				require.Len(t, parsed.ValidationErrors, 1)
				assert.Equal(t, tc.message, parsed.ValidationErrors[tc.field])
				assert.Zero(t, repo.Count())
			})
		}
	})

	t.Run("reports username before email when both are null", func(t *testing.T) {
		repo := memory.NewUserRepository()
		body := `{"username":null,"email":null,"password":"P4ssword"}`
		rec := postJSON(t, newTestServer(repo, &stubMailer{}), "/api/1.0/users", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		raw := rec.Body.String()
		assert.NotContains(t, raw, `"password"`)
		usernameAt := strings.Index(raw, `"username"`)
		emailAt := strings.Index(raw, `"email"`)
		require.GreaterOrEqual(t, usernameAt, 0)
		require.GreaterOrEqual(t, emailAt, 0)
		assert.Less(t, usernameAt, emailAt)
	})

	t.Run("second signup with the same email gets Email in use", func(t *testing.T) {
		repo := memory.NewUserRepository()
		engine := newTestServer(repo, &stubMailer{})

		first := postJSON(t, engine, "/api/1.0/users", validUserBody)
		require.Equal(t, http.StatusOK, first.Code)

		second := postJSON(t, engine, "/api/1.0/users", validUserBody)
		require.Equal(t, http.StatusBadRequest, second.Code)

		var parsed struct {
			ValidationErrors map[string]string `json:"validationErrors"`
		}
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &parsed))
		assert.Equal(t, "Email in use", parsed.ValidationErrors["email"])
		assert.Equal(t, 1, repo.Count())
	})

	t.Run("returns 502 and keeps storage clean when delivery fails", func(t *testing.T) {
		repo := memory.NewUserRepository()
		engine := newTestServer(repo, &stubMailer{sendErr: errors.New("mailgun 500")})

		rec := postJSON(t, engine, "/api/1.0/users", validUserBody)

		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.JSONEq(t, `{"message":"Failed to deliver email"}`, rec.Body.String())
		assert.Zero(t, repo.Count())
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		repo := memory.NewUserRepository()
		rec := postJSON(t, newTestServer(repo, &stubMailer{}), "/api/1.0/users", `{"username":`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestActivateEndpoint(t *testing.T) {
	ctx := context.Background()

	registeredToken := func(t *testing.T, repo *memory.UserRepository, engine *gin.Engine) string {
		t.Helper()
		rec := postJSON(t, engine, "/api/1.0/users", validUserBody)
		require.Equal(t, http.StatusOK, rec.Code)
		u, err := repo.GetByEmail(ctx, "user1@gmail.com")
		require.NoError(t, err)
		return u.ActivationToken
	}

	t.Run("correct token activates the account", func(t *testing.T) {
		repo := memory.NewUserRepository()
		engine := newTestServer(repo, &stubMailer{})
		token := registeredToken(t, repo, engine)

		rec := postJSON(t, engine, "/api/1.0/users/token/"+token, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Success!"}`, rec.Body.String())

		u, err := repo.GetByEmail(ctx, "user1@gmail.com")
		require.NoError(t, err)
		assert.False(t, u.Inactive)
		assert.Empty(t, u.ActivationToken)
	})

	t.Run("a token cannot be redeemed twice", func(t *testing.T) {
		repo := memory.NewUserRepository()
		engine := newTestServer(repo, &stubMailer{})
		token := registeredToken(t, repo, engine)

		first := postJSON(t, engine, "/api/1.0/users/token/"+token, "")
		require.Equal(t, http.StatusOK, first.Code)

		second := postJSON(t, engine, "/api/1.0/users/token/"+token, "")
		require.Equal(t, http.StatusBadRequest, second.Code)
		assert.JSONEq(t, `{"message":"Account is either active or token is invalid"}`, second.Body.String())
	})

	t.Run("unknown token gets the uniform failure body", func(t *testing.T) {
		repo := memory.NewUserRepository()
		engine := newTestServer(repo, &stubMailer{})
		registeredToken(t, repo, engine)

		rec := postJSON(t, engine, "/api/1.0/users/token/this-token-does-not-exist", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"Account is either active or token is invalid"}`, rec.Body.String())

		u, err := repo.GetByEmail(ctx, "user1@gmail.com")
		require.NoError(t, err)
		assert.True(t, u.Inactive)
	})
}
