package resource

import (
	"PraxisAdminClient/internal/adapter"
	"PraxisAdminClient/internal/config"
	"PraxisAdminClient/internal/helper"
	"PraxisAdminClient/internal/model"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	slogchi "github.com/samber/slog-chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usersClient = Client[model.UserDTO, model.UserUpsertRequest, uuid.UUID, model.UserFilter]

func newTestRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(slogchi.New(slog.Default()))
	return r
}

func newUsersClient(t *testing.T, handler http.Handler) *usersClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.AppConfig{
		APIBaseURL:         server.URL,
		APIToken:           "test-token",
		HTTPTimeoutSeconds: 5,
	}
	rest := adapter.NewRestAdapter(cfg, config.NewHTTPClient(cfg))

	return NewClient[model.UserDTO, model.UserUpsertRequest, uuid.UUID, model.UserFilter](rest, "/users", config.NewValidator())
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestClientPage(t *testing.T) {
	var receivedQuery url.Values
	var receivedAuth string

	r := newTestRouter()
	r.Get("/users", func(w http.ResponseWriter, req *http.Request) {
		receivedQuery = req.URL.Query()
		receivedAuth = req.Header.Get("Authorization")

		size := 2
		writeJSON(w, http.StatusOK, model.Page[model.UserDTO]{
			Content: []model.UserDTO{
				{ID: uuid.New(), Email: "a@praxis.test"},
				{ID: uuid.New(), Email: "b@praxis.test"},
			},
			Page: model.PageInfo{Size: size, Number: 0, TotalPages: 3, TotalElements: 5},
		})
	})
	client := newUsersClient(t, r)

	t.Run("Success - Parameters And Envelope", func(t *testing.T) {
		page, err := client.Page(context.Background(), model.PageQuery[model.UserFilter]{
			Search: "pra",
			Page:   model.IntPtr(0),
			Size:   model.IntPtr(2),
			Sorts:  []model.Sort{{Property: "email", Direction: "asc"}},
		})

		require.NoError(t, err)
		assert.LessOrEqual(t, len(page.Content), page.Page.Size)
		assert.Equal(t, 5, page.Page.TotalElements)

		assert.Equal(t, "pra", receivedQuery.Get("search"))
		assert.Equal(t, "0", receivedQuery.Get("page"))
		assert.Equal(t, "2", receivedQuery.Get("size"))
		assert.Equal(t, []string{"email,asc"}, receivedQuery["sort"])
		assert.Equal(t, "Bearer test-token", receivedAuth)
	})

	t.Run("Invalid Query - Rejected Before Any Request", func(t *testing.T) {
		receivedQuery = nil

		_, err := client.Page(context.Background(), model.PageQuery[model.UserFilter]{
			Page: model.IntPtr(-1),
		})

		assert.True(t, helper.IsValidation(err))
		assert.Nil(t, receivedQuery)

		_, err = client.Page(context.Background(), model.PageQuery[model.UserFilter]{
			Size: model.IntPtr(0),
		})
		assert.True(t, helper.IsValidation(err))
	})
}

func TestClientFind(t *testing.T) {
	known := uuid.New()

	r := newTestRouter()
	r.Get("/users/many", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, known.String()+","+uuid.Nil.String(), req.URL.Query().Get("ids"))
		writeJSON(w, http.StatusOK, []model.UserDTO{{ID: known}})
	})
	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != known.String() {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
			return
		}
		writeJSON(w, http.StatusOK, model.UserDTO{ID: known, Email: "a@praxis.test"})
	})
	client := newUsersClient(t, r)

	t.Run("Success", func(t *testing.T) {
		user, err := client.Find(context.Background(), known)
		require.NoError(t, err)
		assert.Equal(t, known, user.ID)
	})

	t.Run("Unknown Id - NotFound Propagates", func(t *testing.T) {
		_, err := client.Find(context.Background(), uuid.New())
		assert.True(t, helper.IsNotFound(err))
	})

	t.Run("FindMany Joins Ids", func(t *testing.T) {
		users, err := client.FindMany(context.Background(), []uuid.UUID{known, uuid.Nil})
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestClientLifecycle(t *testing.T) {
	store := map[uuid.UUID]model.UserDTO{}

	r := newTestRouter()
	r.Post("/users", func(w http.ResponseWriter, req *http.Request) {
		var dto model.UserUpsertRequest
		_ = json.NewDecoder(req.Body).Decode(&dto)

		// the server enriches the representation; clients must take it wholesale
		user := model.UserDTO{ID: uuid.New(), Email: dto.Email, FullName: dto.FullName, Role: dto.Role, CreatedAt: "2026-09-01T10:00:00Z"}
		store[user.ID] = user
		writeJSON(w, http.StatusCreated, user)
	})
	r.Put("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := uuid.MustParse(chi.URLParam(req, "id"))
		user, ok := store[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
			return
		}
		var dto model.UserUpsertRequest
		_ = json.NewDecoder(req.Body).Decode(&dto)
		user.Email = dto.Email
		user.FullName = dto.FullName
		user.Role = dto.Role
		store[id] = user
		writeJSON(w, http.StatusOK, user)
	})
	r.Delete("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := uuid.MustParse(chi.URLParam(req, "id"))
		if _, ok := store[id]; !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
			return
		}
		delete(store, id)
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/users/count", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, len(store))
	})
	r.Get("/users/exist/{id}", func(w http.ResponseWriter, req *http.Request) {
		id := uuid.MustParse(chi.URLParam(req, "id"))
		_, ok := store[id]
		writeJSON(w, http.StatusOK, ok)
	})
	client := newUsersClient(t, r)

	dto := model.UserUpsertRequest{Email: "neu@praxis.test", FullName: "Neu Nutzer", Role: "staff"}

	t.Run("Create Returns Server Representation", func(t *testing.T) {
		created, err := client.Create(context.Background(), dto)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, "2026-09-01T10:00:00Z", created.CreatedAt)

		count, err := client.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		t.Run("Update Replaces Wholesale", func(t *testing.T) {
			dto.FullName = "Umbenannt"
			updated, err := client.Update(context.Background(), created.ID, dto)
			require.NoError(t, err)
			assert.Equal(t, "Umbenannt", updated.FullName)
		})

		t.Run("Delete Then Exist Is False", func(t *testing.T) {
			require.NoError(t, client.Delete(context.Background(), created.ID))

			exists, err := client.Exist(context.Background(), created.ID)
			require.NoError(t, err)
			assert.False(t, exists)
		})

		t.Run("Repeated Delete Is A Typed NotFound", func(t *testing.T) {
			err := client.Delete(context.Background(), created.ID)
			assert.True(t, helper.IsNotFound(err))
		})
	})

	t.Run("Invalid Dto - Rejected Before Any Request", func(t *testing.T) {
		_, err := client.Create(context.Background(), model.UserUpsertRequest{Email: "not-an-email"})
		assert.True(t, helper.IsValidation(err))
	})
}

func TestClientExport(t *testing.T) {
	r := newTestRouter()
	r.Get("/users/export", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, []string{"email", "fullName"}, req.URL.Query()["fields"])
		assert.Equal(t, []string{"E-Mail", "Name"}, req.URL.Query()["titles"])

		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("E-Mail;Name\n"))
	})
	client := newUsersClient(t, r)

	t.Run("Success", func(t *testing.T) {
		blob, err := client.Export(context.Background(), model.PageQuery[model.UserFilter]{}, model.ExportScheme{
			Fields: []string{"email", "fullName"},
			Titles: []string{"E-Mail", "Name"},
		})
		require.NoError(t, err)
		assert.Equal(t, []byte("E-Mail;Name\n"), blob)
	})

	t.Run("Mismatched Scheme Is Rejected", func(t *testing.T) {
		_, err := client.Export(context.Background(), model.PageQuery[model.UserFilter]{}, model.ExportScheme{
			Fields: []string{"email", "fullName"},
			Titles: []string{"E-Mail"},
		})
		assert.True(t, helper.IsValidation(err))
	})
}
