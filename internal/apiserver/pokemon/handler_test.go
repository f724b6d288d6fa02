package pokemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex-admin/internal/apiserver/apierr"
	"pokedex-admin/internal/shared/model"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	svc, _ := newTestService(t)
	mux := http.NewServeMux()
	NewHandler(svc, nil).RegisterRoutes(mux)
	return mux
}

func do(t *testing.T, mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandler_CreateAndGet(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/v2/pokemon", `{"no":25,"name":"Pikachu"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Pokemon](t, rec)
	assert.Equal(t, "pikachu", created.Name)
	assert.Equal(t, 25, created.No)
	assert.NotEmpty(t, created.ID)

	for _, term := range []string{"25", created.ID, "pikachu"} {
		rec = do(t, mux, http.MethodGet, "/api/v2/pokemon/"+term, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, created, decode[model.Pokemon](t, rec))
	}

	rec = do(t, mux, http.MethodGet, "/api/v2/pokemon/mew", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[apierr.Response](t, rec)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Contains(t, body.Error, `"mew"`)
}

func TestHandler_CreateValidation(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed", `{"no":`},
		{"missing no", `{"name":"pikachu"}`},
		{"missing name", `{"no":25}`},
		{"zero no", `{"no":0,"name":"pikachu"}`},
		{"fractional no", `{"no":1.5,"name":"pikachu"}`},
		{"string no", `{"no":"25","name":"pikachu"}`},
		{"empty name", `{"no":25,"name":""}`},
		{"unknown field", `{"no":25,"name":"pikachu","type":"electric"}`},
		{"trailing data", `{"no":25,"name":"pikachu"} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, http.MethodPost, "/api/v2/pokemon", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_CreateConflict(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/v2/pokemon", `{"no":25,"name":"pikachu"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, mux, http.MethodPost, "/api/v2/pokemon", `{"no":26,"name":"PIKACHU"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decode[apierr.Response](t, rec)
	assert.Equal(t, `Pokemon exists in db {"name":"pikachu"}`, body.Error)
}

func TestHandler_List(t *testing.T) {
	mux := newTestMux(t)

	for i, name := range []string{"e", "c", "a", "d", "b"} {
		no := []int{5, 3, 1, 4, 2}[i]
		body, _ := json.Marshal(map[string]any{"no": no, "name": name})
		rec := do(t, mux, http.MethodPost, "/api/v2/pokemon", string(body))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, mux, http.MethodGet, "/api/v2/pokemon?limit=2&offset=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]model.Pokemon](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].No)
	assert.Equal(t, 2, list[1].No)

	rec = do(t, mux, http.MethodGet, "/api/v2/pokemon?offset=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list = decode[[]model.Pokemon](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, 4, list[0].No)

	for _, q := range []string{"limit=0", "limit=-1", "limit=x", "offset=-1", "offset=1.5"} {
		rec = do(t, mux, http.MethodGet, "/api/v2/pokemon?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestHandler_ListEmpty(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodGet, "/api/v2/pokemon", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_Update(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/v2/pokemon", `{"no":25,"name":"pikachu"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.Pokemon](t, rec)

	rec = do(t, mux, http.MethodPatch, "/api/v2/pokemon/25", `{"name":"Raichu"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.Pokemon{ID: created.ID, No: 25, Name: "raichu"}, decode[model.Pokemon](t, rec))

	rec = do(t, mux, http.MethodPatch, "/api/v2/pokemon/raichu", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "raichu", decode[model.Pokemon](t, rec).Name)

	rec = do(t, mux, http.MethodPatch, "/api/v2/pokemon/raichu", `{"no":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodPatch, "/api/v2/pokemon/mew", `{"name":"mew"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/api/v2/pokemon", `{"no":25,"name":"pikachu"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.Pokemon](t, rec)

	rec = do(t, mux, http.MethodDelete, "/api/v2/pokemon/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, mux, http.MethodDelete, "/api/v2/pokemon/"+created.ID, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodDelete, "/api/v2/pokemon/pikachu", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
