package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHasuraServer(t *testing.T, status int, response string, inspect func(r *http.Request, body map[string]any)) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if inspect != nil {
			inspect(r, body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHasuraClient_Execute(t *testing.T) {
	query := "query ($id: uuid!) { cases(where: {id: {_eq: $id}}) { name } }"

	server := newHasuraServer(t, http.StatusOK, `{"data":{"cases":[{"name":"Compartment 7"}]}}`,
		func(r *http.Request, body map[string]any) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/graphql", r.URL.Path)
			assert.Equal(t, "secret", r.Header.Get("x-hasura-admin-secret"))
			assert.Equal(t, query, body["query"])
			assert.Equal(t, map[string]any{"id": "case-1"}, body["variables"])
		})

	client := NewHasuraClient(server.URL+"/", "secret")
	result, err := client.Execute(context.Background(), query, map[string]any{"id": "case-1"})

	require.NoError(t, err)
	data, ok := result["data"].(map[string]any)
	require.True(t, ok)
	cases, ok := data["cases"].([]any)
	require.True(t, ok)
	require.Len(t, cases, 1)
	assert.Equal(t, "Compartment 7", cases[0].(map[string]any)["name"])
}

func TestHasuraClient_Execute_GraphQLErrors(t *testing.T) {
	server := newHasuraServer(t, http.StatusOK,
		`{"errors":[{"message":"field 'cases' not found in type: 'query_root'"},{"message":"second"}]}`, nil)

	client := NewHasuraClient(server.URL, "secret")
	_, err := client.Execute(context.Background(), "query { cases { id } }", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'cases' not found")
	assert.Contains(t, err.Error(), "second")
}

func TestHasuraClient_Execute_HTTPError(t *testing.T) {
	server := newHasuraServer(t, http.StatusUnauthorized, `{"error":"invalid x-hasura-admin-secret"}`, nil)

	client := NewHasuraClient(server.URL, "wrong")
	_, err := client.Execute(context.Background(), "query { cases { id } }", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
