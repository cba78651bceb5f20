package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRequestShape(t *testing.T) {
	var (
		gotPath  string
		gotQuery string
		gotAuth  string
		gotBody  appendRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"updates": map[string]any{"updatedRange": "Confirmadas!A7:O7", "updatedRows": 1},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "tok-123")
	err := c.Append(context.Background(), "spreadsheet-id", "Confirmadas", []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, "/v4/spreadsheets/spreadsheet-id/values/Confirmadas:append", gotPath)
	assert.Contains(t, gotQuery, "valueInputOption=USER_ENTERED")
	assert.Contains(t, gotQuery, "insertDataOption=INSERT_ROWS")
	assert.Equal(t, "Bearer tok-123", gotAuth)
	require.Len(t, gotBody.Values, 1)
	assert.Equal(t, []string{"a", "b"}, gotBody.Values[0])
}

func TestAppendNonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":"PERMISSION_DENIED"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "tok")
	err := c.Append(context.Background(), "id", "Confirmadas", []string{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestAppendWithoutTokenOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "")
	require.NoError(t, c.Append(context.Background(), "id", "Hoja", []string{"x"}))
	assert.Empty(t, gotAuth)
}

func TestAppendContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.Client(), srv.URL, "tok")
	assert.Error(t, c.Append(ctx, "id", "Hoja", []string{"x"}))
}
