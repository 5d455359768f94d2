package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and getters", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 100, RoleAdmin)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, uint(100), id)
		assert.Equal(t, RoleAdmin, GetUserRoleFromContext(ctx))
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, "", GetUserRoleFromContext(context.Background()))
	})
}

func TestToUint(t *testing.T) {
	tests := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{"42", 42, false},
		{" 7 ", 7, false},
		{"", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := ToUint(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestPointers(t *testing.T) {
	assert.Equal(t, "", PtrString(nil))
	assert.Equal(t, "x", PtrString(StrPtr("x")))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "gateway unavailable", http.StatusBadGateway)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "gateway unavailable", body["error"])
}
