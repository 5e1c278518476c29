package api

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	var req LoginRequest
	require.NoError(t, Decode(strings.NewReader(`{"email":"a@b.c","password":"x"}`), &req))
	assert.Equal(t, "a@b.c", req.Email)

	tests := []struct {
		name string
		body string
	}{
		{"empty", ``},
		{"unknown field", `{"email":"a@b.c","password":"x","admin":true}`},
		{"malformed", `{"email":`},
		{"trailing", `{"email":"a"} {"email":"b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req LoginRequest
			err := Decode(strings.NewReader(tt.body), &req)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestDecode_Messages(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"unknown field", `{"title":"x","ownerId":"someone"}`, "ownerId", "ownerId: is not a known field"},
		{"wrong type", `{"title":42}`, "title", "title: must not be a number"},
		{"malformed", `{"title":`, "", "malformed request body"},
		{"empty", ``, "", "request body is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTaskRequest
			err := DecodeBytes([]byte(tt.body), &req)

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.msg, Message(err))
			assert.NotContains(t, Message(err), "Go struct")
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("dueDate", " 2025-04-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("dueDate", "2025-04-01T10:00:00Z")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{common.NewValidationError("title", "must not be empty"), "title: must not be empty"},
		{common.ErrInvalidCredentials, "invalid credentials"},
		{fmt.Errorf("wrap: %w", common.ErrVersionConflict), "task was modified concurrently"},
		{common.ErrUserExists, "user already exists"},
		{common.ErrTokenExpired, "token expired"},
		{common.ErrInvalidToken, "unauthenticated"},
		{fmt.Errorf("x: %w", common.ErrorNotFound), "not found"},
		{errors.New("pq: relation does not exist"), "internal error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(tt.err))
	}
}
