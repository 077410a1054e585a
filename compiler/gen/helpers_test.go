package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "UserInfo"},
		{"created_at", "CreatedAt"},
		{"full-admin", "FullAdmin"},
		{"already", "Already"},
		{"UserInfo", "UserInfo"},
		{"a", "A"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Pascal(tt.input))
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "userInfo"},
		{"CreatedAt", "createdAt"},
		{"Shop", "shop"},
		{"user", "user"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Camel(tt.input))
		})
	}
}

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"FullName", "full_name"},
		{"userInfo", "user_info"},
		{"already_snake", "already_snake"},
		{"Shop", "shop"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Snake(tt.input))
		})
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Created At", TitleCase("createdAt"))
	assert.Equal(t, "Full Name", TitleCase("full_name"))
	assert.Equal(t, "Admin", TitleCase("admin"))
	assert.Equal(t, "", TitleCase(""))
}

func TestSentenceCase(t *testing.T) {
	assert.Equal(t, "User create input", SentenceCase("UserCreateInput"))
	assert.Equal(t, "Role", SentenceCase("Role"))
	assert.Equal(t, "", SentenceCase(""))
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "User", last([]string{"shop", "User"}))
	assert.Equal(t, "", last(nil))
	assert.Equal(t, []string{"shop"}, parent([]string{"shop", "User"}))
	assert.Nil(t, parent(nil))
	assert.Equal(t, []string{"shop", "UserResult"}, withLast([]string{"shop", "User"}, "UserResult"))

	path := []string{"shop", "User"}
	_ = withLast(path, "Other")
	assert.Equal(t, []string{"shop", "User"}, path, "withLast must not alias its input")
}

func TestNames(t *testing.T) {
	set := Names("a", "b")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "a")
	assert.NotContains(t, set, "c")
}
