package strcase

import "testing"

func TestSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Email", "email"},
		{"FullName", "full_name"},
		{"UserID", "user_id"},
		{"HTTPStatus", "http_status"},
		{"Code2FA", "code2_fa"},
		{"already_snake", "already_snake"},
	}

	for _, tc := range tests {
		if got := Snake(tc.in); got != tc.want {
			t.Errorf("Snake(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
