package wablas

import (
	"errors"
	"testing"

	"github.com/herbamart/network-service/internal/domain"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"081234567890", "6281234567890"},
		{"+6281234567890", "6281234567890"},
		{"6281234567890", "6281234567890"},
		{"0812-3456-7890", "6281234567890"},
		{"+62 812 3456 7890", "6281234567890"},
		{" 081234567890 ", "6281234567890"},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		if err != nil {
			t.Fatalf("NormalizePhone(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhoneRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"12345",
		"+14155550123",
		"08123",
		"62812345678901234",
		"08abc4567890",
	} {
		_, err := NormalizePhone(in)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("NormalizePhone(%q): want validation error, got %v", in, err)
		}
	}
}
