package service

import (
	"errors"
	"testing"

	"github.com/bookstore-next/internal/config"
)

func TestValidatePasswordEmptyPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "anything"); err != nil {
		t.Fatalf("empty policy should accept any password, got %v", err)
	}
}

func TestValidatePasswordRules(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "Aa1!", true},
		{"no upper", "lowercase1!", true},
		{"no lower", "UPPERCASE1!", true},
		{"no number", "NoDigits!!", true},
		{"no special", "NoSpecial11", true},
		{"valid", "G00d.Enough", false},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.wantErr {
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("%s: expected ErrWeakPassword, got %v", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: expected valid password, got %v", tc.name, err)
		}
	}
}
