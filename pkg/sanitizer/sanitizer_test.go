package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"leading and trailing", "  Asha Rao  ", "Asha Rao"},
		{"internal runs collapse", "Asha   \t Rao", "Asha Rao"},
		{"already normalized", "Asha Rao", "Asha Rao"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTrimAndNormalize_Idempotent(t *testing.T) {
	input := "  a   b  c "
	once := TrimAndNormalize(input)
	twice := TrimAndNormalize(once)
	if once != twice {
		t.Errorf("not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" Asha@Example.COM "); got != "asha@example.com" {
		t.Errorf("NormalizeEmail = %q, want asha@example.com", got)
	}
}

func TestNormalizePromoCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"save10", "SAVE10"},
		{" Save10 ", "SAVE10"},
		{"SAVE10", "SAVE10"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePromoCode(tt.input); got != tt.expected {
			t.Errorf("NormalizePromoCode(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"indian mobile without prefix", "9876543210", "+919876543210"},
		{"indian mobile with prefix", "+91 98765 43210", "+919876543210"},
		{"us number with prefix", "+1 415 555 2671", "+14155552671"},
		{"garbage", "not-a-phone", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.expected {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
