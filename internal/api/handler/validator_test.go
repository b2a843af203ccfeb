package handler

import (
	"strings"
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{Email: "nope", Password: "123"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"name is required",
		"email must be a valid email",
		"password must be at least 6 characters long",
		"answer is required",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q does not contain %q", msg, want)
		}
	}

	neg := int64(-1)
	if err := v.Validate(&updateOrderStatusRequest{Status: "Shipped", Version: &neg}); err == nil || !strings.Contains(err.Error(), "version must not be less than 0") {
		t.Fatalf("unexpected version error: %v", err)
	}
	if err := v.Validate(&updateOrderStatusRequest{Status: "Shipped"}); err != nil {
		t.Fatalf("version must be optional: %v", err)
	}
}
