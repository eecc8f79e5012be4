package handler

import (
	"strings"
	"testing"
)

func TestValidator_MessagesUseJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerRequest{Name: "A", Email: "not-an-email", Password: "short", Role: "admin"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"email must be a valid email",
		"password must be at least 8 characters",
		"role must be one of: doctor nutritionist yoga therapist food_partner patient",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}

	err = v.Validate(&batchMetricRequest{})
	if err == nil || !strings.Contains(err.Error(), "entries") {
		t.Fatalf("expected entries error, got %v", err)
	}
}

func TestValidator_Accepts(t *testing.T) {
	avatar := "https://cdn.example.com/a.png"
	value := 0.0
	v := NewValidator()
	if err := v.Validate(&registerRequest{Name: "A", Email: "a@example.com", Password: "secret123", Role: "yoga", Avatar: &avatar}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Validate(&metricRequest{Kind: "steps", Value: &value}); err != nil {
		t.Fatalf("zero is a valid value: %v", err)
	}
}

func TestValidator_AvatarMustBeHTTP(t *testing.T) {
	v := NewValidator()
	for _, avatar := range []string{"javascript:alert(1)", "data:text/html;base64,PHNjcmlwdD4=", "ftp://example.com/a.png", "/a.png"} {
		a := avatar
		err := v.Validate(&registerRequest{Name: "A", Email: "a@example.com", Password: "secret123", Role: "yoga", Avatar: &a})
		if err == nil || !strings.Contains(err.Error(), "avatar must be an http or https URL") {
			t.Fatalf("avatar %q: expected http url error, got %v", avatar, err)
		}
	}
}
