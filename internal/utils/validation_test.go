package utils

import "testing"

func TestValidateEmail_Normalizes(t *testing.T) {
	got, err := ValidateEmail("  Applicant@Example.COM ")
	if err != nil {
		t.Fatalf("ValidateEmail() error = %v", err)
	}
	if got != "applicant@example.com" {
		t.Errorf("ValidateEmail() = %q, want applicant@example.com", got)
	}
}

func TestValidateEmail_Invalid(t *testing.T) {
	cases := []string{
		"",
		"plainaddress",
		"missing@domain",
		"double@@example.com",
		"dot@.example.com",
		"dot@example.com.",
		"dots@exa..mple.com",
	}
	for _, email := range cases {
		if _, err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) = nil error, want failure", email)
		}
	}
}

func TestValidatePhone_PhilippineMobile(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"09171234567", "+639171234567"},
		{"+639171234567", "+639171234567"},
		{"0917 123 4567", "+639171234567"},
	}
	for _, tc := range cases {
		got, err := ValidatePhone(tc.in)
		if err != nil {
			t.Errorf("ValidatePhone(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ValidatePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidatePhone_Invalid(t *testing.T) {
	for _, phone := range []string{"", "12345", "not-a-phone"} {
		if _, err := ValidatePhone(phone); err == nil {
			t.Errorf("ValidatePhone(%q) = nil error, want failure", phone)
		}
	}
}

func TestValidationResult_AddError(t *testing.T) {
	vr := NewValidationResult()
	if !vr.IsValid {
		t.Fatal("new result should be valid")
	}

	vr.AddError("email", "invalid email format")
	if vr.IsValid {
		t.Error("result still valid after AddError")
	}
	if len(vr.Errors) != 1 || vr.Errors[0].Field != "email" {
		t.Errorf("Errors = %+v, want one entry for email", vr.Errors)
	}
}
