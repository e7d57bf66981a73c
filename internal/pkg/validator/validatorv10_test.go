package validator

import "testing"

type sampleInput struct {
	Mobile string `validate:"required,mobile"`
	OTP    string `validate:"required,otp"`
	Email  string `validate:"omitempty,email"`
}

func newValidator(t *testing.T) Validator {
	t.Helper()

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	return v
}

func TestValidateAccepts(t *testing.T) {
	v := newValidator(t)

	if err := v.Validate(sampleInput{Mobile: "9876543210", OTP: "123456"}); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidateRejects(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name string
		in   sampleInput
	}{
		{"short mobile", sampleInput{Mobile: "12345", OTP: "123456"}},
		{"alpha mobile", sampleInput{Mobile: "98765abcde", OTP: "123456"}},
		{"short otp", sampleInput{Mobile: "9876543210", OTP: "123"}},
		{"bad email", sampleInput{Mobile: "9876543210", OTP: "123456", Email: "nope"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := v.Validate(tc.in); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
