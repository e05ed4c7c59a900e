package validator

import (
	"errors"
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidEmployeeID(t *testing.T) {
	valid := []string{"E1", "EMP-0001", "abc123"}
	invalid := []string{"", "E 1", "E_1", "ABCDEFGHIJKLMNOPQRSTU"}
	for _, id := range valid {
		if !IsValidEmployeeID(id) {
			t.Errorf("IsValidEmployeeID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidEmployeeID(id) {
			t.Errorf("IsValidEmployeeID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	start, err := ParseDate("2025-01-10")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	end, err := ParseDate("2025-01-05")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !start.After(end) {
		t.Errorf("%s.After(%s) = false, want true", start, end)
	}
	if start.Before(end) {
		t.Errorf("%s.Before(%s) = true, want false", start, end)
	}
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	got := Today(time.Date(2025, 1, 2, 3, 0, 0, 0, loc))
	if got != "2025-01-01" {
		t.Errorf("Today() = %q, want %q", got, "2025-01-01")
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
	if errs.First() != "invalid" {
		t.Errorf("ValidationErrors.First() = %q, want %q", errs.First(), "invalid")
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

type structForm struct {
	Name  string `json:"full_name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

func TestStruct(t *testing.T) {
	if err := Struct(structForm{Name: "Ann", Email: "ann@example.com"}); err != nil {
		t.Fatalf("Struct() error = %v, want nil", err)
	}

	err := Struct(structForm{Name: "Ann"})
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct() error = %v, want ValidationErrors", err)
	}
	if len(errs) != 1 || errs[0].Field != "email" {
		t.Fatalf("Struct() errs = %+v, want single email error", errs)
	}
	if errs[0].Message != "email is required" {
		t.Errorf("Struct() message = %q, want %q", errs[0].Message, "email is required")
	}
}
