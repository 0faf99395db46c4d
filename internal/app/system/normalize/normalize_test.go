package normalize

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  User@Example.Com  ", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Email(tt.input)
			if got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"John Doe", "John Doe"},
		{"  John Doe  ", "John Doe"},
		{"", ""},
		{"UPPERCASE NAME", "UPPERCASE NAME"}, // Name preserves case
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Name(tt.input)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRole(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"student", "student"},
		{"FACULTY", "faculty"},
		{"  Student  ", "student"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Role(tt.input)
			if got != tt.want {
				t.Errorf("Role(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStudentType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ug", "ug"},
		{"PG", "pg"},
		{" Masters ", "masters"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := StudentType(tt.input)
			if got != tt.want {
				t.Errorf("StudentType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegistrationNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"21bce1234", "21BCE1234"},
		{" 21BCE1234 ", "21BCE1234"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := RegistrationNumber(tt.input)
			if got != tt.want {
				t.Errorf("RegistrationNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
