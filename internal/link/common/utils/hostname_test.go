package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalHost(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  Example.COM  ", "example.com"},
		{"evil-site.com.", "evil-site.com"},
		{"evil-site.com...", "evil-site.com"},
		{"EVIL-SITE.com", "evil-site.com"},
		{"bücher.example", "xn--bcher-kva.example"},
		{"127.0.0.1", "127.0.0.1"},
		{"::1", "::1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalHost(tt.in), "CanonicalHost(%q)", tt.in)
	}
}

func TestLastLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"random-shop.xyz", "xyz"},
		{"a.b.co.uk", "uk"},
		{"localhost", "localhost"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LastLabel(tt.in), "LastLabel(%q)", tt.in)
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"www.example.com", "example.com"},
		{"a.b.example.co.uk", "example.co.uk"},
		{"EXAMPLE.com.", "example.com"},
		{"com", "com"},
		{"10.0.0.1", "10.0.0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RegistrableDomain(tt.in), "RegistrableDomain(%q)", tt.in)
	}
}
