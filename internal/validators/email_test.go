package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx  map[string][]*net.MX
	ips map[string][]net.IPAddr
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if mx, ok := f.mx[name]; ok {
		return mx, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if ips, ok := f.ips[host]; ok {
		return ips, nil
	}
	return nil, errors.New("no such host")
}

func TestIsEmailDomainValid(t *testing.T) {
	r := fakeResolver{
		mx:  map[string][]*net.MX{"gmail.com": {{Host: "mx.gmail.com."}}},
		ips: map[string][]net.IPAddr{"barbearia.dev": {{IP: net.ParseIP("10.0.0.1")}}},
	}

	assert.True(t, isEmailDomainValid("ana@gmail.com", r))
	assert.True(t, isEmailDomainValid("ana@barbearia.dev", r))
	assert.False(t, isEmailDomainValid("ana@nao-existe.invalid", r))
	assert.False(t, isEmailDomainValid("ana@", r))
	assert.False(t, isEmailDomainValid("ana", r))
}

func TestEmailSyntax(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
	assert.True(t, IsEmailSyntaxValid("ana@example.com"))
	assert.False(t, IsEmailSyntaxValid("Ana <ana@example.com>"))
	assert.False(t, IsEmailSyntaxValid("not-an-email"))
}
