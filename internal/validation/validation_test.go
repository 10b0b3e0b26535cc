package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jouerflux/jouerflux/internal/models"
)

func TestParseAction(t *testing.T) {
	a, err := ParseAction("ALLOW")
	require.NoError(t, err)
	assert.Equal(t, models.ActionAllow, a)

	a, err = ParseAction("DENY")
	require.NoError(t, err)
	assert.Equal(t, models.ActionDeny, a)

	for _, bad := range []string{"", "allow", "Allow", "DROP"} {
		_, err := ParseAction(bad)
		assert.ErrorIs(t, err, ErrInvalidEnumValue, bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestParseProtocol_ListsLegalValues(t *testing.T) {
	for _, p := range models.Protocols() {
		got, err := ParseProtocol(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParseProtocol("SCTP")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
	for _, p := range models.Protocols() {
		assert.Contains(t, err.Error(), string(p))
	}
}

func TestValidateIP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"ipv4", "10.0.0.1", "10.0.0.1", true},
		{"ipv6 loopback", "::1", "::1", true},
		{"ipv6 compressed", "2001:0db8:0000:0000:0000:0000:0000:0001", "2001:db8::1", true},
		{"ipv6 uppercase", "FE80::1", "fe80::1", true},
		{"octet out of range", "999.1.1.1", "", false},
		{"not an ip", "not-an-ip", "", false},
		{"empty", "", "", false},
		{"cidr", "10.0.0.0/8", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateIP(tt.input)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidIPAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePort(t *testing.T) {
	valid := []any{0, 80, 65535, int64(443), uint16(22), float64(8080), json.Number("53")}
	for _, v := range valid {
		_, err := ValidatePort(v)
		assert.NoError(t, err, "%#v", v)
	}

	invalid := []any{-1, 65536, 1 << 40, 80.5, "80", true, nil, json.Number("1.5"), []int{80}}
	for _, v := range invalid {
		_, err := ValidatePort(v)
		assert.ErrorIs(t, err, ErrInvalidPort, "%#v", v)
	}
}

func TestValidatePort_Boundaries(t *testing.T) {
	for p := -2; p <= 2; p++ {
		_, err := ValidatePort(p)
		assert.Equal(t, p >= 0, err == nil, p)
	}
	for p := 65533; p <= 65537; p++ {
		_, err := ValidatePort(p)
		assert.Equal(t, p <= 65535, err == nil, p)
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"a", "fw-01", "Edge_Gateway", strings.Repeat("x", 100)} {
		got, err := ValidateName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, got)
	}

	for _, name := range []string{"", "with space", "dotted.name", "slash/name", "é", strings.Repeat("x", 101)} {
		_, err := ValidateName(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, err, ErrValidation, name)
	}
}

func TestValidateRule(t *testing.T) {
	base := RuleInput{
		Action:        "ALLOW",
		Protocol:      "TCP",
		SourceIP:      "10.0.0.1",
		DestinationIP: "2001:db8::0001",
		Port:          float64(443),
	}

	t.Run("tcp with port", func(t *testing.T) {
		spec, err := ValidateRule(base)
		require.NoError(t, err)
		assert.Equal(t, models.ActionAllow, spec.Action)
		assert.Equal(t, models.ProtocolTCP, spec.Protocol)
		assert.Equal(t, "2001:db8::1", spec.DestinationIP)
		require.NotNil(t, spec.Port)
		assert.Equal(t, 443, *spec.Port)
	})

	t.Run("tcp without port", func(t *testing.T) {
		in := base
		in.Port = nil
		_, err := ValidateRule(in)
		assert.ErrorIs(t, err, ErrPortRequired)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("udp with port out of range", func(t *testing.T) {
		in := base
		in.Protocol = "UDP"
		in.Port = float64(70000)
		_, err := ValidateRule(in)
		assert.ErrorIs(t, err, ErrInvalidPort)
		assert.Contains(t, err.Error(), "port:")
	})

	t.Run("icmp without port", func(t *testing.T) {
		in := base
		in.Protocol = "ICMP"
		in.Port = nil
		spec, err := ValidateRule(in)
		require.NoError(t, err)
		assert.Nil(t, spec.Port)
	})

	t.Run("icmp with port", func(t *testing.T) {
		in := base
		in.Protocol = "ICMP"
		in.Port = float64(80)
		_, err := ValidateRule(in)
		assert.ErrorIs(t, err, ErrPortForbidden)
	})

	t.Run("bad action", func(t *testing.T) {
		in := base
		in.Action = "REJECT"
		_, err := ValidateRule(in)
		assert.ErrorIs(t, err, ErrInvalidEnumValue)
		assert.True(t, strings.HasPrefix(err.Error(), "action:"))
	})

	t.Run("bad source address", func(t *testing.T) {
		in := base
		in.SourceIP = "999.1.1.1"
		_, err := ValidateRule(in)
		assert.ErrorIs(t, err, ErrInvalidIPAddress)
		assert.True(t, strings.HasPrefix(err.Error(), "source_ip:"))
	})
}
