package webhook

import (
	"crypto/subtle"
	"fmt"
	"net"
	"strings"
)

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config SecurityConfig
	nets   []*net.IPNet
}

func NewSecurityValidator(config SecurityConfig) (*SecurityValidator, error) {
	v := &SecurityValidator{config: config}
	for _, allowed := range config.AllowedIPs {
		if !strings.Contains(allowed, "/") {
			continue
		}
		_, ipNet, err := net.ParseCIDR(allowed)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR %q: %w", allowed, err)
		}
		v.nets = append(v.nets, ipNet)
	}
	return v, nil
}

// ValidateSecretToken compares the Telegram secret header in constant time.
func (v *SecurityValidator) ValidateSecretToken(token string) error {
	if v.config.Secret == "" {
		return fmt.Errorf("webhook secret not configured")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.config.Secret)) != 1 {
		return fmt.Errorf("invalid secret token")
	}
	return nil
}

// ValidateIPAddress checks the client IP against the allowlist.
func (v *SecurityValidator) ValidateIPAddress(ip string) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil // No IP restriction
	}

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}
	}

	parsed := net.ParseIP(ip)
	for _, ipNet := range v.nets {
		if parsed != nil && ipNet.Contains(parsed) {
			return nil
		}
	}

	return fmt.Errorf("IP %s not whitelisted", ip)
}
