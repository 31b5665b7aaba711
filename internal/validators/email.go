package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checa se o domínio do e-mail (gestor no cadastro,
// morador no portal) existe de fato: exige um domínio qualificado e
// pelo menos um registro MX ou A/AAAA.
func IsEmailDomainValid(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	// hostnames locais (ex.: "localhost") não servem para contato
	if !strings.Contains(domain, ".") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
