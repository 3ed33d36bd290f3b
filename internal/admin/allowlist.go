package admin

import "strings"

// Allowlist grants admin dashboard access by email. Loaded once from config
// at startup; never mutated at runtime.
type Allowlist struct {
	emails map[string]struct{}
}

func NewAllowlist(emails []string) *Allowlist {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if trimmed := strings.ToLower(strings.TrimSpace(e)); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return &Allowlist{emails: set}
}

func (a *Allowlist) IsAdminEmail(email string) bool {
	if email == "" {
		return false
	}
	_, ok := a.emails[strings.ToLower(email)]
	return ok
}
