package types

import (
	"encoding/json"
	"strings"
)

// Role is the closed set of staff classes that may sign in.
type Role string

const (
	RoleAccessAdmin     Role = "access_admin"
	RoleSecurityOfficer Role = "security_officer"
)

// Credential files written by the desktop client store the localized
// combo-box label instead of the code.
var legacyRoleLabels = map[string]Role{
	"Администратор доступа":         RoleAccessAdmin,
	"Сотрудник службы безопасности": RoleSecurityOfficer,
}

// ParseRole accepts a role code or a legacy label.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	switch Role(s) {
	case RoleAccessAdmin, RoleSecurityOfficer:
		return Role(s), true
	}
	if r, ok := legacyRoleLabels[s]; ok {
		return r, true
	}
	return "", false
}

func (r Role) Valid() bool {
	return r == RoleAccessAdmin || r == RoleSecurityOfficer
}

// UnmarshalJSON normalizes legacy labels to codes. Unrecognised values are
// kept verbatim so they simply never match a lookup.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if parsed, ok := ParseRole(s); ok {
		*r = parsed
		return nil
	}
	*r = Role(s)
	return nil
}

// CredentialRecord is one entry of the credential file. Password and secret
// are hex digests, never plaintext.
type CredentialRecord struct {
	Role         Role   `json:"role"`
	Login        string `json:"login"`
	PasswordHash string `json:"password"`
	SecretHash   string `json:"secret"`
	DisplayName  string `json:"name"`
}

// Principal is the authenticated identity carried through the request workflow.
type Principal struct {
	Role        Role   `json:"role"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Role     string `json:"role"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Secret   string `json:"secret"`
}

type LoginResponse struct {
	OK          bool   `json:"ok"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
	Message     string `json:"message"`
	Token       string `json:"token,omitempty"`
}
