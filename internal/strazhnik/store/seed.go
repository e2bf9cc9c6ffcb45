package store

import (
	"github.com/BrandonDHaskell/Strazhnik/server/internal/digest"
	"github.com/BrandonDHaskell/Strazhnik/server/internal/strazhnik/types"
)

// SeedCredentials returns the two accounts written on first launch, one per
// role.
func SeedCredentials() []types.CredentialRecord {
	return []types.CredentialRecord{
		{
			Role:         types.RoleAccessAdmin,
			Login:        "guardianskk",
			PasswordHash: digest.Sum("Admin123!"),
			SecretHash:   digest.Sum("security"),
			DisplayName:  "Иванов И.И.",
		},
		{
			Role:         types.RoleSecurityOfficer,
			Login:        "defendservice",
			PasswordHash: digest.Sum("Security123!"),
			SecretHash:   digest.Sum("guard"),
			DisplayName:  "Петров П.П.",
		},
	}
}
