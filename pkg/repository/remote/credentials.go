package remote

import (
	"strconv"

	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/language"
	"github.com/cuemby/nebula/pkg/notary"
)

// privatePermissions is the fixed permissions value every derived
// credential carries (§4.8's "Credentials").
const privatePermissions = "/bali/permissions/private/v1"

// credentialHeader derives a fresh, single-use credential document
// from n and renders it as the inline-quoted value of the
// Nebula-Credentials header. A fresh tag and version are minted per
// call; previous is left NONE.
func credentialHeader(n notary.Notary) (string, error) {
	version, err := identity.ParseVersion("v1")
	if err != nil {
		return "", err
	}
	component := language.NewCatalog(nil, &language.Parameters{
		Tag:         identity.NewTag(),
		Version:     version,
		Permissions: privatePermissions,
	})

	doc, err := n.Sign(component, identity.Citation{})
	if err != nil {
		return "", err
	}
	blob, err := language.Serialize(doc)
	if err != nil {
		return "", err
	}
	return strconv.Quote(string(blob)), nil
}
