package notary

import (
	"bytes"
	"testing"

	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/language"
)

func testSealKey() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func mustNotary(t *testing.T) *Ed25519Notary {
	t.Helper()
	n, err := GenerateEd25519Notary(identity.Tag("acct-1"), testSealKey())
	if err != nil {
		t.Fatalf("GenerateEd25519Notary: %v", err)
	}
	return n
}

func TestBootstrapIsSelfSignedAndValid(t *testing.T) {
	n := mustNotary(t)
	cert := n.OwnCertificate()

	if !cert.Certificate.IsNone() {
		t.Error("expected root certificate's Certificate citation to be NONE")
	}
	if !n.DocumentIsValid(cert, cert) {
		t.Error("expected root certificate to validate against itself")
	}

	citation := n.GetCitation()
	if citation.Tag == "" {
		t.Error("expected a non-empty citation tag")
	}
	if !n.CitationMatches(citation, cert) {
		t.Error("expected GetCitation() to match the certificate it cites")
	}
}

func TestSignProducesVerifiableDocument(t *testing.T) {
	n := mustNotary(t)
	v, _ := identity.ParseVersion("v1")
	component := language.NewCatalog(map[string]*language.Component{
		"foo": language.NewText("bar"),
	}, &language.Parameters{Tag: identity.NewTag(), Version: v})

	doc, err := n.Sign(component, identity.Citation{})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if doc.Certificate.IsNone() {
		t.Error("expected ordinary Sign to set a non-NONE certificate")
	}
	cert := n.OwnCertificate()
	if !n.DocumentIsValid(doc, cert) {
		t.Error("expected signed document to validate against signer's certificate")
	}
}

func TestDocumentIsValidRejectsTamperedSignature(t *testing.T) {
	n := mustNotary(t)
	v, _ := identity.ParseVersion("v1")
	component := language.NewCatalog(map[string]*language.Component{
		"foo": language.NewText("bar"),
	}, &language.Parameters{Tag: identity.NewTag(), Version: v})

	doc, err := n.Sign(component, identity.Citation{})
	if err != nil {
		t.Fatal(err)
	}
	doc.Component.Values["foo"] = language.NewText("tampered")

	cert := n.OwnCertificate()
	if n.DocumentIsValid(doc, cert) {
		t.Error("expected tampered document to fail verification")
	}
}

func TestCiteDigestSensitiveToContent(t *testing.T) {
	n := mustNotary(t)
	v, _ := identity.ParseVersion("v1")
	tag := identity.NewTag()

	doc1, _ := n.Sign(language.NewCatalog(map[string]*language.Component{
		"x": language.NewText("1"),
	}, &language.Parameters{Tag: tag, Version: v}), identity.Citation{})

	doc2, _ := n.Sign(language.NewCatalog(map[string]*language.Component{
		"x": language.NewText("2"),
	}, &language.Parameters{Tag: tag, Version: v}), identity.Citation{})

	c1, err := n.Cite(doc1)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := n.Cite(doc2)
	if err != nil {
		t.Fatal(err)
	}
	if c1.Digest == c2.Digest {
		t.Error("expected different digests for different content")
	}
	if !n.CitationMatches(c1, doc1) || n.CitationMatches(c1, doc2) {
		t.Error("CitationMatches should only match its own document")
	}
}

func TestSealRoundTrip(t *testing.T) {
	n := mustNotary(t)
	sealed, err := n.SealPrivateKey()
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadEd25519Notary(n.GetAccountID(), testSealKey(), sealed, n.OwnCertificate())
	if err != nil {
		t.Fatalf("LoadEd25519Notary: %v", err)
	}

	v, _ := identity.ParseVersion("v1")
	component := language.NewCatalog(map[string]*language.Component{
		"foo": language.NewText("bar"),
	}, &language.Parameters{Tag: identity.NewTag(), Version: v})

	doc, err := loaded.Sign(component, identity.Citation{})
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.DocumentIsValid(doc, loaded.OwnCertificate()) {
		t.Error("expected document signed by reloaded notary to validate")
	}
}

func TestSealRejectsWrongKeySize(t *testing.T) {
	if _, err := newKeySeal([]byte("too-short")); err == nil {
		t.Error("expected error for non-32-byte seal key")
	}
}
