// Package language provides the narrow component-tree API the core
// depends on (§3, §9 of SPEC_FULL.md). The bytes-level grammar of the
// document language is out of scope; this package supplies one
// concrete, canonical encoding so the rest of the system is
// exercisable and testable end to end.
package language

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/cuemby/nebula/pkg/identity"
)

// Kind tags the variant a Component holds.
type Kind string

const (
	KindCatalog   Kind = "catalog"
	KindReference Kind = "reference"
	KindText      Kind = "text"
	KindNumber    Kind = "number"
	KindVersion   Kind = "version"
	KindTag       Kind = "tag"
	KindDocument  Kind = "document"
)

// Parameters is the mapping a catalog component may carry at minimum:
// tag, version, permissions, previous.
type Parameters struct {
	Tag         identity.Tag       `json:"tag,omitempty"`
	Version     identity.Version   `json:"version,omitempty"`
	Permissions string             `json:"permissions,omitempty"`
	Previous    *identity.Citation `json:"previous,omitempty"`
}

// Component is the tagged-variant parse tree the core consumes
// through GetValue/GetParameters only.
type Component struct {
	Kind       Kind                   `json:"$type"`
	Values     map[string]*Component  `json:"values,omitempty"`
	Parameters *Parameters            `json:"parameters,omitempty"`
	Reference  *identity.Citation     `json:"citation,omitempty"`
	Text       string                 `json:"text,omitempty"`
	Number     float64                `json:"number,omitempty"`
	Version    identity.Version       `json:"versionValue,omitempty"`
	Tag        identity.Tag           `json:"tagValue,omitempty"`
	Document   *NotarizedDocument     `json:"document,omitempty"`
}

// NewCatalog builds a catalog component from a value map and optional
// parameters.
func NewCatalog(values map[string]*Component, params *Parameters) *Component {
	if values == nil {
		values = map[string]*Component{}
	}
	return &Component{Kind: KindCatalog, Values: values, Parameters: params}
}

// NewText builds a text-leaf component.
func NewText(s string) *Component { return &Component{Kind: KindText, Text: s} }

// NewNumber builds a numeric-leaf component.
func NewNumber(n float64) *Component { return &Component{Kind: KindNumber, Number: n} }

// NewReference builds a citation-typed child component.
func NewReference(c identity.Citation) *Component {
	return &Component{Kind: KindReference, Reference: &c}
}

// NewDocumentComponent wraps a notarized document as a component, for
// the inner-document descent the validation engine walks (§4.4 step 6).
func NewDocumentComponent(doc *NotarizedDocument) *Component {
	return &Component{Kind: KindDocument, Document: doc}
}

// GetValue returns the named child of a catalog component, or nil if
// absent or this component is not a catalog.
func (c *Component) GetValue(name string) *Component {
	if c == nil || c.Kind != KindCatalog {
		return nil
	}
	return c.Values[name]
}

// GetParameters returns this component's parameters, or nil.
func (c *Component) GetParameters() *Parameters {
	if c == nil {
		return nil
	}
	return c.Parameters
}

// Clone returns a deep copy, used when duplicating a component for a
// new draft (§4.6 checkoutDocument).
func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	out := &Component{
		Kind:    c.Kind,
		Text:    c.Text,
		Number:  c.Number,
		Version: c.Version.Clone(),
		Tag:     c.Tag,
	}
	if c.Reference != nil {
		ref := *c.Reference
		out.Reference = &ref
	}
	if c.Parameters != nil {
		p := *c.Parameters
		if c.Parameters.Previous != nil {
			prev := *c.Parameters.Previous
			p.Previous = &prev
		}
		p.Version = c.Parameters.Version.Clone()
		out.Parameters = &p
	}
	if c.Values != nil {
		out.Values = make(map[string]*Component, len(c.Values))
		for k, v := range c.Values {
			out.Values[k] = v.Clone()
		}
	}
	if c.Document != nil {
		clone := *c.Document
		clone.Component = c.Document.Component.Clone()
		out.Document = &clone
	}
	return out
}

// NotarizedDocument is a component wrapped with the notarization
// envelope (§3): component, protocol, timestamp, certificate citation,
// signature, and an optional previous-version citation.
type NotarizedDocument struct {
	Component   *Component        `json:"component"`
	Protocol    string            `json:"protocol"`
	Timestamp   int64             `json:"timestamp"`
	Certificate identity.Citation `json:"certificate"`
	Signature   string            `json:"signature,omitempty"`
	Previous    identity.Citation `json:"previous"`
}

// signable is NotarizedDocument minus Signature: the bytes a notary
// actually signs and verifies over.
type signable struct {
	Component   *Component        `json:"component"`
	Protocol    string            `json:"protocol"`
	Timestamp   int64             `json:"timestamp"`
	Certificate identity.Citation `json:"certificate"`
	Previous    identity.Citation `json:"previous"`
}

// SignableBytes returns the canonical bytes a notary signs/verifies,
// excluding the signature slot itself.
func (d *NotarizedDocument) SignableBytes() ([]byte, error) {
	return canonicalMarshal(signable{
		Component:   d.Component,
		Protocol:    d.Protocol,
		Timestamp:   d.Timestamp,
		Certificate: d.Certificate,
		Previous:    d.Previous,
	})
}

// Serialize returns the canonical blob form stored under a namespace
// identifier, including the signature.
func Serialize(doc *NotarizedDocument) ([]byte, error) {
	return canonicalMarshal(doc)
}

// ParseDocument parses a blob previously produced by Serialize. It
// fails if the bytes do not re-derive byte-for-byte under Serialize,
// which is the round-trip requirement of §6 made concrete.
func ParseDocument(blob []byte) (*NotarizedDocument, error) {
	var doc NotarizedDocument
	trimmed := bytes.TrimSuffix(blob, []byte("\n"))
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parse notarized document: %w", err)
	}
	reserialized, err := Serialize(&doc)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(reserialized, trimmed) {
		return nil, fmt.Errorf("parse notarized document: not in canonical form")
	}
	return &doc, nil
}

// Digest computes the content digest of a notarized document's
// canonical bytes.
func Digest(doc *NotarizedDocument) (string, error) {
	b, err := Serialize(doc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalMarshal(v interface{}) ([]byte, error) {
	// encoding/json sorts map[string]X keys alphabetically and emits
	// struct fields in declaration order, both deterministic; no
	// indentation is added, so repeated marshaling of the same value
	// always yields identical bytes.
	return json.Marshal(v)
}
