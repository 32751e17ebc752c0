package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cuemby/nebula/pkg/identity"
	"github.com/cuemby/nebula/pkg/language"
)

// readComponent loads a YAML file describing a document's content and
// converts it into a catalog Component, in the same yaml.Unmarshal-
// into-a-generic-map idiom cmd/warren/apply.go used for resource
// specs. The top-level map becomes the catalog's values; a fresh tag
// and v1 version are minted for it.
func readComponent(path string) (*language.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	version, err := identity.ParseVersion("v1")
	if err != nil {
		return nil, err
	}
	params := &language.Parameters{Tag: identity.NewTag(), Version: version}
	return language.NewCatalog(toValues(raw), params), nil
}

// toValues converts a decoded YAML/JSON map into catalog child
// components: strings become text leaves, numbers become number
// leaves, nested maps become nested (parameter-less) catalogs.
func toValues(raw map[string]interface{}) map[string]*language.Component {
	values := make(map[string]*language.Component, len(raw))
	for k, v := range raw {
		values[k] = toComponent(v)
	}
	return values
}

func toComponent(v interface{}) *language.Component {
	switch val := v.(type) {
	case string:
		return language.NewText(val)
	case int:
		return language.NewNumber(float64(val))
	case float64:
		return language.NewNumber(val)
	case bool:
		return language.NewText(fmt.Sprintf("%v", val))
	case map[string]interface{}:
		return language.NewCatalog(toValues(val), nil)
	default:
		return language.NewText(fmt.Sprintf("%v", val))
	}
}

// printCitation writes citation as JSON to the root command's output
// (stdout unless redirected with SetOut), the format every subcommand
// expects back as an argument to a later command.
func printCitation(citation identity.Citation) error {
	data, err := json.MarshalIndent(citation, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(rootCmd.OutOrStdout(), string(data))
	return nil
}

// parseCitation reads a citation previously printed by printCitation
// from either a literal JSON argument or an @-prefixed file path.
func parseCitation(arg string) (identity.Citation, error) {
	var data []byte
	var err error
	if len(arg) > 0 && arg[0] == '@' {
		data, err = os.ReadFile(arg[1:])
	} else {
		data = []byte(arg)
	}
	if err != nil {
		return identity.Citation{}, fmt.Errorf("read citation argument: %w", err)
	}

	var citation identity.Citation
	if err := json.Unmarshal(data, &citation); err != nil {
		return identity.Citation{}, fmt.Errorf("parse citation: %w", err)
	}
	return citation, nil
}

// printComponent writes component as indented JSON to the root
// command's output for inspection.
func printComponent(component *language.Component) error {
	data, err := json.MarshalIndent(component, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(rootCmd.OutOrStdout(), string(data))
	return nil
}
