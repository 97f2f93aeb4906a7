package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/agentx-labs/create-app/internal/errutils"
)

// templateKnownKeys are decoded into TemplateManifest's typed fields.
var templateKnownKeys = map[string]bool{
	"scripts":         true,
	"dependencies":    true,
	"devDependencies": true,
}

// ReadPackage reads a package.json. A missing file is ErrManifestMissing.
func ReadPackage(path string) (Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", errutils.ErrManifestMissing, path)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	var p Package
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if p == nil {
		p = Package{}
	}
	return p, nil
}

// WritePackage writes p as indented JSON with a trailing newline.
func WritePackage(path string, p Package) error {
	data, err := marshal(p)
	if err != nil {
		return fmt.Errorf("encoding manifest %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadTemplate reads an optional template.json. A missing file yields
// (nil, false, nil). The document is validated against the template schema;
// schema violations are returned as ErrTemplateInvalid.
func ReadTemplate(path string) (*TemplateManifest, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading file %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, false, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, false, fmt.Errorf("%w %s:\n  %s", errutils.ErrTemplateInvalid, path, strings.Join(result.Messages(), "\n  "))
	}

	tm, err := ParseTemplate(data)
	if err != nil {
		return nil, false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tm, true, nil
}

// ParseTemplate decodes template.json bytes without schema validation.
func ParseTemplate(data []byte) (*TemplateManifest, error) {
	var tm TemplateManifest
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for k, v := range raw {
		if templateKnownKeys[k] {
			continue
		}
		if tm.Extra == nil {
			tm.Extra = make(map[string]json.RawMessage)
		}
		tm.Extra[k] = v
	}
	return &tm, nil
}
