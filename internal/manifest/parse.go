package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

type packageJSON struct {
	Description     string          `json:"description"`
	Dependencies    json.RawMessage `json:"dependencies"`
	DevDependencies json.RawMessage `json:"devDependencies"`
	Scripts         map[string]any  `json:"scripts"`
}

// ParsePackageJSON reads a Node package manifest. Dependencies are the
// runtime dependencies followed by development dependencies not already
// listed, in declaration order.
func ParsePackageJSON(data []byte) (Manifest, error) {
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return Manifest{}, err
	}

	runtime, err := objectKeys(pkg.Dependencies)
	if err != nil {
		return Manifest{}, err
	}
	dev, err := objectKeys(pkg.DevDependencies)
	if err != nil {
		return Manifest{}, err
	}

	return Manifest{
		Description:  strings.TrimSpace(pkg.Description),
		Dependencies: union(runtime, dev),
		TestScript:   nonEmptyScript(pkg.Scripts, "test") || nonEmptyScript(pkg.Scripts, "test:unit"),
	}, nil
}

// objectKeys returns the keys of a JSON object in document order.
// Anything that is not an object yields no keys.
func objectKeys(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func nonEmptyScript(scripts map[string]any, name string) bool {
	s, ok := scripts[name].(string)
	return ok && s != ""
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

type pyproject struct {
	Tool struct {
		Poetry struct {
			Description string `toml:"description"`
		} `toml:"poetry"`
	} `toml:"tool"`
	Project struct {
		Description  string   `toml:"description"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// ParsePyproject reads a pyproject.toml. Poetry metadata is preferred;
// PEP 621 [project] metadata fills in when Poetry declares nothing.
// The python runtime itself is never listed as a dependency.
func ParsePyproject(data []byte) (Manifest, error) {
	var doc pyproject
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return Manifest{}, err
	}

	var m Manifest
	m.Description = strings.TrimSpace(doc.Tool.Poetry.Description)
	if m.Description == "" {
		m.Description = strings.TrimSpace(doc.Project.Description)
	}

	for _, key := range md.Keys() {
		if len(key) == 4 && key[0] == "tool" && key[1] == "poetry" && key[2] == "dependencies" && key[3] != "python" {
			m.Dependencies = append(m.Dependencies, key[3])
		}
	}
	if len(m.Dependencies) == 0 {
		for _, req := range doc.Project.Dependencies {
			if name := pep508Name(req); name != "" {
				m.Dependencies = append(m.Dependencies, name)
			}
		}
	}

	return m, nil
}

// ParseRequirements reads a pip requirements list. Blank lines and
// comments are skipped; version specifiers are cut at the first '=', '<'
// or '>'.
func ParseRequirements(data []byte) (Manifest, error) {
	var m Manifest

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexAny(line, "=<>"); i >= 0 {
			line = line[:i]
		}
		if name := strings.TrimSpace(line); name != "" {
			m.Dependencies = append(m.Dependencies, name)
		}
	}
	return m, sc.Err()
}

func pep508Name(req string) string {
	if i := strings.IndexAny(req, "=<>~![;( "); i >= 0 {
		req = req[:i]
	}
	return strings.TrimSpace(req)
}

// ParseGoMod reads a go.mod. Only direct requirements are listed.
func ParseGoMod(data []byte) (Manifest, error) {
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return Manifest{}, err
	}

	var m Manifest
	for _, r := range f.Require {
		if r.Indirect {
			continue
		}
		m.Dependencies = append(m.Dependencies, r.Mod.Path)
	}
	return m, nil
}

type cargoManifest struct {
	Package struct {
		Description string `toml:"description"`
	} `toml:"package"`
}

// ParseCargo reads a Cargo.toml.
func ParseCargo(data []byte) (Manifest, error) {
	var doc cargoManifest
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return Manifest{}, err
	}

	m := Manifest{Description: strings.TrimSpace(doc.Package.Description)}
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "dependencies" {
			m.Dependencies = append(m.Dependencies, key[1])
		}
	}
	return m, nil
}

type pubspec struct {
	Description  string    `yaml:"description"`
	Dependencies yaml.Node `yaml:"dependencies"`
}

// ParsePubspec reads a Dart/Flutter pubspec.yaml.
func ParsePubspec(data []byte) (Manifest, error) {
	var doc pubspec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Manifest{}, err
	}

	m := Manifest{Description: strings.TrimSpace(doc.Description)}
	if doc.Dependencies.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(doc.Dependencies.Content); i += 2 {
			m.Dependencies = append(m.Dependencies, doc.Dependencies.Content[i].Value)
		}
	}
	return m, nil
}
