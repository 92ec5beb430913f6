// Package manifest derives lightweight metadata from a project directory.
//
// Extract inspects well-known manifest files in a fixed order and merges
// what they declare into a single Result:
//
//	package.json      nodejs         description, dependencies + devDependencies, test script
//	pyproject.toml    python-poetry  [tool.poetry] (or [project]) description and dependencies
//	requirements.txt  python-pip     package names with version specifiers stripped
//	go.mod            go             direct requirements
//	Cargo.toml        rust           [package] description and [dependencies]
//	pubspec.yaml      dart           description and dependencies
//
// Each matched manifest appends its ecosystem to Types and at most ten
// dependency names to TechStack. Tech stacks are concatenated across
// manifests without deduplication.
//
// # Description Precedence
//
// The first manifest that declares a description wins; later manifests
// never overwrite it. Only when no manifest supplied one is the README
// consulted (see ReadmeDescription). An empty result becomes Placeholder.
//
// # Failure Policy
//
// A manifest that cannot be read or parsed is logged and treated as absent.
// Extraction itself never fails.
package manifest
