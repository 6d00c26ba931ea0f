package cluster

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kestrelworks/kestrel/internal/validate"
)

// ErrParse reports a definition document that could not be read or decoded.
type ErrParse struct {
	Path string
	Err  error
}

func (e ErrParse) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e ErrParse) Unwrap() error {
	return e.Err
}

// ParseDefinition loads a cluster definition document from disk, decodes
// it, and validates its schema. Node map keys are copied onto the node
// instances so documents do not repeat the id.
func ParseDefinition(path string) (*ClusterDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrParse{Path: path, Err: err}
	}

	def, err := DecodeDefinition(data)
	if err != nil {
		return nil, ErrParse{Path: path, Err: err}
	}

	return def, nil
}

// DecodeDefinition decodes and validates a definition document held in
// memory.
func DecodeDefinition(data []byte) (*ClusterDefinition, error) {
	var def ClusterDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}

	for id, node := range def.Nodes {
		if node.ID == "" {
			node.ID = id
			def.Nodes[id] = node
		}
	}

	if err := validate.Instance().Struct(&def); err != nil {
		return nil, err
	}

	return &def, nil
}

// DirLoader resolves definitions from a directory of YAML documents. Every
// document in the directory is parsed at construction and indexed by
// (id, version), so Load never touches the filesystem.
type DirLoader struct {
	clusters map[loaderKey]*ClusterDefinition
}

// NewDirLoader scans dir for *.yaml and *.yml documents.
func NewDirLoader(dir string) (*DirLoader, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	loader := &DirLoader{clusters: make(map[loaderKey]*ClusterDefinition)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		def, err := ParseDefinition(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		loader.clusters[loaderKey{id: def.ID, version: def.Version}] = def
	}

	return loader, nil
}

// Load resolves a definition by identity.
func (l *DirLoader) Load(id, version string) (*ClusterDefinition, bool) {
	def, ok := l.clusters[loaderKey{id: id, version: version}]
	return def, ok
}
