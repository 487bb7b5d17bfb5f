package collector

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"github.com/ThomasCrouzet/compose-ports/internal/model"
)

// ParseOptions tunes the parser stage.
type ParseOptions struct {
	// HaltOnError ends the sequence after the first failed file instead of
	// moving on to the next one.
	HaltOnError bool
}

// Parse reads every path from fsys and yields its services in declaration
// order. A file that cannot be read or parsed yields a record carrying the
// error and the path being processed.
func Parse(paths iter.Seq[string], fsys billy.Basic, opts ParseOptions, logger *slog.Logger) iter.Seq[model.ServiceFile] {
	logger = orDiscard(logger)

	return func(yield func(model.ServiceFile) bool) {
		for p := range paths {
			services, err := parseServiceFile(fsys, p)
			if err != nil {
				logger.Error("cannot parse compose file", "path", p, "error", err)
				if !yield(model.ServiceFile{Path: p, Err: err}) || opts.HaltOnError {
					return
				}
				continue
			}
			if !yield(model.ServiceFile{Path: p, Services: services}) {
				return
			}
		}
	}
}

func parseServiceFile(fsys billy.Basic, path string) ([]model.Service, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return ParseServices(data)
}

// ParseServices extracts the top-level services mapping of a compose
// document, keeping the order in which services are declared. Only the
// first document of a multi-document stream is read.
func ParseServices(data []byte) ([]model.Service, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}

	servicesNode := lookup(documentRoot(&doc), "services")
	if servicesNode == nil {
		return nil, ErrNoServices
	}
	if servicesNode.Kind != yaml.MappingNode {
		return nil, ErrServicesNotMapping
	}
	if name, ok := duplicateKey(servicesNode); ok {
		return nil, &FieldError{Field: "services." + name, Err: ErrDuplicateService}
	}

	declared := mappingEntries(servicesNode)
	services := make([]model.Service, 0, len(declared))
	for _, e := range declared {
		services = append(services, model.Service{Name: e.key, Config: e.value})
	}
	return services, nil
}

// documentRoot unwraps the document node produced by yaml.Unmarshal.
// An empty document yields nil.
func documentRoot(n *yaml.Node) *yaml.Node {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return resolveAlias(n.Content[0])
	}
	return resolveAlias(n)
}

type mappingEntry struct {
	key   string
	value *yaml.Node
}

// mappingEntries returns the key/value pairs of a mapping node in document
// order, with "<<" merge keys expanded in place. Keys written in the mapping
// itself win over merged ones, and among merged mappings the first listed
// wins.
func mappingEntries(n *yaml.Node) []mappingEntry {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	explicit := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if !isMergeKey(n.Content[i]) {
			explicit[n.Content[i].Value] = true
		}
	}

	var out []mappingEntry
	merged := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if !isMergeKey(k) {
			out = append(out, mappingEntry{key: k.Value, value: resolveAlias(v)})
			continue
		}
		for _, src := range mergeSources(v) {
			for _, e := range mappingEntries(src) {
				if explicit[e.key] || merged[e.key] {
					continue
				}
				merged[e.key] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// mergeSources returns the mappings referenced by a merge key value: a
// single mapping or a sequence of them.
func mergeSources(v *yaml.Node) []*yaml.Node {
	v = resolveAlias(v)
	if v == nil {
		return nil
	}
	switch v.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{v}
	case yaml.SequenceNode:
		var sources []*yaml.Node
		for _, item := range v.Content {
			if item = resolveAlias(item); item != nil && item.Kind == yaml.MappingNode {
				sources = append(sources, item)
			}
		}
		return sources
	}
	return nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge"
}

// duplicateKey reports the first key written twice in a mapping node.
func duplicateKey(n *yaml.Node) (string, bool) {
	seen := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if isMergeKey(k) {
			continue
		}
		if seen[k.Value] {
			return k.Value, true
		}
		seen[k.Value] = true
	}
	return "", false
}

// lookup returns the value stored under key in a mapping node, following
// merge keys, or nil.
func lookup(n *yaml.Node, key string) *yaml.Node {
	for _, e := range mappingEntries(n) {
		if e.key == key {
			return e.value
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
