package collector

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	composetypes "github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"

	"github.com/ThomasCrouzet/compose-ports/internal/model"
)

// ExtractOptions tunes the extractor stage.
type ExtractOptions struct {
	// HaltOnError ends the sequence after the first error record, whether
	// it came from the parser or from a malformed ports declaration.
	HaltOnError bool
}

// Extract keeps the services that publish ports. Error records pass through
// untouched; a malformed ports declaration turns the record into one.
func Extract(files iter.Seq[model.ServiceFile], opts ExtractOptions, logger *slog.Logger) iter.Seq[model.ExposedFile] {
	logger = orDiscard(logger)

	return func(yield func(model.ExposedFile) bool) {
		for f := range files {
			out := exposedFile(f)
			if out.Err != nil && f.Err == nil {
				logger.Error("invalid ports in compose file", "path", out.Path, "error", out.Err)
			}
			if !yield(out) || (out.Err != nil && opts.HaltOnError) {
				return
			}
		}
	}
}

func exposedFile(f model.ServiceFile) model.ExposedFile {
	if f.Err != nil {
		return model.ExposedFile{Path: f.Path, Err: f.Err}
	}

	var exposed []model.ExposedService
	for _, svc := range f.Services {
		ports, err := servicePorts(svc.Config)
		if err != nil {
			return model.ExposedFile{
				Path: f.Path,
				Err:  &FieldError{Field: "services." + svc.Name + ".ports", Err: err},
			}
		}
		if len(ports) == 0 {
			continue
		}
		exposed = append(exposed, model.ExposedService{
			Name:  svc.Name,
			Ports: strings.Join(ports, model.PortSeparator),
		})
	}
	return model.ExposedFile{Path: f.Path, Services: exposed}
}

// servicePorts returns the ports of a service declaration in short form.
// A declaration without ports, or with a null body, has none.
func servicePorts(config *yaml.Node) ([]string, error) {
	node := lookup(config, "ports")
	if node == nil || node.ShortTag() == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list, got %s", ErrInvalidPorts, node.ShortTag())
	}

	ports := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		switch item.Kind {
		case yaml.ScalarNode:
			ports = append(ports, item.Value)
		case yaml.MappingNode:
			var p composetypes.ServicePortConfig
			if err := item.Decode(&p); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidPorts, item.Line, err)
			}
			ports = append(ports, model.PortString(p))
		default:
			return nil, fmt.Errorf("%w: line %d: unexpected %s entry", ErrInvalidPorts, item.Line, item.ShortTag())
		}
	}
	return ports, nil
}
