package model

import "gopkg.in/yaml.v3"

// Service is one entry of a compose file's top-level services mapping.
// Config holds the raw declaration so later stages can look up keys
// without the parser knowing about them.
type Service struct {
	Name   string
	Config *yaml.Node
}

// ServiceFile is the parsed view of a single compose file.
// When Err is set, Services is nil and must not be inspected.
type ServiceFile struct {
	Path     string
	Services []Service
	Err      error
}

// ExposedService is a service that publishes at least one port.
type ExposedService struct {
	Name  string
	Ports string // port list joined with PortSeparator
}

// ExposedFile lists the exposed services of one compose file, in the
// order they are declared.
type ExposedFile struct {
	Path     string
	Services []ExposedService
	Err      error
}

// PortSeparator joins the ports of a service into one field.
const PortSeparator = " and "
