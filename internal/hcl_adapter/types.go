package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// projectFile is the gohcl schema of ninjagen.hcl. Every attribute is
// optional; anything not listed here is rejected by the decoder.
type projectFile struct {
	Language           string         `hcl:"language,optional"`
	Name               string         `hcl:"name,optional"`
	Type               string         `hcl:"type,optional"`
	SystemDependencies []string       `hcl:"system_dependencies,optional"`
	ExtraBuildFlags    []string       `hcl:"extra_build_flags,optional"`
	ExtraLinkFlags     []string       `hcl:"extra_link_flags,optional"`
	Defines            hcl.Expression `hcl:"defines,optional"`
}
