// Package hcl_adapter loads ninjagen.hcl project files into config.Project.
package hcl_adapter
