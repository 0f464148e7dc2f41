// This file translates the gohcl schema into the format-agnostic project
// model defined in the config package.

package hcl_adapter

import (
	"context"

	"github.com/vk/ninjagen/internal/config"
)

func (l *Loader) translateProject(ctx context.Context, f *projectFile) (*config.Project, error) {
	p := &config.Project{
		Language:           config.Language(f.Language),
		Name:               f.Name,
		Type:               config.BuildType(f.Type),
		SystemDependencies: f.SystemDependencies,
		ExtraBuildFlags:    f.ExtraBuildFlags,
		ExtraLinkFlags:     f.ExtraLinkFlags,
	}

	if isExprDefined(ctx, f.Defines, "defines") {
		val, diags := f.Defines.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		defines, err := defineMap(val)
		if err != nil {
			return nil, err
		}
		p.Defines = defines
	}
	return p, nil
}
