package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/ninjagen/internal/ctxlog"
)

// isExprDefined reports whether expr was written in the source. gohcl fills
// omitted optional expression fields with a zero-width null placeholder.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", r.String(),
		"is_defined", defined,
	)
	return defined
}
