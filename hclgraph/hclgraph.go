package hclgraph

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/regraft/ctyconv"
	"github.com/vk/regraft/internal/ctxlog"
	"github.com/vk/regraft/node"
)

// LoadFile reads and parses an HCL file into a node graph.
func LoadFile(ctx context.Context, path string) (*node.Node, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hclgraph: read %s: %w", path, err)
	}
	return Parse(ctx, src, path)
}

// Parse converts HCL source into a node graph. filename is used for
// diagnostics only.
func Parse(ctx context.Context, src []byte, filename string) (*node.Node, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclgraph: parse %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("hclgraph: parse %s: unexpected body type %T", filename, file.Body)
	}
	root, err := convertBody(body)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("hcl document loaded", "file", filename, "top_level_keys", len(root.FieldNames()))
	return root, nil
}

func convertBody(body *hclsyntax.Body) (*node.Node, error) {
	fields := make(map[string]*node.Node)

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("hclgraph: attribute %q: %w", name, diags)
		}
		child, err := ctyconv.FromValue(val)
		if err != nil {
			return nil, fmt.Errorf("hclgraph: attribute %q: %w", name, err)
		}
		fields[name] = child
	}

	// Blocks of the same type accumulate, in document order, into a
	// sequence under the type name.
	grouped := make(map[string][]*node.Node)
	for _, block := range body.Blocks {
		bn, err := convertBlock(block)
		if err != nil {
			return nil, err
		}
		grouped[block.Type] = append(grouped[block.Type], bn)
	}
	for typ, group := range grouped {
		if _, taken := fields[typ]; taken {
			return nil, fmt.Errorf("hclgraph: %q is both an attribute and a block type", typ)
		}
		fields[typ] = node.Sequence(group...)
	}

	return node.Mapping(fields), nil
}

func convertBlock(block *hclsyntax.Block) (*node.Node, error) {
	bn, err := convertBody(block.Body)
	if err != nil {
		return nil, fmt.Errorf("hclgraph: block %q: %w", block.Type, err)
	}
	if len(block.Labels) == 0 {
		return bn, nil
	}
	if _, taken := bn.Field("labels"); taken {
		return nil, fmt.Errorf("hclgraph: block %q: attribute \"labels\" collides with block labels", block.Type)
	}
	labels := make([]*node.Node, len(block.Labels))
	for i, l := range block.Labels {
		labels[i] = node.Scalar(l)
	}
	fields := map[string]*node.Node{"labels": node.Sequence(labels...)}
	for _, name := range bn.FieldNames() {
		f, _ := bn.Field(name)
		fields[name] = f
	}
	return node.Mapping(fields), nil
}
