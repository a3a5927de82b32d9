package graph

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/zclconf/go-cty/cty"
)

type document struct {
	Nodes       []nodeBlock       `hcl:"node,block"`
	Connections []connectionBlock `hcl:"connection,block"`
}

type nodeBlock struct {
	Type     string            `hcl:"type,label"`
	ID       *string           `hcl:"id,optional"`
	X        int               `hcl:"x,optional"`
	Y        int               `hcl:"y,optional"`
	Tag      string            `hcl:"tag,optional"`
	Nickname *string           `hcl:"nickname,optional"`
	Config   map[string]string `hcl:"config,optional"`
	// Remain keeps fields written by newer versions from failing the decode.
	Remain hcl.Body `hcl:",remain"`
}

type connectionBlock struct {
	TargetNode string `hcl:"target_node,optional"`
	TargetPort string `hcl:"target_port,optional"`
	SourceNode string `hcl:"source_node,optional"`
	SourcePort string `hcl:"source_port,optional"`
}

// Encode renders the graph as an HCL document. Nodes and connections appear in
// insertion order.
func (g *Graph) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, n := range g.Nodes() {
		if i > 0 {
			body.AppendNewline()
		}
		meta := n.Meta()
		nb := body.AppendNewBlock("node", []string{meta.Type().ID()}).Body()
		nb.SetAttributeValue("id", cty.StringVal(meta.ID().String()))
		nb.SetAttributeValue("x", cty.NumberIntVal(int64(meta.X)))
		nb.SetAttributeValue("y", cty.NumberIntVal(int64(meta.Y)))
		nb.SetAttributeValue("tag", cty.StringVal(meta.Tag.String()))
		if meta.Nickname != nil {
			nb.SetAttributeValue("nickname", cty.StringVal(*meta.Nickname))
		}
		if c, ok := n.(node.Configurable); ok {
			if cfg := c.Config(); len(cfg) > 0 {
				nb.SetAttributeValue("config", configValue(cfg))
			}
		}
	}

	for _, c := range g.connOrder {
		body.AppendNewline()
		cb := body.AppendNewBlock("connection", nil).Body()
		cb.SetAttributeValue("target_node", cty.StringVal(c.TargetNode.String()))
		cb.SetAttributeValue("target_port", cty.StringVal(c.TargetPort))
		cb.SetAttributeValue("source_node", cty.StringVal(c.SourceNode.String()))
		cb.SetAttributeValue("source_port", cty.StringVal(c.SourcePort))
	}

	return f.Bytes()
}

func configValue(cfg map[string]string) cty.Value {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vals := make(map[string]cty.Value, len(cfg))
	for _, k := range keys {
		vals[k] = cty.StringVal(cfg[k])
	}
	return cty.MapVal(vals)
}

// Decode replaces the contents of the graph with the document in src. Files
// ending in .json are read as HCL JSON syntax. Syntax errors fail the decode
// and leave the graph untouched; unknown node types and dangling connections
// are dropped with a warning.
func (g *Graph) Decode(ctx context.Context, src []byte, filename string) error {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse graph %s: %w", filename, diags)
	}

	var doc document
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return fmt.Errorf("failed to decode graph %s: %w", filename, diags)
	}

	g.nodes = make(map[uuid.UUID]node.Node, len(doc.Nodes))
	g.order = nil
	g.connections = make(map[Connection]struct{}, len(doc.Connections))
	g.connOrder = nil

	ignored := make(map[uuid.UUID]bool)
	for _, block := range doc.Nodes {
		g.decodeNode(ctx, block, ignored)
	}

	for _, block := range doc.Connections {
		c, ok := parseConnection(block)
		if !ok {
			logger.Warn("Found malformed connection data. Removing.", "connection", block)
			continue
		}
		if g.acceptConnection(ctx, c, ignored) {
			g.addConnection(c)
		}
	}

	logger.Debug("Decoded graph.", "file", filename, "nodes", len(g.order), "connections", len(g.connOrder))
	return nil
}

func (g *Graph) decodeNode(ctx context.Context, block nodeBlock, ignored map[uuid.UUID]bool) {
	logger := ctxlog.FromContext(ctx)

	var id uuid.UUID
	hasID := false
	if block.ID != nil {
		parsed, err := uuid.Parse(*block.ID)
		if err != nil {
			logger.Warn("Found invalid node id. Using a new one.", "id", *block.ID, "type", block.Type)
		} else {
			id, hasID = parsed, true
		}
	}

	t, ok := g.reg.NodeType(block.Type)
	if !ok {
		logger.Warn("Unknown node type. Ignoring node.", "type", block.Type)
		if hasID {
			ignored[id] = true
		}
		return
	}
	if !g.env.IsAllowedNodeType(t) {
		logger.Warn("Unsupported node type. Ignoring node.", "type", block.Type)
		if hasID {
			ignored[id] = true
		}
		return
	}

	n := t.New(g.env)
	meta := n.Meta()
	if hasID {
		meta.SetID(id)
	}
	meta.X, meta.Y = block.X, block.Y
	meta.Tag = node.ParseTag(block.Tag)
	meta.Nickname = block.Nickname

	if c, ok := n.(node.Configurable); ok && block.Config != nil {
		if err := c.LoadConfig(block.Config, g.env); err != nil {
			logger.Warn("Invalid node configuration. Using defaults.", "id", meta.ID(), "type", block.Type, "error", err)
		}
	}
	g.AddNode(ctx, n)
}

func parseConnection(block connectionBlock) (Connection, bool) {
	target, err := uuid.Parse(block.TargetNode)
	if err != nil {
		return Connection{}, false
	}
	source, err := uuid.Parse(block.SourceNode)
	if err != nil {
		return Connection{}, false
	}
	return Connection{TargetNode: target, TargetPort: block.TargetPort, SourceNode: source, SourcePort: block.SourcePort}, true
}

// acceptConnection checks a decoded connection. Connections to ignored nodes
// are dropped silently; other dangling connections are logged.
func (g *Graph) acceptConnection(ctx context.Context, c Connection, ignored map[uuid.UUID]bool) bool {
	if ignored[c.TargetNode] || ignored[c.SourceNode] {
		return false
	}
	logger := ctxlog.FromContext(ctx)

	for _, id := range []uuid.UUID{c.TargetNode, c.SourceNode} {
		if _, ok := g.nodes[id]; !ok {
			logger.Warn("Found connection to non-existent node.", "id", id)
			ignored[id] = true
			return false
		}
	}
	if _, ok := c.TargetConnector(g); !ok {
		logger.Warn("Found connection to non-existent input.", "name", c.TargetPort, "node", c.TargetNode)
		return false
	}
	if _, ok := c.SourceConnector(g); !ok {
		logger.Warn("Found connection to non-existent output.", "name", c.SourcePort, "node", c.SourceNode)
		return false
	}
	return true
}
