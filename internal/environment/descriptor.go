package environment

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Descriptor is the serialized form of an environment: identifiers only, so a
// consumer holding an equivalent registry can rebuild it.
type Descriptor struct {
	DataTypes []string     `hcl:"data_types" cty:"data_types"`
	Contexts  []string     `hcl:"contexts,optional" cty:"contexts"`
	Groups    []GroupBlock `hcl:"group,block" cty:"groups"`
}

// GroupBlock is one group of a Descriptor, labelled with its decoder id.
type GroupBlock struct {
	Decoder string   `hcl:"decoder,label" cty:"decoder"`
	Name    string   `hcl:"name,optional" cty:"name"`
	Members []string `hcl:"members,optional" cty:"members"`
	Tag     string   `hcl:"tag,optional" cty:"tag"`
}

var descriptorType = cty.Object(map[string]cty.Type{
	"data_types": cty.List(cty.String),
	"contexts":   cty.List(cty.String),
	"groups": cty.List(cty.Object(map[string]cty.Type{
		"decoder": cty.String,
		"name":    cty.String,
		"members": cty.List(cty.String),
		"tag":     cty.String,
	})),
})

// Describe returns the descriptor of e.
func (e *Environment) Describe() Descriptor {
	d := Descriptor{
		DataTypes: make([]string, 0, len(e.dataTypes)),
		Contexts:  make([]string, 0, len(e.contexts)),
		Groups:    make([]GroupBlock, 0, len(e.groups)),
	}
	for _, t := range e.dataTypes {
		d.DataTypes = append(d.DataTypes, t.ID())
	}
	for _, c := range e.contexts {
		d.Contexts = append(d.Contexts, c.ID())
	}
	for _, g := range e.groups {
		spec := g.Spec()
		members := spec.Members
		if members == nil {
			members = []string{}
		}
		d.Groups = append(d.Groups, GroupBlock{Decoder: spec.Decoder, Name: spec.Name, Members: members, Tag: spec.Tag})
	}
	return d
}

// Resolve rebuilds an environment from d, resolving every id through r.
func (d Descriptor) Resolve(r *registry.Registry) (*Environment, error) {
	dataTypes := make([]datatype.Type, 0, len(d.DataTypes))
	for _, id := range d.DataTypes {
		t, ok := r.DataTypes().Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown data type '%s'", id)
		}
		dataTypes = append(dataTypes, t)
	}
	contexts := make([]ctxtype.Type, 0, len(d.Contexts))
	for _, id := range d.Contexts {
		c, ok := r.ContextTypes().Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown context type '%s'", id)
		}
		contexts = append(contexts, c)
	}
	groups := make([]node.Group, 0, len(d.Groups))
	for _, block := range d.Groups {
		g, err := r.DecodeGroup(node.GroupSpec{Decoder: block.Decoder, Name: block.Name, Members: block.Members, Tag: block.Tag})
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return New(dataTypes, contexts, groups)
}

// EncodeHCL renders e as an HCL descriptor document.
func (e *Environment) EncodeHCL() []byte {
	d := e.Describe()
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("data_types", stringList(d.DataTypes))
	body.SetAttributeValue("contexts", stringList(d.Contexts))
	for _, g := range d.Groups {
		body.AppendNewline()
		block := body.AppendNewBlock("group", []string{g.Decoder})
		switch g.Decoder {
		case node.TagDecoder:
			block.Body().SetAttributeValue("tag", cty.StringVal(g.Tag))
		default:
			block.Body().SetAttributeValue("name", cty.StringVal(g.Name))
			block.Body().SetAttributeValue("members", stringList(g.Members))
		}
	}
	return f.Bytes()
}

// DecodeHCL parses an environment descriptor and resolves it through r. Files
// ending in .json are read as HCL JSON syntax.
func DecodeHCL(r *registry.Registry, src []byte, filename string) (*Environment, error) {
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
		return nil, fmt.Errorf("failed to parse environment %s: %w", filename, diags)
	}

	var d Descriptor
	if diags := gohcl.DecodeBody(file.Body, nil, &d); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode environment %s: %w", filename, diags)
	}
	return d.Resolve(r)
}

// MarshalJSON encodes the descriptor of e as cty JSON.
func (e *Environment) MarshalJSON() ([]byte, error) {
	val, err := gocty.ToCtyValue(e.Describe(), descriptorType)
	if err != nil {
		return nil, fmt.Errorf("failed to convert environment: %w", err)
	}
	return ctyjson.Marshal(val, descriptorType)
}

// UnmarshalJSON decodes a descriptor produced by MarshalJSON and resolves it
// through r.
func UnmarshalJSON(r *registry.Registry, data []byte) (*Environment, error) {
	val, err := ctyjson.Unmarshal(data, descriptorType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment json: %w", err)
	}
	var d Descriptor
	if err := gocty.FromCtyValue(val, &d); err != nil {
		return nil, fmt.Errorf("failed to decode environment json: %w", err)
	}
	return d.Resolve(r)
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
