package dae

import (
	"encoding/xml"
)

type TransformKind int

const (
	TransformMatrix TransformKind = iota
	TransformTranslate
	TransformRotate
	TransformScale
	TransformLookAt
	TransformSkew
)

var transformKinds = map[string]TransformKind{
	"matrix":    TransformMatrix,
	"translate": TransformTranslate,
	"rotate":    TransformRotate,
	"scale":     TransformScale,
	"lookat":    TransformLookAt,
	"skew":      TransformSkew,
}

// TransformOp is one transformation element of a node, in document order.
type TransformOp struct {
	Kind   TransformKind
	SID    string
	Values FloatList
}

type Node struct {
	ID   string
	Name string
	SID  string
	Type string

	Transforms          []*TransformOp
	InstanceGeometries  []*InstanceGeometry
	InstanceControllers []*InstanceGeometry
	InstanceNodes       []*InstanceURL
	Nodes               []*Node
}

func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			n.ID = attr.Value
		case "name":
			n.Name = attr.Value
		case "sid":
			n.SID = attr.Value
		case "type":
			n.Type = attr.Value
		}
	}

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch el := token.(type) {
		case xml.StartElement:
			if kind, ok := transformKinds[el.Name.Local]; ok {
				var v SIDFloats
				if err := d.DecodeElement(&v, &el); err != nil {
					return err
				}
				n.Transforms = append(n.Transforms, &TransformOp{Kind: kind, SID: v.SID, Values: v.Values})
				continue
			}
			switch el.Name.Local {
			case "instance_geometry":
				var inst InstanceGeometry
				if err := d.DecodeElement(&inst, &el); err != nil {
					return err
				}
				n.InstanceGeometries = append(n.InstanceGeometries, &inst)
			case "instance_controller":
				var inst InstanceGeometry
				if err := d.DecodeElement(&inst, &el); err != nil {
					return err
				}
				n.InstanceControllers = append(n.InstanceControllers, &inst)
			case "instance_node":
				var inst InstanceURL
				if err := d.DecodeElement(&inst, &el); err != nil {
					return err
				}
				n.InstanceNodes = append(n.InstanceNodes, &inst)
			case "node":
				child := &Node{}
				if err := d.DecodeElement(child, &el); err != nil {
					return err
				}
				n.Nodes = append(n.Nodes, child)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}
