package keycache

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/keycache/internal/dblist"
	"github.com/unkn0wn-root/keycache/internal/expire"
)

// rawNode and rawItem hold attribute text exactly as read; empty means absent.
type rawNode struct {
	name   string
	db     string
	expire string
	items  []rawItem
}

type rawItem struct {
	name   string
	key    string
	db     string
	expire string
}

var errNoRoot = errors.New("no root element")

// decodeXML reads root -> node elements -> item elements. Deeper elements,
// text and comments are ignored.
func decodeXML(r io.Reader) ([]rawNode, error) {
	dec := xml.NewDecoder(r)
	var (
		nodes []rawNode
		depth int
		root  bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				root = true
			case 2:
				nodes = append(nodes, rawNode{
					name:   t.Name.Local,
					db:     attr(t, "db"),
					expire: attr(t, "expire"),
				})
			case 3:
				n := &nodes[len(nodes)-1]
				n.items = append(n.items, rawItem{
					name:   t.Name.Local,
					key:    attr(t, "key"),
					db:     attr(t, "db"),
					expire: attr(t, "expire"),
				})
			}
		case xml.EndElement:
			depth--
		}
	}
	if !root {
		return nil, errNoRoot
	}
	return nodes, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// decodeYAML reads a single-key root mapping:
//
//	cache:
//	  HashDb:
//	    db: 0-2
//	    expire: "0:30:0"
//	    items:
//	      Users: { key: users }
func decodeYAML(r io.Reader) ([]rawNode, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errNoRoot
		}
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, errNoRoot
	}
	top := doc.Content[0]
	if top.Kind != yaml.MappingNode || len(top.Content) != 2 {
		return nil, fmt.Errorf("line %d: expected a single root element", top.Line)
	}
	body := top.Content[1]
	if isNull(body) {
		return nil, nil
	}
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: root %q must be a mapping", body.Line, top.Content[0].Value)
	}

	nodes := make([]rawNode, 0, len(body.Content)/2)
	for i := 0; i+1 < len(body.Content); i += 2 {
		name, val := body.Content[i], body.Content[i+1]
		n := rawNode{name: name.Value}
		if !isNull(val) {
			if val.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: node %q must be a mapping", val.Line, name.Value)
			}
			var err error
			if n.db, err = scalar(val, "db"); err != nil {
				return nil, err
			}
			if n.expire, err = scalar(val, "expire"); err != nil {
				return nil, err
			}
			if n.items, err = yamlItems(name.Value, lookup(val, "items")); err != nil {
				return nil, err
			}
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func yamlItems(node string, m *yaml.Node) ([]rawItem, error) {
	if m == nil || isNull(m) {
		return nil, nil
	}
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: items of %q must be a mapping", m.Line, node)
	}
	items := make([]rawItem, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		name, val := m.Content[i], m.Content[i+1]
		it := rawItem{name: name.Value}
		if !isNull(val) {
			if val.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: item %s/%s must be a mapping", val.Line, node, name.Value)
			}
			var err error
			if it.key, err = scalar(val, "key"); err != nil {
				return nil, err
			}
			if it.db, err = scalar(val, "db"); err != nil {
				return nil, err
			}
			if it.expire, err = scalar(val, "expire"); err != nil {
				return nil, err
			}
		}
		items = append(items, it)
	}
	return items, nil
}

func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func scalar(m *yaml.Node, key string) (string, error) {
	v := lookup(m, key)
	if v == nil || isNull(v) {
		return "", nil
	}
	if v.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: %q must be a scalar", v.Line, key)
	}
	return v.Value, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// buildConfigs applies node defaults and item overrides.
func buildConfigs(nodes []rawNode, log Logger, hooks Hooks) []*KeyConfig {
	total := 0
	for _, n := range nodes {
		total += len(n.items)
	}
	out := make([]*KeyConfig, 0, total)
	for _, n := range nodes {
		nodeDb, _ := parseDb(n.name, "", n.db, log, hooks)
		nodeExpire := parseExpire(n.name, "", n.expire, 0, log, hooks)

		for _, it := range n.items {
			db, present := parseDb(n.name, it.name, it.db, log, hooks)
			if !present {
				db = nodeDb // a present but empty list pins the item to db 0
			}
			exp := parseExpire(n.name, it.name, it.expire, nodeExpire, log, hooks)
			out = append(out, NewKeyConfig(n.name, it.name, it.key, exp, db))
		}
	}
	return out
}

func parseDb(node, item, spec string, log Logger, hooks Hooks) ([]int, bool) {
	return dblist.ParseFunc(spec, func(tok string) {
		log.Warn("skipped invalid db token", Fields{"node": node, "item": item, "token": tok})
		hooks.DbTokenSkipped(node, item, tok)
	})
}

func parseExpire(node, item, raw string, def time.Duration, log Logger, hooks Hooks) time.Duration {
	if raw == "" {
		return def
	}
	d, ok := expire.Parse(raw)
	if !ok {
		log.Warn("ignored invalid expire", Fields{"node": node, "item": item, "expire": raw})
		hooks.ExpireIgnored(node, item, raw)
		return def
	}
	return d
}
