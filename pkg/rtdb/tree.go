package rtdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// toGeneric round-trips v through JSON so structs, maps and scalars share one shape.
func toGeneric(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(Value); ok {
		v = json.RawMessage(raw)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten writes one leaf per scalar under base. Nulls and empty containers
// produce no leaves, which is how a write of nothing becomes a delete.
func flatten(base string, node any, out map[string][]byte) error {
	switch n := node.(type) {
	case nil:
		return nil
	case map[string]any:
		for k, child := range n {
			if err := ValidateKey(k); err != nil {
				return err
			}
			if err := flatten(Join(base, k), child, out); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, child := range n {
			if err := flatten(Join(base, strconv.Itoa(i)), child, out); err != nil {
				return err
			}
		}
		return nil
	default:
		if base == "" {
			return fmt.Errorf("%w: scalar value at root", ErrInvalidPath)
		}
		raw, err := json.Marshal(n)
		if err != nil {
			return err
		}
		out[base] = raw
		return nil
	}
}

func relative(base, path string) string {
	if base == "" {
		return path
	}
	if path == base {
		return ""
	}
	return strings.TrimPrefix(path, base+"/")
}

// build reassembles the subtree at base from its leaves. It returns nil when
// there are no leaves.
func build(base string, leaves map[string][]byte) any {
	if len(leaves) == 0 {
		return nil
	}
	if raw, ok := leaves[base]; ok && base != "" {
		return json.RawMessage(raw)
	}

	root := map[string]any{}
	for path, raw := range leaves {
		rel := relative(base, path)
		if rel == "" {
			continue
		}
		segs := strings.Split(rel, "/")
		cur := root
		for i, seg := range segs {
			if i == len(segs)-1 {
				cur[seg] = json.RawMessage(raw)
				break
			}
			next, ok := cur[seg].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[seg] = next
			}
			cur = next
		}
	}
	return densify(root)
}

// densify turns maps keyed exactly 0..n-1 back into arrays.
func densify(node any) any {
	m, ok := node.(map[string]any)
	if !ok {
		return node
	}
	for k, v := range m {
		m[k] = densify(v)
	}
	if len(m) == 0 {
		return m
	}
	for i := 0; i < len(m); i++ {
		if _, ok := m[strconv.Itoa(i)]; !ok {
			return m
		}
	}
	arr := make([]any, len(m))
	for i := range arr {
		arr[i] = m[strconv.Itoa(i)]
	}
	return arr
}

func encode(node any) (Value, error) {
	if node == nil {
		return nil, nil
	}
	data, err := json.Marshal(node)
	if err != nil {
		return nil, err
	}
	return Value(data), nil
}

// childGroups splits the leaves under base by their first segment below base.
func childGroups(base string, leaves map[string][]byte) map[string]map[string][]byte {
	groups := map[string]map[string][]byte{}
	for path, raw := range leaves {
		rel := relative(base, path)
		if rel == "" {
			continue
		}
		key := rel
		if idx := strings.IndexByte(rel, '/'); idx >= 0 {
			key = rel[:idx]
		}
		g, ok := groups[key]
		if !ok {
			g = map[string][]byte{}
			groups[key] = g
		}
		g[path] = raw
	}
	return groups
}

func ancestors(path string) []string {
	segs := strings.Split(path, "/")
	out := make([]string, 0, len(segs))
	for i := 1; i < len(segs); i++ {
		out = append(out, strings.Join(segs[:i], "/"))
	}
	sort.Strings(out)
	return out
}
