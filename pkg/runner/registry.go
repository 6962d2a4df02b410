package runner

import (
	"fmt"

	"github.com/armon/go-radix"
)

// Registry 按名字保存例程，radix 树天然按字典序遍历，前缀查找也直接支持
type Registry struct {
	tree *radix.Tree
}

func NewRegistry(routines ...Routine) (*Registry, error) {
	r := &Registry{tree: radix.New()}
	for _, rt := range routines {
		if err := r.Register(rt); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register 名字为空或者重复时返回错误
func (r *Registry) Register(rt Routine) error {
	if rt.Name == "" {
		return fmt.Errorf("routine name is empty")
	}
	if rt.Run == nil {
		return fmt.Errorf("routine %s has no Run", rt.Name)
	}
	if _, exists := r.tree.Get(rt.Name); exists {
		return fmt.Errorf("routine %s registered twice", rt.Name)
	}
	r.tree.Insert(rt.Name, rt)
	return nil
}

func (r *Registry) Get(name string) (Routine, bool) {
	v, ok := r.tree.Get(name)
	if !ok {
		return Routine{}, false
	}
	return v.(Routine), true
}

func (r *Registry) Len() int {
	return r.tree.Len()
}

// Select 返回名字以 prefix 开头的例程，按字典序；prefix 为空返回全部
func (r *Registry) Select(prefix string) []Routine {
	var out []Routine
	r.tree.WalkPrefix(prefix, func(_ string, v any) bool {
		out = append(out, v.(Routine))
		return false
	})
	return out
}

// Lookup 先精确匹配，再看前缀是否唯一，方便命令行只敲开头几个字母
func (r *Registry) Lookup(name string) (Routine, error) {
	if rt, ok := r.Get(name); ok {
		return rt, nil
	}
	candidates := r.Select(name)
	switch len(candidates) {
	case 0:
		return Routine{}, fmt.Errorf("%w: %s", ErrUnknownRoutine, name)
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		return Routine{}, fmt.Errorf("%w: %s matches %v", ErrAmbiguousRoutine, name, names)
	}
}
