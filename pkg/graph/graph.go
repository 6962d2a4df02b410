package graph

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// Group 是一次分组的结果：一个键和落到这个键下的成员
type Group struct {
	Key     string
	Members []string
}

// 键节点和成员节点分开命名，避免键 "5" 和成员 "5" 撞成一个节点
func keyNode(key string) string       { return strconv.Quote("k:" + key) }
func memberNode(member string) string { return strconv.Quote("m:" + member) }

// FromGroups 把分组结果画成二部图: 键节点 -> 成员节点
// 级联分组(次数 -> 单词)画出来就是每个出现次数下挂着哪些单词
func FromGroups(name string, groups []Group) (*gographviz.Graph, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(strconv.Quote(name)); err != nil {
		return nil, err
	}
	if err := g.SetDir(true); err != nil {
		return nil, err
	}
	if err := g.AddAttr(g.Name, "rankdir", "LR"); err != nil {
		return nil, err
	}

	for _, grp := range groups {
		kn := keyNode(grp.Key)
		if err := g.AddNode(g.Name, kn, map[string]string{
			"label": strconv.Quote(grp.Key),
			"shape": "box",
		}); err != nil {
			return nil, fmt.Errorf("add key node %s: %w", grp.Key, err)
		}
		for _, m := range grp.Members {
			mn := memberNode(m)
			if err := g.AddNode(g.Name, mn, map[string]string{
				"label": strconv.Quote(m),
			}); err != nil {
				return nil, fmt.Errorf("add member node %s: %w", m, err)
			}
			if err := g.AddEdge(kn, mn, true, nil); err != nil {
				return nil, fmt.Errorf("add edge %s -> %s: %w", grp.Key, m, err)
			}
		}
	}
	return g, nil
}

// RenderDOT 生成 DOT 文本，可以直接交给 dot -Tsvg
func RenderDOT(name string, groups []Group) (string, error) {
	g, err := FromGroups(name, groups)
	if err != nil {
		return "", err
	}
	return g.String(), nil
}

// ToAdjacencyMap 将 gographviz.Graph 图结构转换为邻接表形式
func ToAdjacencyMap(g *gographviz.Graph) map[string][]string {
	adj := make(map[string][]string)
	for src, dstGroup := range g.Edges.SrcToDsts {
		for _, edges := range dstGroup {
			for _, edge := range edges {
				adj[src] = append(adj[src], edge.Dst)
			}
		}
	}
	return adj
}
