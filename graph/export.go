package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

type jsonNode struct {
	ID        NodeID  `json:"id"`
	EventID   string  `json:"event_id"`
	Text      string  `json:"text,omitempty"`
	Timestamp string  `json:"timestamp"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

type jsonEdge struct {
	From   NodeID  `json:"from"`
	To     NodeID  `json:"to"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
	Label  string  `json:"label,omitempty"`
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

// MarshalJSON encodes the graph as flat node and edge lists for external
// tooling. Node entries carry the event id, text, timestamp, and
// coordinates; edge entries carry type, weight, and label.
func (g *NarrativeGraph) MarshalJSON() ([]byte, error) {
	doc := jsonGraph{
		Nodes: make([]jsonNode, 0, len(g.events)),
		Edges: make([]jsonEdge, 0, len(g.edges)),
	}
	for id, ev := range g.events {
		doc.Nodes = append(doc.Nodes, jsonNode{
			ID:        NodeID(id),
			EventID:   ev.ID.String(),
			Text:      ev.Text,
			Timestamp: ev.Timestamp.String(),
			Lat:       ev.Location.Lat,
			Lon:       ev.Location.Lon,
		})
	}
	for _, e := range g.edges {
		doc.Edges = append(doc.Edges, jsonEdge{
			From:   e.From,
			To:     e.To,
			Type:   e.Weight.Type.String(),
			Weight: e.Weight.Weight,
			Label:  e.Weight.Label,
		})
	}
	return json.Marshal(doc)
}

// DOT renders the graph in Graphviz dot syntax. Node labels are the
// event text truncated to 40 runes; edge labels are the type and weight.
func (g *NarrativeGraph) DOT() string {
	var sb strings.Builder
	sb.WriteString("digraph narrative {\n")
	for id, ev := range g.events {
		label := ev.Text
		if runes := []rune(label); len(runes) > 40 {
			label = string(runes[:40])
		}
		fmt.Fprintf(&sb, "  n%d [label=%q];\n", id, label)
	}
	for _, e := range g.edges {
		fmt.Fprintf(&sb, "  n%d -> n%d [label=\"%s %.2f\"];\n", e.From, e.To, e.Weight.Type, e.Weight.Weight)
	}
	sb.WriteString("}\n")
	return sb.String()
}
