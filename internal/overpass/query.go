package overpass

import (
	"fmt"
	"strings"

	"github.com/sells-group/scenefetch/internal/geobox"
)

// elementKinds are the Overpass element types queried per box, in output order.
var elementKinds = []string{"node", "way", "relation"}

// BuildQuery renders the Overpass QL body for one scene box. The query asks
// for XML output, sets the server-side timeout, selects all nodes, ways, and
// relations inside the box, recurses into referenced members, and emits the
// remaining geometry as a quadtree-ordered skeleton.
func BuildQuery(box geobox.Box, serverTimeoutSecs int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[out:xml][timeout:%d];\n", serverTimeoutSecs)
	b.WriteString("(\n")
	for _, kind := range elementKinds {
		fmt.Fprintf(&b, "  %s(%v,%v,%v,%v);\n", kind, box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)
	}
	b.WriteString(");\n")
	b.WriteString("out body;\n")
	b.WriteString(">;\n")
	b.WriteString("out skel qt;\n")
	return b.String()
}
