package generator

import (
	"fmt"
	"strings"
)

// BuildRobots allows every crawler and points at the sitemap when one is
// generated.
func BuildRobots(site SiteMetadata, includeSitemap bool) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	if includeSitemap {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", site.Base()))
	}
	return b.String()
}
