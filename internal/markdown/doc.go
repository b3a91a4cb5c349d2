// Package markdown turns raw content files into structured frontmatter plus a
// Markdown body, renders bodies to HTML with goldmark and derives the reading
// statistics shown next to every post.
package markdown
