// Package http serves the site over echo.
//
// Routes (trailing slashes are accepted, bodies are JSON unless noted):
//   - Lists: /, /{lang}
//   - Posts: /{slug}, /{lang}/{slug}
//   - Tags: /tags, /{lang}/tags, /tags/{tag}, /{lang}/tags/{tag}
//   - Feeds: /rss.xml, /{lang}/rss.xml (RSS), /sitemap.xml (XML), /robots.txt (text)
//   - Preferences: /theme/{mode}, /api/locale
//   - Probes: /health
//
// Invalid identifiers and missing content both answer 404.
package http
