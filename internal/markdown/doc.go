// Package markdown converts Markdown documents into HTML with goldmark and
// splits off optional YAML front matter.
package markdown
