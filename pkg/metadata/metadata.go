// Package metadata captures page metadata for the lesson currently on
// screen: document title, meta tags, and a plain-text reduction of the
// lesson body. Everything here is best-effort; a page that yields nothing
// produces an empty capture, never an error that disturbs the run.
package metadata

import (
	"fmt"

	"github.com/entrhq/coursepilot/pkg/autoplay"
)

const (
	scriptDocumentTitle = "() => document.title"
	scriptBodyHTML      = "() => document.body ? document.body.innerHTML : ''"

	// maxBodyText bounds the captured body excerpt
	maxBodyText = 2000
)

// Collector captures metadata through the page surface.
type Collector struct {
	surface autoplay.Surface
}

// NewCollector creates a collector bound to a surface.
func NewCollector(surface autoplay.Surface) *Collector {
	return &Collector{surface: surface}
}

// Inspect captures the current page's metadata as a flat map: "title",
// "name:<meta name>", "property:<meta property>", and "body" for the text
// excerpt. Implements autoplay.Inspector.
func (c *Collector) Inspect() map[string]string {
	meta := make(map[string]string)

	if v, st := c.surface.Evaluate(scriptDocumentTitle, nil); st == autoplay.StatusFound {
		if title, ok := v.(string); ok && title != "" {
			meta["title"] = title
		}
	}

	c.collectTags(meta, "meta[name]", "name")
	c.collectTags(meta, "meta[property]", "property")

	if v, st := c.surface.Evaluate(scriptBodyHTML, nil); st == autoplay.StatusFound {
		if raw, ok := v.(string); ok && raw != "" {
			if text := ExtractText(raw, maxBodyText); text != "" {
				meta["body"] = text
			}
		}
	}

	return meta
}

// collectTags reads every matching meta element's key attribute and content.
func (c *Collector) collectTags(meta map[string]string, selector, keyAttr string) {
	tags := c.surface.Locate(selector)
	n, st := tags.Count()
	if st != autoplay.StatusFound {
		return
	}
	for i := 0; i < n; i++ {
		tag := tags.Nth(i)
		key, st := tag.Attribute(keyAttr)
		if st != autoplay.StatusFound || key == "" {
			continue
		}
		content, st := tag.Attribute("content")
		if st != autoplay.StatusFound || content == "" {
			continue
		}
		meta[fmt.Sprintf("%s:%s", keyAttr, key)] = content
	}
}
