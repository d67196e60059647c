// Package markdown renders release descriptions as styled terminal markdown.
package markdown

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/releasedesk/internal/cachemanager"
)

// Supported glamour styles.
const (
	StyleDark  = "dark"
	StyleLight = "light"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with a fixed word wrap width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width and style.
// style should be "dark" or "light". Defaults to "dark" if empty.
// A fixed style is used instead of WithAutoStyle, which queries the terminal
// background and leaks the response into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = StyleDark
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s markdown renderer: %w", style, err)
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// renderRequest is the input of a cache miss.
type renderRequest struct {
	width    int
	markdown string
}

// CachedRenderer renders at any width, reusing one glamour renderer per
// width and keeping rendered output in a TTL cache.
type CachedRenderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*Renderer

	cache *cachemanager.ReadThroughCache[string, string, renderRequest]
}

// NewCached creates a CachedRenderer backed by cache.
func NewCached(style string, cache cachemanager.CacheManager[string, string]) *CachedRenderer {
	if style == "" {
		style = StyleDark
	}
	c := &CachedRenderer{
		style:     style,
		renderers: make(map[int]*Renderer),
	}
	c.cache = cachemanager.NewReadThroughCache(cache, c.render, false)
	return c
}

// Style returns the glamour style in use.
func (c *CachedRenderer) Style() string {
	return c.style
}

// Render returns markdown rendered at width. Blank input renders empty.
func (c *CachedRenderer) Render(ctx context.Context, width int, markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}
	width = max(width, 1)
	key := fmt.Sprintf("%s|%d|%s", c.style, width, markdown)
	return c.cache.Get(ctx, key, renderRequest{width: width, markdown: markdown}, cachemanager.DefaultExpiration)
}

func (c *CachedRenderer) render(_ context.Context, req renderRequest) (string, error) {
	r, err := c.rendererFor(req.width)
	if err != nil {
		return "", err
	}
	out, err := r.Render(req.markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

func (c *CachedRenderer) rendererFor(width int) (*Renderer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.renderers[width]; ok {
		return r, nil
	}
	r, err := New(width, c.style)
	if err != nil {
		return nil, err
	}
	c.renderers[width] = r
	return r, nil
}
