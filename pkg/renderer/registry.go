package renderer

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sort"
	"strings"
	"sync"
)

// Registry maps renderer names to factories and keeps the renderers built
// from them.
type Registry struct {
	factories   map[string]Factory
	options     map[string]map[string]any
	renderers   map[string]Renderer
	mediaTypes  map[string]string
	cfg         Config
	defaultName string
	mu          sync.RWMutex
}

// NewRegistry returns a registry with the built-in renderers registered.
// The default renderer is stdlib_format; JSON and YAML media types default to
// json_dump and yaml_dump.
func NewRegistry() *Registry {
	r := &Registry{
		factories:   make(map[string]Factory),
		options:     make(map[string]map[string]any),
		renderers:   make(map[string]Renderer),
		mediaTypes:  make(map[string]string),
		defaultName: Format,
		cfg:         Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
	}

	r.Register(Format, NewFormat)
	r.Register(TextTemplate, NewTextTemplate)
	r.Register(HTMLTemplate, NewHTMLTemplate)
	r.Register(Markdown, NewMarkdown)
	r.Register(JSONDump, NewJSONDump)
	r.Register(YAMLDump, NewYAMLDump)
	r.Register(Raw, NewRaw)

	r.SetMediaTypeDefault("application/json", JSONDump)
	r.SetMediaTypeDefault("application/yaml", YAMLDump)

	return r
}

// Register adds or replaces a factory. A renderer already built under the
// same name is dropped so the next use builds it from the new factory.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
	delete(r.renderers, name)
}

// SetOptions sets the options passed to the named factory.
func (r *Registry) SetOptions(name string, opts map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options[name] = maps.Clone(opts)
	delete(r.renderers, name)
}

// SetDefault sets the renderer used when neither the page nor its media type
// names one.
func (r *Registry) SetDefault(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultName = name
}

// SetMediaTypeDefault sets the renderer used for pages of mediaType that do
// not name one.
func (r *Registry) SetMediaTypeDefault(mediaType, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mediaTypes[strings.ToLower(mediaType)] = name
}

// Names returns the registered renderer names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configure builds every registered renderer with cfg. The first factory
// failure is returned, so a missing backend stops startup instead of the
// first request.
func (r *Registry) Configure(cfg Config) error {
	if cfg.Logger == nil {
		cfg.Logger = r.cfg.Logger
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cfg = cfg
	r.renderers = make(map[string]Renderer, len(r.factories))

	for name := range r.factories {
		if _, err := r.build(name); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the renderer name for a page. An explicit name must be
// registered; otherwise the media type default or the registry default is used.
func (r *Registry) Resolve(name, mediaType string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.mediaTypes[strings.ToLower(mediaType)]
	}
	if name == "" {
		name = r.defaultName
	}
	if _, ok := r.factories[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return name, nil
}

// Renderer returns the renderer built for name, building it on first use if
// Configure has not run.
func (r *Registry) Renderer(name string) (Renderer, error) {
	r.mu.RLock()
	rd, ok := r.renderers[name]
	r.mu.RUnlock()
	if ok {
		return rd, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.build(name)
}

// Compile compiles raw with the named renderer.
func (r *Registry) Compile(name, filepath string, raw []byte) (RenderFunc, error) {
	rd, err := r.Renderer(name)
	if err != nil {
		return nil, err
	}
	fn, err := rd.Compile(filepath, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%s): %w", ErrCompile, filepath, name, err)
	}
	return fn, nil
}

// build creates the renderer for name. Caller must hold the write lock.
func (r *Registry) build(name string) (Renderer, error) {
	if rd, ok := r.renderers[name]; ok {
		return rd, nil
	}

	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}

	cfg := r.cfg
	cfg.Options = r.options[name]

	rd, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, name, err)
	}
	r.renderers[name] = rd

	cfg.Logger.Debug("renderer configured", slog.String("renderer", name))
	return rd, nil
}
