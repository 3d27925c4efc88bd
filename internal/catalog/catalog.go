// Package catalog holds the registry of known widget and service kinds.
// The builtin catalog covers every kind the app ships with; a JSON catalog
// file can extend or override it at startup.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/homedash/homedash-backend/internal/models"
)

// WidgetDef describes one widget kind.
type WidgetDef struct {
	Type            models.WidgetType `json:"type"`
	Name            string            `json:"name"`
	DefaultTitle    string            `json:"default_title"`
	DefaultSize     models.WidgetSize `json:"default_size"`
	DefaultSettings map[string]any    `json:"default_settings,omitempty"`
}

// ServiceDef describes one connectable service kind.
type ServiceDef struct {
	Type models.ServiceType `json:"type"`
	Name string             `json:"name"`
}

type catalogFile struct {
	Widgets  []WidgetDef  `json:"widgets"`
	Services []ServiceDef `json:"services"`
}

type Catalog struct {
	mu       sync.RWMutex
	widgets  map[models.WidgetType]*WidgetDef
	services map[models.ServiceType]*ServiceDef
}

func New() *Catalog {
	return &Catalog{
		widgets:  make(map[models.WidgetType]*WidgetDef),
		services: make(map[models.ServiceType]*ServiceDef),
	}
}

// Load returns the builtin catalog, extended by the JSON file at path when
// path is non-empty.
func Load(path string) (*Catalog, error) {
	c := Builtin()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for i := range file.Widgets {
		c.RegisterWidget(&file.Widgets[i])
	}
	for i := range file.Services {
		c.RegisterService(&file.Services[i])
	}
	return c, nil
}

func (c *Catalog) RegisterWidget(def *WidgetDef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.widgets[def.Type] = def
}

func (c *Catalog) RegisterService(def *ServiceDef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[def.Type] = def
}

func (c *Catalog) Widget(t models.WidgetType) *WidgetDef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.widgets[t]
}

func (c *Catalog) Service(t models.ServiceType) *ServiceDef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.services[t]
}

func (c *Catalog) HasWidget(t models.WidgetType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.widgets[t]
	return ok
}

func (c *Catalog) HasService(t models.ServiceType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.services[t]
	return ok
}

// Widgets returns the known widget kinds sorted by type.
func (c *Catalog) Widgets() []*WidgetDef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*WidgetDef, 0, len(c.widgets))
	for _, def := range c.widgets {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}

// Services returns the known service kinds sorted by type.
func (c *Catalog) Services() []*ServiceDef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*ServiceDef, 0, len(c.services))
	for _, def := range c.services {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}
