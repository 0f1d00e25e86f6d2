package catalog

// Entity identifies a record type with its own column catalog and view state.
type Entity string

const (
	EntityJobSeeker        Entity = "job_seeker"
	EntityTask             Entity = "task"
	EntityTemplateDocument Entity = "template_document"
)

func (e Entity) Valid() bool {
	switch e {
	case EntityJobSeeker, EntityTask, EntityTemplateDocument:
		return true
	}
	return false
}

// storagePrefix matches the browser-era local storage naming
// ("jobSeekerColumnOrder", "taskFavorites", ...).
func (e Entity) storagePrefix() string {
	switch e {
	case EntityJobSeeker:
		return "jobSeeker"
	case EntityTask:
		return "task"
	case EntityTemplateDocument:
		return "templateDocument"
	}
	return string(e)
}

func (e Entity) ColumnOrderKey() string {
	return e.storagePrefix() + "ColumnOrder"
}

func (e Entity) FavoritesKey() string {
	return e.storagePrefix() + "Favorites"
}

type FilterType string

const (
	FilterText   FilterType = "text"
	FilterSelect FilterType = "select"
	FilterNumber FilterType = "number"
)

// Column describes one displayable, sortable, filterable table column.
type Column struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	Sortable   bool       `json:"sortable"`
	FilterType FilterType `json:"filterType"`
	FieldType  string     `json:"fieldType,omitempty"`
	LookupType string     `json:"lookupType,omitempty"`
	Options    []string   `json:"options,omitempty"`
}

// SchemaField is one admin-defined field as reported by the upstream
// field-management endpoint, already normalized from its response envelope.
type SchemaField struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Hidden     bool     `json:"hidden"`
	LookupType string   `json:"lookupType,omitempty"`
	Options    []string `json:"options,omitempty"`
}

// Catalog is the ordered, duplicate-free set of columns for an entity.
type Catalog struct {
	Entity  Entity   `json:"entity"`
	Columns []Column `json:"columns"`

	index map[string]int
}

func newCatalog(entity Entity, columns []Column) *Catalog {
	c := &Catalog{Entity: entity, Columns: columns, index: make(map[string]int, len(columns))}
	for i, col := range columns {
		c.index[col.Key] = i
	}
	return c
}

// Keys returns column keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		keys[i] = col.Key
	}
	return keys
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Column returns the descriptor for key, if present.
func (c *Catalog) Column(key string) (Column, bool) {
	i, ok := c.index[key]
	if !ok {
		return Column{}, false
	}
	return c.Columns[i], true
}
