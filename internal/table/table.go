// Package table renders typed collections into sortable, searchable table
// view models. All filtering and sorting happens in memory on derived copies;
// the engine never mutates its input and never performs network calls.
package table

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// SortDir is an explicit sort direction.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

const defaultEmptyMessage = "No results found."

// Column describes one table column. Key names the row field (by JSON tag)
// used for sorting and default display; Cell, when set, takes precedence for
// display. A column with neither a usable Cell nor a resolvable Key renders
// blank cells rather than failing the whole table.
type Column[T any] struct {
	Header   string
	Key      string
	Cell     func(T) string
	Sortable bool
}

// Action describes one per-row menu command. Label and Variant may be static
// or computed from the row, which lets a toggle action (e.g.
// Deactivate/Activate) change its text and styling per row.
type Action[T any] struct {
	Name    string
	Label   Value[T, string]
	Icon    string
	Variant Value[T, string]
}

// Options carries the per-request render state.
type Options struct {
	Query             string
	SortKey           string
	SortDir           SortDir
	Searchable        bool
	SearchPlaceholder string
	SearchableKeys    []string
	Loading           bool
	EmptyMessage      string
}

// ParseOptions reads the table query parameters (q, sort, dir) the UI sends.
// Search is on by default.
func ParseOptions(values url.Values) Options {
	dir := SortDir(values.Get("dir"))
	if dir != Desc {
		dir = Asc
	}
	return Options{
		Query:      values.Get("q"),
		SortKey:    values.Get("sort"),
		SortDir:    dir,
		Searchable: true,
	}
}

// Table binds a row type to its columns and row actions.
type Table[T any] struct {
	ID      func(T) string
	Columns []Column[T]
	Actions []Action[T]
}

// View is the render-ready table model returned to the UI.
type View struct {
	Columns           []ColumnView `json:"columns"`
	Rows              []RowView    `json:"rows"`
	HasActions        bool         `json:"hasActions"`
	Searchable        bool         `json:"searchable"`
	SearchPlaceholder string       `json:"searchPlaceholder,omitempty"`
	Query             string       `json:"query,omitempty"`
	Empty             bool         `json:"empty"`
	EmptyMessage      string       `json:"emptyMessage,omitempty"`
	Loading           bool         `json:"loading,omitempty"`
	Total             int          `json:"total"`
}

// ColumnView is one header cell. NextDir is the direction a click on this
// header should request: toggled on the active sort column, ascending on any
// other sortable column.
type ColumnView struct {
	Header   string  `json:"header"`
	Key      string  `json:"key,omitempty"`
	Sortable bool    `json:"sortable"`
	Active   bool    `json:"active"`
	Dir      SortDir `json:"dir,omitempty"`
	NextDir  SortDir `json:"nextDir,omitempty"`
}

// RowView is one rendered row.
type RowView struct {
	ID      string       `json:"id"`
	Cells   []string     `json:"cells"`
	Actions []ActionView `json:"actions,omitempty"`
}

// ActionView is one resolved row action.
type ActionView struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Icon    string `json:"icon,omitempty"`
	Variant string `json:"variant,omitempty"`
}

// Build filters, sorts and renders rows into a View.
func (t Table[T]) Build(rows []T, opts Options) View {
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = defaultEmptyMessage
	}

	filtered := t.filter(rows, opts)
	sorted := t.sorted(filtered, opts)

	view := View{
		Columns:           t.columnViews(opts),
		Rows:              make([]RowView, 0, len(sorted)),
		HasActions:        len(t.Actions) > 0,
		Searchable:        opts.Searchable,
		SearchPlaceholder: opts.SearchPlaceholder,
		Query:             opts.Query,
		Loading:           opts.Loading,
		Total:             len(sorted),
	}

	for _, row := range sorted {
		view.Rows = append(view.Rows, t.rowView(row))
	}
	if len(view.Rows) == 0 {
		view.Empty = true
		view.EmptyMessage = opts.EmptyMessage
	}
	return view
}

// filter keeps a row iff any of its stringified field values contains the
// case-folded query. By default every exported field participates, including
// ones never shown as a column (broad recall on purpose); SearchableKeys
// narrows the scan when set.
func (t Table[T]) filter(rows []T, opts Options) []T {
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	if !opts.Searchable || query == "" {
		out := make([]T, len(rows))
		copy(out, rows)
		return out
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, value := range searchValues(row, opts.SearchableKeys) {
			if value != "" && strings.Contains(strings.ToLower(value), query) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// sorted stable-sorts rows by the active sort key, if that key belongs to a
// sortable column. The input slice is already a derived copy.
func (t Table[T]) sorted(rows []T, opts Options) []T {
	if opts.SortKey == "" || !t.sortableKey(opts.SortKey) {
		return rows
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a := fieldByKey(rows[i], opts.SortKey)
		b := fieldByKey(rows[j], opts.SortKey)
		cmp := compareValues(a, b)
		if opts.SortDir == Desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return rows
}

func (t Table[T]) sortableKey(key string) bool {
	for _, col := range t.Columns {
		if col.Sortable && col.Key == key {
			return true
		}
	}
	return false
}

func (t Table[T]) columnViews(opts Options) []ColumnView {
	views := make([]ColumnView, 0, len(t.Columns))
	for _, col := range t.Columns {
		cv := ColumnView{
			Header:   col.Header,
			Key:      col.Key,
			Sortable: col.Sortable && col.Key != "",
		}
		if cv.Sortable {
			cv.NextDir = Asc
			if col.Key == opts.SortKey {
				cv.Active = true
				cv.Dir = opts.SortDir
				if opts.SortDir == Asc {
					cv.NextDir = Desc
				}
			}
		}
		views = append(views, cv)
	}
	return views
}

func (t Table[T]) rowView(row T) RowView {
	rv := RowView{Cells: make([]string, 0, len(t.Columns))}
	if t.ID != nil {
		rv.ID = t.ID(row)
	}
	for _, col := range t.Columns {
		rv.Cells = append(rv.Cells, t.cell(col, row))
	}
	for _, action := range t.Actions {
		rv.Actions = append(rv.Actions, ActionView{
			Name:    action.Name,
			Label:   action.Label.Resolve(row),
			Icon:    action.Icon,
			Variant: action.Variant.Resolve(row),
		})
	}
	return rv
}

// cell renders one cell: the custom renderer wins, then the stringified
// accessor field, then blank for a malformed column.
func (t Table[T]) cell(col Column[T], row T) string {
	if col.Cell != nil {
		return col.Cell(row)
	}
	if col.Key == "" {
		return ""
	}
	v, ok := lookupField(row, col.Key)
	if !ok {
		return ""
	}
	return stringify(v)
}

// fieldCache maps struct type -> json field name -> field index.
var fieldCache sync.Map

func fieldIndexes(t reflect.Type) map[string]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]int)
	}
	indexes := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			if tagName, _, _ := strings.Cut(tag, ","); tagName != "" && tagName != "-" {
				name = tagName
			}
		}
		indexes[name] = i
	}
	fieldCache.Store(t, indexes)
	return indexes
}

func lookupField(row any, key string) (reflect.Value, bool) {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	idx, ok := fieldIndexes(v.Type())[key]
	if !ok {
		return reflect.Value{}, false
	}
	return v.Field(idx), true
}

func fieldByKey(row any, key string) reflect.Value {
	v, _ := lookupField(row, key)
	return v
}

// searchValues stringifies the row's own exported fields. With keys set, only
// those fields participate.
func searchValues(row any, keys []string) []string {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return []string{stringify(v)}
	}

	indexes := fieldIndexes(v.Type())
	if len(keys) > 0 {
		out := make([]string, 0, len(keys))
		for _, key := range keys {
			if idx, ok := indexes[key]; ok {
				out = append(out, stringify(v.Field(idx)))
			}
		}
		return out
	}

	out := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, stringify(v.Field(idx)))
	}
	return out
}

func stringify(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// compareValues is a total three-way comparison: numeric kinds compare
// numerically, strings lexicographically, everything else by stringified form.
func compareValues(a, b reflect.Value) int {
	af, aNum := numeric(a)
	bf, bNum := numeric(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

func numeric(v reflect.Value) (float64, bool) {
	if !v.IsValid() {
		return 0, false
	}
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
