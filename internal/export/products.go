package export

import (
	"fmt"
	"iter"
	"regexp"
	"sort"
	"strings"

	"github.com/mesh-intelligence/tabulate/internal/cell"
)

// Fixed tables written for a product catalog.
const (
	TableProducts   = "products"
	TableVariants   = "variants"
	TableCategories = "categories"
)

var (
	productColumns = []string{
		"reference", "name", "description", "brand",
		"price", "retail_price", "sale_price", "cost_price",
		"weight", "width", "height", "depth",
		"images", "category_references",
	}
	variantColumns = []string{
		"variant_reference", "product_reference",
		"price", "retail_price", "sale_price", "cost_price",
		"weight", "width", "height", "depth",
		"upc", "inventory_level",
	}
	categoryColumns = []string{"category_reference", "category_name", "parent_reference"}
)

// numericFields are emitted bare, in this order, for products and variants.
var numericFields = []string{
	"price", "retail_price", "sale_price", "cost_price",
	"weight", "width", "height", "depth",
}

// htmlComment matches <!-- ... --> spans, non-greedy, across newlines.
var htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)

type product struct {
	reference   string
	name        string
	description string
	brand       string
	numbers     []any
	images      string
	categories  string
	variants    []variant
}

type variant struct {
	reference string
	numbers   []any
	upc       string
	inventory any
}

// categorySet collects distinct trimmed category names.
type categorySet map[string]struct{}

func (s categorySet) add(name string) {
	s[name] = struct{}{}
}

// sorted returns the names in lexicographic order.
func (s categorySet) sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// catalog is the materialized view of a product array.
type catalog struct {
	products   []product
	variants   int
	categories []string
}

// units is the number of rows the catalog will emit across its three tables.
func (c catalog) units() int {
	return len(c.products) + c.variants + len(c.categories)
}

// buildCatalog derives product, variant, and category views from the raw
// product array. Entries that are not objects are skipped and logged.
func (e *Engine) buildCatalog(items []any, p *progress) catalog {
	var c catalog
	seen := make(categorySet)

	for i, item := range items {
		p.tick()
		m, ok := item.(map[string]any)
		if !ok {
			e.hooks.Log(fmt.Sprintf("skipping product %d: not an object", i))
			continue
		}
		prod := newProduct(m, seen)
		for j, raw := range asList(m["variants"]) {
			vm, ok := raw.(map[string]any)
			if !ok {
				e.hooks.Log(fmt.Sprintf("skipping variant %d of product %q: not an object", j, prod.reference))
				continue
			}
			prod.variants = append(prod.variants, newVariant(vm))
		}
		c.variants += len(prod.variants)
		c.products = append(c.products, prod)
	}

	c.categories = seen.sorted()
	return c
}

func newProduct(m map[string]any, seen categorySet) product {
	ref := safeRef(m["sku"], cell.Stringify(m["id"]))
	prod := product{
		reference:   ref,
		name:        safeRef(m["name"], ref),
		description: cleanDescription(m["description"]),
		images:      joinImages(m["images"]),
		numbers:     pick(m, numericFields),
	}
	if brand, ok := m["brand"].(map[string]any); ok {
		prod.brand = cell.Stringify(brand["name"])
	}

	var refs []string
	for _, raw := range asList(m["categories"]) {
		name := categoryName(raw)
		if name == "" {
			continue
		}
		seen.add(name)
		refs = append(refs, categoryRef(name))
	}
	prod.categories = strings.Join(refs, ",")
	return prod
}

func newVariant(m map[string]any) variant {
	return variant{
		reference: safeRef(m["sku"], cell.Stringify(m["id"])),
		numbers:   pick(m, numericFields),
		upc:       textOf(m["upc"]),
		inventory: m["inventory_level"],
	}
}

// safeRef returns value as text unless it is empty or carries an HTML
// comment, in which case fallback is used.
func safeRef(value any, fallback string) string {
	if cell.IsFalsy(value) {
		return fallback
	}
	if s, ok := value.(string); ok && strings.Contains(s, "<!--") {
		return fallback
	}
	return cell.Stringify(value)
}

// textOf returns the string form of raw, or "" when raw is empty.
func textOf(raw any) string {
	if cell.IsFalsy(raw) {
		return ""
	}
	return cell.Stringify(raw)
}

func cleanDescription(raw any) string {
	return strings.TrimSpace(htmlComment.ReplaceAllString(textOf(raw), ""))
}

// joinImages joins image entries with commas. Escaping happens later on the
// joined string as a whole.
func joinImages(raw any) string {
	switch v := raw.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, img := range v {
			parts[i] = cell.Stringify(img)
		}
		return strings.Join(parts, ",")
	case string:
		return v
	default:
		return ""
	}
}

// categoryName returns the trimmed name of a category entry, which is an
// object with a name field or a bare string.
func categoryName(raw any) string {
	switch v := raw.(type) {
	case map[string]any:
		return strings.TrimSpace(cell.Stringify(v["name"]))
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

func categoryRef(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

func asList(raw any) []any {
	list, _ := raw.([]any)
	return list
}

func pick(m map[string]any, keys []string) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

// exportProducts writes the products, variants, and categories tables.
func (e *Engine) exportProducts(items []any, report *Report) error {
	p := newProgress(e.hooks, e.opts.TickEvery)
	c := e.buildCatalog(items, p)
	e.hooks.Log(fmt.Sprintf("catalog: %d products, %d variants, %d categories",
		len(c.products), c.variants, len(c.categories)))
	e.hooks.Total(c.units())

	tables := []struct {
		name    string
		columns []string
		rows    iter.Seq[string]
	}{
		{TableProducts, productColumns, e.productLines(c, p)},
		{TableVariants, variantColumns, e.variantLines(c, p)},
		{TableCategories, categoryColumns, e.categoryLines(c, p)},
	}
	for _, t := range tables {
		if err := e.writeTable(t.name, e.fixedHeader(t.columns), t.rows, report); err != nil {
			return err
		}
	}
	return nil
}

// fixedHeader joins identifier-safe column names without quoting.
func (e *Engine) fixedHeader(columns []string) string {
	return cell.Line(e.opts.Delimiter, columns...) + "\n"
}

func (e *Engine) productLines(c catalog, p *progress) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, prod := range c.products {
			cells := make([]string, 0, len(productColumns))
			cells = append(cells,
				cell.Escape(prod.reference),
				cell.Escape(prod.name),
				cell.Escape(prod.description),
				cell.Escape(prod.brand),
			)
			cells = appendNumbers(cells, prod.numbers)
			cells = append(cells, cell.Escape(prod.images), cell.Escape(prod.categories))

			p.step()
			if !yield(cell.Line(e.opts.Delimiter, cells...)) {
				return
			}
		}
	}
}

func (e *Engine) variantLines(c catalog, p *progress) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, prod := range c.products {
			for _, v := range prod.variants {
				cells := make([]string, 0, len(variantColumns))
				cells = append(cells, cell.Escape(v.reference), cell.Escape(prod.reference))
				cells = appendNumbers(cells, v.numbers)
				cells = append(cells, cell.Escape(v.upc), cell.Numeric(v.inventory))

				p.step()
				if !yield(cell.Line(e.opts.Delimiter, cells...)) {
					return
				}
			}
		}
	}
}

// categoryLines emits one row per distinct category. parent_reference is
// reserved and always empty.
func (e *Engine) categoryLines(c catalog, p *progress) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range c.categories {
			p.step()
			line := cell.Line(e.opts.Delimiter, cell.Escape(categoryRef(name)), cell.Escape(name), cell.Escape(""))
			if !yield(line) {
				return
			}
		}
	}
}

func appendNumbers(cells []string, numbers []any) []string {
	for _, n := range numbers {
		cells = append(cells, cell.Numeric(n))
	}
	return cells
}
