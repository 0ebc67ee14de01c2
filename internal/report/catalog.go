package report

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback locale for narration.
const BaseLocale = "en-US"

// Message keys used by the narrator.
const (
	keyAccepted  = "admission.accepted"
	keyRejected  = "admission.rejected"
	keyRuleError = "admission.error"
	keyPossible  = "admission.possible"
	keyFoodTotal = "food.total"
	reasonPrefix = "reason."
)

//go:embed locales/*/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the narration messages for every supported locale.
type Catalog struct {
	builder *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

// LoadCatalog parses the embedded locale files.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFS(embeddedLocales)
}

// LoadCatalogFS parses locales/<locale>/*.yaml files from the provided filesystem.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	builder := catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	seen := map[string]language.Tag{}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if dir := filepath.Base(filepath.Dir(path)); locale != dir {
			return nil, fmt.Errorf("catalog %s: locale %q must match path locale %q", path, locale, dir)
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: parse locale: %w", path, err)
		}
		keys := make([]string, 0, len(file.Messages))
		for key := range file.Messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := builder.SetString(tag, key, file.Messages[key]); err != nil {
				return nil, fmt.Errorf("catalog %s: set %s: %w", path, key, err)
			}
		}
		seen[locale] = tag
	}
	if _, ok := seen[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The base locale goes first so the matcher falls back to it.
	tags := []language.Tag{seen[BaseLocale]}
	locales := make([]string, 0, len(seen))
	for locale := range seen {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		if locale != BaseLocale {
			tags = append(tags, seen[locale])
		}
	}
	return &Catalog{builder: builder, tags: tags, matcher: language.NewMatcher(tags)}, nil
}

// Locales returns the supported locale tags, base locale first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.tags))
	for i, tag := range c.tags {
		out[i] = tag.String()
	}
	return out
}

// Match resolves a requested locale to the closest supported tag.
func (c *Catalog) Match(locale string) language.Tag {
	requested, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return c.tags[0]
	}
	_, idx, conf := c.matcher.Match(requested)
	if conf == language.No {
		return c.tags[0]
	}
	return c.tags[idx]
}
