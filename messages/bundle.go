package messages

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/belinwu/WeatherApp/model"
)

// BaseLocale must define every key; other locales may be partial.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string         `yaml:"locale"`
	Messages map[Key]string `yaml:"messages"`
}

// Bundle holds the message catalogs of every locale.
type Bundle struct {
	catalogs map[language.Tag]map[Key]string
	tags     []language.Tag
	matcher  language.Matcher
	base     language.Tag
}

var defaultBundle = sync.OnceValues(LoadEmbedded)

// Default returns the bundle built from the embedded catalogs.
func Default() *Bundle {
	b, err := defaultBundle()
	if err != nil {
		panic(fmt.Sprintf("messages: embedded catalogs: %v", err))
	}
	return b
}

func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS reads locales/*.yaml from catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{
		catalogs: make(map[language.Tag]map[Key]string),
		base:     language.Make(BaseLocale),
	}

	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}

	base, ok := b.catalogs[b.base]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	for _, kind := range model.AllErrorKinds() {
		if _, ok := base[KeyFor(kind)]; !ok {
			return nil, fmt.Errorf("base locale %s: missing key %q", BaseLocale, KeyFor(kind))
		}
	}

	// The matcher falls back to its first tag.
	tags := []language.Tag{b.base}
	for _, tag := range b.tags {
		if tag != b.base {
			tags = append(tags, tag)
		}
	}
	b.tags = tags
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != want {
		return fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, want)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", p, err)
	}
	if _, exists := b.catalogs[tag]; exists {
		return fmt.Errorf("catalog %s: locale %q defined twice", p, locale)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	b.catalogs[tag] = file.Messages
	b.tags = append(b.tags, tag)
	return nil
}

// Text renders key in lang. Keys missing from the matched locale fall back to
// the base locale, and unknown keys render as the key itself.
func (b *Bundle) Text(lang model.Language, key Key) string {
	_, index, _ := b.matcher.Match(lang.Tag())
	if msg, ok := b.catalogs[b.tags[index]][key]; ok {
		return msg
	}
	if msg, ok := b.catalogs[b.base][key]; ok {
		return msg
	}
	return string(key)
}

// Locales lists the locales that have a catalog.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.tags))
	for _, tag := range b.tags {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}
