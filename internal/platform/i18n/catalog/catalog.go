// Package catalog loads the invitation page copy from embedded locale files.
//
// Each file under locales/<locale>/<project-type>.yaml holds the full set of
// page strings for one (locale, project type) pair. Files are decoded once at
// startup and the resulting Bundle is read-only.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale is the canonical source locale for catalogs.
	BaseLocale = "en"
)

// Message keys every catalog file must define.
const (
	KeyBadge           = "badge"
	KeyTitle           = "title"
	KeySubtitle        = "subtitle"
	KeyDefaultName     = "default_name"
	KeyLoading         = "loading"
	KeyDownload        = "download"
	KeyDownloadIOS     = "download_ios"
	KeyDownloadAndroid = "download_android"
	KeyStatMembers     = "stat_members"
	KeyStatCycles      = "stat_cycles"
	KeyQRLabel         = "qr_label"
)

// RequiredKeys lists the keys a catalog file must define, in display order.
var RequiredKeys = []string{
	KeyBadge,
	KeyTitle,
	KeySubtitle,
	KeyDefaultName,
	KeyLoading,
	KeyDownload,
	KeyDownloadIOS,
	KeyDownloadAndroid,
	KeyStatMembers,
	KeyStatCycles,
	KeyQRLabel,
}

type catalogFile struct {
	Locale      string            `yaml:"locale"`
	ProjectType string            `yaml:"project_type"`
	Messages    map[string]string `yaml:"messages"`
}

// Bundle contains all locale catalogs keyed by locale then project type.
type Bundle struct {
	locales map[string]map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

// LoadEmbedded loads catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads catalog files from the provided filesystem.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]map[string]map[string]string{}}

	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var parsed catalogFile
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.addFile(p, parsed); err != nil {
			return nil, err
		}
	}

	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	return bundle, nil
}

func (b *Bundle) addFile(filePath string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(filePath))
	typeFromPath := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))

	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", filePath)
	}
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", filePath, locale, localeFromPath)
	}

	projectType := strings.TrimSpace(file.ProjectType)
	if projectType == "" {
		return fmt.Errorf("catalog %s: project_type is required", filePath)
	}
	if projectType != typeFromPath {
		return fmt.Errorf("catalog %s: project_type %q must match filename %q", filePath, projectType, typeFromPath)
	}

	if file.Messages == nil {
		return fmt.Errorf("catalog %s: messages map is required", filePath)
	}
	for key := range file.Messages {
		if !isRequiredKey(key) {
			return fmt.Errorf("catalog %s: unknown message key %q", filePath, key)
		}
	}
	messages := make(map[string]string, len(RequiredKeys))
	for _, key := range RequiredKeys {
		value := strings.TrimSpace(file.Messages[key])
		if value == "" {
			return fmt.Errorf("catalog %s: message %q is required", filePath, key)
		}
		messages[key] = value
	}

	types, ok := b.locales[locale]
	if !ok {
		types = map[string]map[string]string{}
		b.locales[locale] = types
	}
	if _, exists := types[projectType]; exists {
		return fmt.Errorf("catalog %s: project type %q already defined for locale %q", filePath, projectType, locale)
	}
	types[projectType] = messages
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all available locale identifiers.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// ProjectTypes returns the sorted project types defined for a locale.
func (b *Bundle) ProjectTypes(locale string) []string {
	if b == nil {
		return nil
	}
	types, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(types))
	for projectType := range types {
		out = append(out, projectType)
	}
	sort.Strings(out)
	return out
}

// Messages returns an exact copy of the messages for a locale and project type.
// It does not fall back to other locales.
func (b *Bundle) Messages(locale string, projectType string) (map[string]string, bool) {
	if b == nil {
		return nil, false
	}
	types, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return nil, false
	}
	messages, ok := types[strings.TrimSpace(projectType)]
	if !ok {
		return nil, false
	}
	return copyMap(messages), true
}

func isRequiredKey(key string) bool {
	for _, required := range RequiredKeys {
		if key == required {
			return true
		}
	}
	return false
}

func copyMap(source map[string]string) map[string]string {
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}
