// Package i18n resolves invitation page copy for a language and project type.
package i18n

import (
	"log"
	"net/http"
	"strings"

	"github.com/ccotek/cocoti-invitation-page/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// ShortLangParam is the abbreviated form of LangParam.
	ShortLangParam = "l"
)

// CanonicalProjectType is the public project type used when none is given or
// the requested one has no copy.
const CanonicalProjectType = "savings-circle"

// Language is a supported page language.
type Language string

const (
	French  Language = "fr"
	English Language = "en"
)

// Default is the fallback language.
const Default = English

// Supported returns supported languages in classification order.
func Supported() []Language {
	return []Language{French, English}
}

// ParseLanguage returns the supported language for an exact code.
func ParseLanguage(value string) (Language, bool) {
	for _, lang := range Supported() {
		if string(lang) == value {
			return lang, true
		}
	}
	return "", false
}

// Entry holds the page copy for one language and project type.
type Entry struct {
	Badge           string
	Title           string
	Subtitle        string
	DefaultName     string
	Loading         string
	Download        string
	DownloadIOS     string
	DownloadAndroid string
	StatMembers     string
	StatCycles      string
	QRLabel         string
}

func entryFromMessages(messages map[string]string) Entry {
	return Entry{
		Badge:           messages[catalog.KeyBadge],
		Title:           messages[catalog.KeyTitle],
		Subtitle:        messages[catalog.KeySubtitle],
		DefaultName:     messages[catalog.KeyDefaultName],
		Loading:         messages[catalog.KeyLoading],
		Download:        messages[catalog.KeyDownload],
		DownloadIOS:     messages[catalog.KeyDownloadIOS],
		DownloadAndroid: messages[catalog.KeyDownloadAndroid],
		StatMembers:     messages[catalog.KeyStatMembers],
		StatCycles:      messages[catalog.KeyStatCycles],
		QRLabel:         messages[catalog.KeyQRLabel],
	}
}

// Resolver looks up page copy with language and project type fallbacks.
type Resolver struct {
	bundle *catalog.Bundle
	logger *log.Logger
}

// NewResolver builds a resolver over a loaded catalog bundle.
func NewResolver(bundle *catalog.Bundle, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{bundle: bundle, logger: logger}
}

// Resolve returns the copy for lang and projectType.
//
// Lookup order: (lang, projectType), then (Default, projectType), then the
// canonical project type in lang, then in Default. An empty projectType goes
// straight to the canonical project type.
func (r *Resolver) Resolve(lang Language, projectType string) Entry {
	projectType = strings.TrimSpace(projectType)
	if projectType == "" {
		return r.canonical(lang)
	}
	if messages, ok := r.bundle.Messages(string(lang), projectType); ok {
		return entryFromMessages(messages)
	}
	if messages, ok := r.bundle.Messages(string(Default), projectType); ok {
		r.logger.Printf("translation fallback project_type=%s lang=%s using=%s", projectType, lang, Default)
		return entryFromMessages(messages)
	}
	r.logger.Printf("translation fallback project_type=%s lang=%s using=%s", projectType, lang, CanonicalProjectType)
	return r.canonical(lang)
}

func (r *Resolver) canonical(lang Language) Entry {
	if messages, ok := r.bundle.Messages(string(lang), CanonicalProjectType); ok {
		return entryFromMessages(messages)
	}
	messages, _ := r.bundle.Messages(string(Default), CanonicalProjectType)
	return entryFromMessages(messages)
}

// SupportedProjectTypes returns the project types with copy in the first
// supported language that defines any.
func (r *Resolver) SupportedProjectTypes() []string {
	for _, lang := range Supported() {
		if types := r.bundle.ProjectTypes(string(lang)); len(types) > 0 {
			return types
		}
	}
	return nil
}

// DetectLanguage picks the page language for a request from the lang query
// parameters, then the Accept-Language header.
func DetectLanguage(r *http.Request) Language {
	if r == nil {
		return Default
	}
	query := r.URL.Query()
	override := strings.TrimSpace(query.Get(LangParam))
	if override == "" {
		override = strings.TrimSpace(query.Get(ShortLangParam))
	}
	return Detect(override, r.Header.Get("Accept-Language"))
}

// Detect classifies an explicit override and a client locale hint.
//
// A supported override wins. Otherwise the preferred locale in hint is matched
// by case-insensitive prefix against supported codes, in order, and anything
// unmatched falls back to Default.
func Detect(override string, hint string) Language {
	if lang, ok := ParseLanguage(override); ok {
		return lang
	}
	locale := strings.ToLower(preferredLocale(hint))
	for _, lang := range Supported() {
		if strings.HasPrefix(locale, string(lang)) {
			return lang
		}
	}
	return Default
}

// preferredLocale returns the highest weighted tag of an Accept-Language
// value, or the trimmed raw value when it does not parse.
func preferredLocale(hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(hint)
	if err != nil || len(tags) == 0 {
		return hint
	}
	return tags[0].String()
}
