// Package i18n wraps go-i18n so library users never import it directly.
// All lookups are nil-safe: before Init the default message text is
// returned, which keeps the widgets usable in English without setup.
package i18n

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var instance *I18N

type I18N struct {
	localizer *i18n.Localizer
	bundle    *i18n.Bundle
}

// Message aliases i18n.Message so callers only need this package.
type Message = i18n.Message

type MessageFile struct {
	Name    string
	Content []byte
}

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func Init(messageFilePaths []string) error {
	bundle := newBundle()
	for _, path := range messageFilePaths {
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return fmt.Errorf("load message file %s: %w", path, err)
		}
	}
	instance = &I18N{
		localizer: i18n.NewLocalizer(bundle, language.English.String()),
		bundle:    bundle,
	}
	return nil
}

func InitFromBytes(messageFiles []MessageFile) error {
	bundle := newBundle()
	for _, file := range messageFiles {
		if _, err := bundle.ParseMessageFileBytes(file.Content, file.Name); err != nil {
			return fmt.Errorf("parse message file %s: %w", file.Name, err)
		}
	}
	instance = &I18N{
		localizer: i18n.NewLocalizer(bundle, language.English.String()),
		bundle:    bundle,
	}
	return nil
}

func SetLanguage(lang language.Tag) {
	if instance == nil {
		return
	}
	instance = &I18N{
		localizer: i18n.NewLocalizer(instance.bundle, lang.String()),
		bundle:    instance.bundle,
	}
}

func SetWithCode(code string) error {
	lang, err := language.Parse(code)
	if err != nil {
		return fmt.Errorf("parse language code %q: %w", code, err)
	}
	SetLanguage(lang)
	return nil
}

// Localize resolves a message for the current locale, falling back to
// the message's Other text when no translation exists or Init was never
// called.
func Localize(message *Message, templateData map[string]interface{}) string {
	if message == nil {
		return ""
	}
	if instance == nil {
		return message.Other
	}

	config := &i18n.LocalizeConfig{DefaultMessage: message}
	if templateData != nil {
		config.TemplateData = templateData
	}

	msg, err := instance.localizer.Localize(config)
	if err != nil {
		return message.Other
	}
	return msg
}

// LocalizePlural resolves a message with plural forms; count selects the
// form.
func LocalizePlural(message *Message, count int, templateData map[string]interface{}) string {
	if message == nil {
		return ""
	}
	if instance == nil {
		return message.Other
	}

	config := &i18n.LocalizeConfig{
		DefaultMessage: message,
		PluralCount:    count,
	}
	if templateData != nil {
		config.TemplateData = templateData
	}

	msg, err := instance.localizer.Localize(config)
	if err != nil {
		return message.Other
	}
	return msg
}
