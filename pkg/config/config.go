// Package config loads shell settings from a .properties file.
//
//	db.path      = persql.db
//	log.level    = info
//	log.color    = false
//	shell.prompt = persql>
//	shell.color  = true
//
// Every key is optional.
package config

import (
	"fmt"

	"github.com/magiconair/properties"
)

const (
	DefaultDBPath   = "persql.db"
	DefaultLogLevel = "info"
	DefaultPrompt   = "persql> "

	// DefaultFile is read when present and no -config flag is given
	DefaultFile = "persql.properties"
)

// Config holds shell settings
type Config struct {
	DBPath   string
	LogLevel string
	LogColor bool
	Prompt   string
	Color    bool
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		DBPath:   DefaultDBPath,
		LogLevel: DefaultLogLevel,
		LogColor: false,
		Prompt:   DefaultPrompt,
		Color:    true,
	}
}

// Load reads settings from a properties file, falling back to defaults per key
func Load(path string) (Config, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return FromProperties(p), nil
}

// Parse reads settings from properties text
func Parse(text string) (Config, error) {
	p, err := properties.LoadString(text)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return FromProperties(p), nil
}

// FromProperties maps known keys onto a Config
func FromProperties(p *properties.Properties) Config {
	def := Default()

	prompt := p.GetString("shell.prompt", def.Prompt)
	if prompt != def.Prompt && prompt != "" && prompt[len(prompt)-1] != ' ' {
		prompt += " "
	}

	return Config{
		DBPath:   p.GetString("db.path", def.DBPath),
		LogLevel: p.GetString("log.level", def.LogLevel),
		LogColor: p.GetBool("log.color", def.LogColor),
		Prompt:   prompt,
		Color:    p.GetBool("shell.color", def.Color),
	}
}
