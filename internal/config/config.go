package config

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Link modes for turn_relations_into_obsidian_links.
const (
	LinkModeNone   = "none"
	LinkModeSelect = "select"
	LinkModeAll    = "all"
)

const DefaultLogFile = "anytype_conversion.log"

// Config represents the converter configuration.
type Config struct {
	InputFolder       string   `yaml:"input_folder" toml:"input_folder"`
	OutputFolder      string   `yaml:"output_folder" toml:"output_folder"`
	FilesFolder       string   `yaml:"files_folder" toml:"files_folder"`
	LogLevel          string   `yaml:"log_level" toml:"log_level"`
	LogFile           string   `yaml:"log_file" toml:"log_file"`
	DecodeTimestamps  bool     `yaml:"decode_timestamps" toml:"decode_timestamps"`
	IgnoredProperties []string `yaml:"ignored_properties" toml:"ignored_properties"`
	LinkMode          string   `yaml:"turn_relations_into_obsidian_links" toml:"turn_relations_into_obsidian_links"`
	PreserveFileTimes bool     `yaml:"preserve_file_times" toml:"preserve_file_times"`
}

// Validate validates the configuration. Empty log level and link mode are
// normalised to their defaults.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	c.LinkMode = strings.ToLower(strings.TrimSpace(c.LinkMode))
	if c.LinkMode == "" {
		c.LinkMode = LinkModeSelect
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.InputFolder, validation.Required),
		validation.Field(&c.OutputFolder, validation.Required),
		validation.Field(&c.LogLevel, validation.In("DEBUG", "INFO", "WARNING", "WARN", "ERROR", "CRITICAL")),
		validation.Field(&c.LinkMode, validation.In(LinkModeNone, LinkModeSelect, LinkModeAll)),
	)
}

// AttachmentsSource returns the directory holding exported files keyed by hash.
func (c *Config) AttachmentsSource() string {
	if strings.TrimSpace(c.FilesFolder) != "" {
		return c.FilesFolder
	}
	return filepath.Join(c.InputFolder, "files")
}

// IgnoredSet returns IgnoredProperties as a lookup set.
func (c *Config) IgnoredSet() map[string]struct{} {
	out := make(map[string]struct{}, len(c.IgnoredProperties))
	for _, key := range c.IgnoredProperties {
		out[key] = struct{}{}
	}
	return out
}

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		InputFolder:       "anyblock_files",
		OutputFolder:      "markdown_files",
		LogLevel:          "INFO",
		LogFile:           DefaultLogFile,
		DecodeTimestamps:  true,
		LinkMode:          LinkModeSelect,
		PreserveFileTimes: true,
	}
}
