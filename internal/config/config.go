package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Core    Core          `yaml:"core"`
	Logging LoggingConfig `yaml:"logging"`
}

type Core struct {
	// Root is the batch store directory
	Root string `yaml:"root" validate:"required,dirpath_os"`

	// CrossDevice allows copy-and-delete when rename(2) cannot be used
	CrossDevice bool `yaml:"cross_device"`

	// Verbose explains every move, like rm -v
	Verbose bool `yaml:"verbose"`
}

type LoggingConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Level    string         `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format   string         `yaml:"format" validate:"omitempty,oneof=text json logfmt"`
	Rotation RotationConfig `yaml:"rotation"`
}

type RotationConfig struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

type parsingError struct {
	path string
	err  error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config %s:\n%s", e.path, indent.String(e.err.Error(), 2))
}

func (e parsingError) Unwrap() error {
	return e.err
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("dirpath_os", validateDirPath)

	return validate
}

// Parse returns the defaults overlaid with the YAML file at path. An empty
// path means no config file: the defaults are returned as is.
func Parse(path string) (Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, parsingError{path: path, err: err}
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, parsingError{path: path, err: err}
	}

	root, err := expandPath(cfg.Core.Root)
	if err != nil {
		return cfg, parsingError{path: path, err: err}
	}
	cfg.Core.Root = root

	if err := newValidator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, verr := range verrs {
				return cfg, parsingError{
					path: path,
					err:  fmt.Errorf("validation error: field %s, %q is invalid", verr.Namespace(), verr.Value()),
				}
			}
		}
		return cfg, parsingError{path: path, err: err}
	}

	slog.Debug("config file loaded", "config-file", path)
	return cfg, nil
}
