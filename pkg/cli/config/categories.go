package config

import (
	_ "embed"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultCategories []byte

// Categories holds the category taxonomy configuration
type Categories struct {
	File string
}

// Flags returns CLI flags for Categories configuration
func (c *Categories) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "categories-file",
			Usage:       "YAML file with the display category taxonomy (built-in taxonomy when empty)",
			Category:    "Categories",
			Sources:     cli.EnvVars("SIRSE_CATEGORIES_FILE"),
			Destination: &c.File,
		},
	}
}

// Configure loads the taxonomy from File or the built-in default
func (c *Categories) Configure() (*model.CategoryTaxonomy, error) {
	var (
		cfg *model.CategoriesConfig
		err error
	)
	if c.File == "" {
		cfg, err = ParseCategories(defaultCategories)
	} else {
		cfg, err = LoadCategoriesFromFile(c.File)
	}
	if err != nil {
		return nil, err
	}

	return model.NewCategoryTaxonomy(cfg)
}

// LogValue returns structured log value
func (c Categories) LogValue() slog.Value {
	file := c.File
	if file == "" {
		file = "(built-in)"
	}
	return slog.GroupValue(slog.String("file", file))
}

// LoadCategoriesFromFile loads categories from YAML file
func LoadCategoriesFromFile(path string) (*model.CategoriesConfig, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	cfg, err := ParseCategories(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid configuration file", goerr.V("path", path))
	}
	return cfg, nil
}

// ParseCategories parses and validates a YAML taxonomy
func ParseCategories(data []byte) (*model.CategoriesConfig, error) {
	var cfg model.CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}
