package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"pagecraft/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	CatalogConfig struct {
		// empty source means embedded default catalog
		Source string `yaml:"source" validate:"omitempty,filepath"`
		Watch  bool   `yaml:"watch"`
	}

	ZoomConfig struct {
		Min  float64 `yaml:"min" validate:"gt=0"`
		Max  float64 `yaml:"max" validate:"gtfield=Min"`
		Step float64 `yaml:"step" validate:"gt=0"`
	}

	EditorConfig struct {
		HistoryDepth       int                `yaml:"history_depth" validate:"min=1,max=1000"`
		DefaultContentType common.ContentType `yaml:"default_content_type"`
		DefaultTheme       string             `yaml:"default_theme"`
		Language           string             `yaml:"language" validate:"omitempty,bcp47_language_tag"`
		Zoom               ZoomConfig         `yaml:"zoom"`
	}

	RasterConfig struct {
		Scale          float64        `yaml:"scale" validate:"gt=0,lte=4"`
		PNGCompression PNGCompression `yaml:"png_compression"`
		JPEGQuality    int            `yaml:"jpeg_quality" validate:"min=40,max=100"`
	}

	PDFConfig struct {
		Author   string   `yaml:"author"`
		Subject  string   `yaml:"subject"`
		Keywords []string `yaml:"keywords"`
	}

	ExportConfig struct {
		OutputNameTemplate    string       `yaml:"output_name_template"`
		FileNameTransliterate bool         `yaml:"file_name_transliterate"`
		FixZip                bool         `yaml:"fix_zip"`
		AbortOnError          bool         `yaml:"abort_on_error"`
		Raster                RasterConfig `yaml:"raster"`
		PDF                   PDFConfig    `yaml:"pdf"`
	}

	ServerConfig struct {
		Listen          string        `yaml:"listen" validate:"required,hostname_port"`
		AllowedOrigins  []string      `yaml:"allowed_origins" validate:"dive,required"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
	}

	StoreConfig struct {
		Path string `yaml:"path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Catalog   CatalogConfig  `yaml:"catalog"`
		Editor    EditorConfig   `yaml:"editor"`
		Export    ExportConfig   `yaml:"export"`
		Server    ServerConfig   `yaml:"server"`
		Store     StoreConfig    `yaml:"store"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// ClampZoom keeps zoom level inside configured range.
func (z ZoomConfig) ClampZoom(v float64) float64 {
	return max(z.Min, min(z.Max, v))
}
