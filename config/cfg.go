package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"odsw/style"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	HeaderFooterConfig struct {
		Text       string `yaml:"text"`
		PageNumber bool   `yaml:"page_number"`
		SheetName  bool   `yaml:"sheet_name"`
		Date       bool   `yaml:"date"`
	}

	PageConfig struct {
		Paper       style.PaperFormat  `yaml:"paper" validate:"gte=0"`
		Orientation style.Orientation  `yaml:"orientation" validate:"gte=0"`
		WritingMode string             `yaml:"writing_mode" validate:"omitempty,oneof=lr-tb rl-tb tb-rl"`
		Margin      string             `yaml:"margin"`
		Header      HeaderFooterConfig `yaml:"header"`
		Footer      HeaderFooterConfig `yaml:"footer"`
	}

	DocumentConfig struct {
		FlushRows             int        `yaml:"flush_rows" validate:"min=1"`
		CompressionLevel      int        `yaml:"compression_level" validate:"min=-2,max=9"`
		FixZip                bool       `yaml:"fix_zip"`
		OutputNameTemplate    string     `yaml:"output_name_template"`
		FileNameTransliterate bool       `yaml:"file_name_transliterate"`
		Locale                string     `yaml:"locale" validate:"omitempty,bcp47_language_tag"`
		Currency              string     `yaml:"currency"`
		ColumnWidth           string     `yaml:"column_width"`
		Generator             string     `yaml:"generator"`
		Title                 string     `yaml:"title"`
		Creator               string     `yaml:"creator"`
		Page                  PageConfig `yaml:"page"`
	}

	InputConfig struct {
		Delimiter  string     `yaml:"delimiter" validate:"len=1"`
		Comment    string     `yaml:"comment" validate:"max=1"`
		LazyQuotes bool       `yaml:"lazy_quotes"`
		Header     bool       `yaml:"header"`
		InferTypes bool       `yaml:"infer_types"`
		Freeze     FreezeMode `yaml:"freeze" validate:"gte=0"`
		AutoFilter bool       `yaml:"auto_filter"`
		Encoding   string     `yaml:"encoding"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Input     InputConfig    `yaml:"input"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	TitleFieldName              TemplateFieldName = "title"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(TitleFieldName)),
)

// Language returns document locale, language.Und when it is not set or
// cannot be parsed.
func (conf *DocumentConfig) Language() language.Tag {
	if conf.Locale == "" {
		return language.Und
	}
	tag, err := language.Parse(conf.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// PageOptions converts page configuration to default page style options.
func (conf *PageConfig) PageOptions() style.PageOptions {
	opts := style.PageOptions{
		Paper:       conf.Paper,
		Orientation: conf.Orientation,
		WritingMode: conf.WritingMode,
		Header:      conf.Header.headerFooter(),
		Footer:      conf.Footer.headerFooter(),
	}
	if conf.Margin != "" {
		opts.Margins = style.AllMargins(conf.Margin)
	}
	return opts
}

func (conf *HeaderFooterConfig) headerFooter() *style.HeaderFooter {
	if conf.Text == "" && !conf.PageNumber && !conf.SheetName && !conf.Date {
		return nil
	}
	hf := &style.HeaderFooter{Text: conf.Text}
	if conf.SheetName {
		hf.Fields = append(hf.Fields, style.SheetNameField)
	}
	if conf.Date {
		hf.Fields = append(hf.Fields, style.DateField)
	}
	if conf.PageNumber {
		hf.Fields = append(hf.Fields, style.PageNumberField)
	}
	return hf
}

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
