package convert

import (
	"strings"
	"testing"
	"time"

	"odsw/config"
)

func testValues(t *testing.T, src string, kind sourceKind) Values {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return buildValues(config.OutputNameTemplateFieldName, src, kind, &cfg.Document)
}

func TestBuildValues(t *testing.T) {
	v := testValues(t, "reports/2024/sales.csv", kindText)

	if v.Context != string(config.OutputNameTemplateFieldName) {
		t.Errorf("Context = %q", v.Context)
	}
	if v.SourceFile != "sales" {
		t.Errorf("SourceFile = %q, want sales", v.SourceFile)
	}
	if v.SourcePath != "reports/2024/sales.csv" {
		t.Errorf("SourcePath = %q", v.SourcePath)
	}
	if v.SourceKind != "csv" {
		t.Errorf("SourceKind = %q, want csv", v.SourceKind)
	}
	if v.Locale != "en-US" {
		t.Errorf("Locale = %q, want en-US", v.Locale)
	}
	if v.Date != time.Now().Format("2006-01-02") {
		t.Errorf("Date = %q", v.Date)
	}
}

func TestExpandTemplate(t *testing.T) {
	v := testValues(t, "data/Quarterly Report.csv", kindText)

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"simple text", "simple-text", "simple-text"},
		{"source file", "{{ .SourceFile }}", "Quarterly Report"},
		{"kind", "{{ .SourceKind }}/{{ .SourceFile }}", "csv/Quarterly Report"},
		{"sprig functions", `{{ .SourceFile | lower | replace " " "_" }}`, "quarterly_report"},
		{"context", "{{ .Context }}", "output_name_template"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(config.OutputNameTemplateFieldName, tt.template, v)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_InvalidTemplate(t *testing.T) {
	_, err := expandTemplate(config.TitleFieldName, "{{ .SourceFile", Values{})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("error %v does not name the field", err)
	}

	// unknown field of a struct is an execution error
	if got, err := expandTemplate(config.TitleFieldName, "{{ .Missing }}", Values{}); err == nil {
		t.Errorf("expandTemplate() = %q, expected error", got)
	}
}
