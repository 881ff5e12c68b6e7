package registry

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"odsw/container"
	"odsw/style"
	"odsw/xmlutil"
)

func TestRegister_Placement(t *testing.T) {
	visible := style.NewCellStyle("Heading", style.CellProperties{})
	hidden := style.NewAutomaticCellStyle("ce1", style.CellProperties{})

	tests := []struct {
		name  string
		style style.ObjectStyle
		dest  Dest
		err   error
	}{
		{"hidden to content", hidden, DestContentAutomatic, nil},
		{"hidden to styles automatic", hidden, DestStylesAutomatic, nil},
		{"hidden to common", hidden, DestStylesCommon, ErrHiddenInCommon},
		{"visible to common", visible, DestStylesCommon, nil},
		{"visible to content", visible, DestContentAutomatic, ErrVisibleInAutomatic},
		{"visible to styles automatic", visible, DestStylesAutomatic, ErrVisibleInAutomatic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			err := r.Register(tt.style, tt.dest, container.ModeCreate)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Register() error = %v, want %v", err, tt.err)
			}
			if tt.err != nil && len(r.Values(tt.dest)) != 0 {
				t.Error("rejected style was stored")
			}
			if err := r.Check(); err != nil {
				t.Errorf("Check() = %v", err)
			}
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	r := New()
	first := style.NewAutomaticCellStyle("ce1", style.CellProperties{BackgroundColor: "#FF0000"})
	second := style.NewAutomaticCellStyle("ce1", style.CellProperties{BackgroundColor: "#00FF00"})

	if err := r.AddContentStyle(first); err != nil {
		t.Fatal(err)
	}
	if err := r.AddContentStyle(second); !errors.Is(err, container.ErrDuplicateKey) {
		t.Fatalf("second create error = %v", err)
	}
	if got, _ := r.Get(first.Key(), DestContentAutomatic); got != first {
		t.Error("failed create replaced first value")
	}
	if err := r.Register(second, DestContentAutomatic, container.ModeUpdate); err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Get(first.Key(), DestContentAutomatic); got != second {
		t.Error("update did not replace value")
	}
	// same key in another destination is independent
	if err := r.AddStylesAutomaticStyle(first); err != nil {
		t.Errorf("other destination: %v", err)
	}
}

func TestInternCompositeCellStyle(t *testing.T) {
	r := New()
	base := style.NewCellStyle("Default", style.CellProperties{})
	ds := style.NewNumberStyle("N2", style.NumberFloat, style.NumberFormat{DecimalPlaces: 2})

	cs, err := r.InternCompositeCellStyle(base, ds)
	if err != nil {
		t.Fatal(err)
	}
	if cs.Name() != "Default-_-N2" || !cs.Hidden() || cs.Parent() != base || cs.DataStyle() != ds {
		t.Fatalf("unexpected composite %q hidden=%v", cs.Name(), cs.Hidden())
	}
	again, err := r.InternCompositeCellStyle(base, ds)
	if err != nil || again != cs {
		t.Fatalf("second intern = %p, %v; want %p", again, err, cs)
	}

	if got := r.DataStyles(); len(got) != 1 || got[0] != ds {
		t.Errorf("data styles = %v", got)
	}
	if got := r.Values(DestStylesCommon); len(got) != 1 || got[0] != base {
		t.Errorf("common styles = %v", got)
	}
	if got := r.Values(DestContentAutomatic); len(got) != 1 || got[0] != cs {
		t.Errorf("content styles = %v", got)
	}
	if err := r.Check(); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestInternCompositeCellStyle_PreRegistered(t *testing.T) {
	r := New()
	base := style.NewCellStyle("Default", style.CellProperties{})
	ds := style.NewDateStyle("D", language.Und)
	if err := r.AddCommonStyle(base); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterDataStyle(ds, container.ModeCreate); err != nil {
		t.Fatal(err)
	}
	if _, err := r.InternCompositeCellStyle(base, ds); err != nil {
		t.Fatalf("duplicate pre-registration must be tolerated: %v", err)
	}
	if n := len(r.Values(DestStylesCommon)); n != 1 {
		t.Errorf("common styles = %d", n)
	}
}

func TestInternCompositeCellStyle_DerivedBase(t *testing.T) {
	r := New()
	root := style.NewCellStyle("Default", style.CellProperties{})
	ds1 := style.NewBooleanStyle("B", language.Und)
	ds2 := style.NewTimeStyle("T", language.Und, 0)

	first, err := r.InternCompositeCellStyle(root, ds1)
	if err != nil {
		t.Fatal(err)
	}
	// base with parent is not registered as common style again
	second, err := r.InternCompositeCellStyle(first, ds2)
	if err != nil {
		t.Fatal(err)
	}
	if second.Name() != "Default-_-T" {
		t.Errorf("name = %q, separator suffix must be stripped from base", second.Name())
	}
	if n := len(r.Values(DestStylesCommon)); n != 1 {
		t.Errorf("common styles = %d, want 1", n)
	}
	if n := len(r.Values(DestContentAutomatic)); n != 2 {
		t.Errorf("content styles = %d, want 2", n)
	}
}

func TestInternCompositeCellStyle_HiddenRoot(t *testing.T) {
	r := New()
	base := style.NewAutomaticCellStyle("ce1", style.CellProperties{})
	ds := style.NewBooleanStyle("B", language.Und)
	if _, err := r.InternCompositeCellStyle(base, ds); !errors.Is(err, ErrHiddenInCommon) {
		t.Fatalf("error = %v, want ErrHiddenInCommon", err)
	}
	if len(r.DataStyles()) != 0 {
		t.Error("failed intern changed registry")
	}
}

func TestFreeze(t *testing.T) {
	r := New()
	base := style.NewCellStyle("Default", style.CellProperties{})
	ds := style.NewBooleanStyle("B", language.Und)
	cs, err := r.InternCompositeCellStyle(base, ds)
	if err != nil {
		t.Fatal(err)
	}
	r.Freeze()
	if !r.Frozen() {
		t.Fatal("not frozen")
	}

	// hit works after freeze
	if got, err := r.InternCompositeCellStyle(base, ds); err != nil || got != cs {
		t.Errorf("cached intern after freeze = %v, %v", got, err)
	}
	if _, err := r.InternCompositeCellStyle(base, style.NewTimeStyle("T", language.Und, 0)); !errors.Is(err, container.ErrFrozen) {
		t.Errorf("miss after freeze error = %v", err)
	}
	if err := r.AddContentStyle(style.NewAutomaticCellStyle("late", style.CellProperties{})); !errors.Is(err, container.ErrFrozen) {
		t.Errorf("register after freeze error = %v", err)
	}
	if err := r.RegisterDataStyle(style.NewBooleanStyle("B2", language.Und), container.ModeCreateOrUpdate); !errors.Is(err, container.ErrFrozen) {
		t.Errorf("data style after freeze error = %v", err)
	}
	if err := r.RegisterPageStyle(style.NewPageStyle("Mpm2", style.PageOptions{MasterName: "Other"}), container.ModeCreate); !errors.Is(err, container.ErrFrozen) {
		t.Errorf("page style after freeze error = %v", err)
	}
}

type visibleData struct{}

func (visibleData) Name() string { return "V" }
func (visibleData) Hidden() bool { return false }
func (visibleData) AppendXML(*xmlutil.Util, xmlutil.Appender) {}

func TestRegisterDataStyle_Visible(t *testing.T) {
	r := New()
	if err := r.RegisterDataStyle(visibleData{}, container.ModeCreate); !errors.Is(err, ErrVisibleDataStyle) {
		t.Errorf("error = %v", err)
	}
}

func TestPageStyles(t *testing.T) {
	r := New()
	header := style.NewTextStyle("T1", style.TextProperties{Bold: true})
	ps := style.NewPageStyle("Mpm1", style.PageOptions{Header: &style.HeaderFooter{Text: "Report", Style: header}})
	if r.HasFooterHeader() {
		t.Error("empty registry has header")
	}
	if err := r.RegisterPageStyle(ps, container.ModeCreate); err != nil {
		t.Fatal(err)
	}
	if !r.HasFooterHeader() {
		t.Error("HasFooterHeader() = false")
	}
	if got := r.Values(DestStylesAutomatic); len(got) != 1 || got[0] != header {
		t.Errorf("header text style not registered: %v", got)
	}
	if len(r.PageLayoutStyles()) != 1 || len(r.MasterPageStyles()) != 1 {
		t.Error("page style not registered")
	}

	// visible text style in header is rejected before anything is stored
	bad := style.NewPageStyle("Mpm2", style.PageOptions{
		MasterName: "Second",
		Footer:     &style.HeaderFooter{Style: style.NewCommonTextStyle("Visible", style.TextProperties{})},
	})
	if err := r.RegisterMasterPageStyle(bad.Master(), container.ModeCreate); !errors.Is(err, ErrVisibleInAutomatic) {
		t.Errorf("error = %v", err)
	}
	if len(r.MasterPageStyles()) != 1 {
		t.Error("rejected master page was stored")
	}
}

func TestWriteStyles(t *testing.T) {
	r := New()
	d := style.NewDefaults(style.PageOptions{})
	for _, s := range []style.ObjectStyle{d.Table, d.Row, d.Column} {
		if err := r.AddContentStyle(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.AddCommonStyle(d.Cell); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterPageStyle(d.Page, container.ModeCreate); err != nil {
		t.Fatal(err)
	}
	r.Freeze()

	u := xmlutil.New()
	var b strings.Builder
	r.WriteContentAutomaticStyles(u, &b)
	content := b.String()
	for _, name := range []string{`style:name="ta1"`, `style:name="ro1"`, `style:name="co1"`} {
		if !strings.Contains(content, name) {
			t.Errorf("content automatic styles missing %s", name)
		}
	}
	if strings.Index(content, "ta1") > strings.Index(content, "ro1") {
		t.Error("registration order not kept")
	}

	b.Reset()
	r.WriteCommonStyles(u, &b)
	if !strings.Contains(b.String(), `style:name="Default"`) {
		t.Errorf("common styles = %s", b.String())
	}
	b.Reset()
	r.WritePageLayouts(u, &b)
	r.WriteMasterStyles(u, &b)
	if !strings.Contains(b.String(), `<style:page-layout style:name="Mpm1">`) ||
		!strings.Contains(b.String(), `<style:master-page style:name="DefaultMasterPage" style:page-layout-name="Mpm1">`) {
		t.Errorf("page styles = %s", b.String())
	}

	dump := r.Dump()
	if !strings.Contains(dump, "frozen: true") || !strings.Contains(dump, "table@ta1") {
		t.Errorf("Dump() = %s", dump)
	}
}

func TestEnsureRegistered(t *testing.T) {
	r := New()
	common := style.NewCellStyle("Heading", style.CellProperties{})
	auto := style.NewTableRowStyle("ro2", "1cm")
	for range 2 {
		if err := r.EnsureRegistered(common); err != nil {
			t.Fatal(err)
		}
		if err := r.EnsureRegistered(auto); err != nil {
			t.Fatal(err)
		}
	}
	if len(r.Values(DestStylesCommon)) != 1 || len(r.Values(DestContentAutomatic)) != 1 {
		t.Fatal("styles registered to wrong destinations")
	}
	r.Freeze()
	if err := r.EnsureRegistered(common); err != nil {
		t.Errorf("known style after freeze = %v", err)
	}
	if err := r.EnsureRegistered(style.NewTableRowStyle("ro3", "")); !errors.Is(err, container.ErrFrozen) {
		t.Errorf("unknown style after freeze = %v", err)
	}
}
