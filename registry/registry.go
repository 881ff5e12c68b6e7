// Package registry interns document styles per output destination and
// synthesizes composite cell styles (base cell style + data style) on demand.
//
// Registry is not safe for concurrent use, it belongs to the goroutine
// producing document content.
package registry

import (
	"errors"
	"fmt"

	"odsw/container"
	"odsw/style"
	"odsw/xmlutil"
)

var (
	ErrHiddenInCommon     = errors.New("hidden style may not be registered as common style")
	ErrVisibleInAutomatic = errors.New("visible style may not be registered as automatic style")
	ErrVisibleDataStyle   = errors.New("data style must be hidden")
)

type compositeKey struct {
	base style.Key
	data string
}

// Registry holds every style a document references.
type Registry struct {
	objects     *container.Multi[style.Key, style.ObjectStyle, Dest]
	dataStyles  *container.Container[string, style.DataStyle]
	masterPages *container.Container[string, *style.MasterPageStyle]
	pageLayouts *container.Container[string, *style.PageLayoutStyle]
	composites  map[compositeKey]*style.TableCellStyle
}

func New() *Registry {
	return &Registry{
		objects:     container.NewMulti[style.Key, style.ObjectStyle](DestContentAutomatic, DestStylesAutomatic, DestStylesCommon),
		dataStyles:  container.New[string, style.DataStyle](),
		masterPages: container.New[string, *style.MasterPageStyle](),
		pageLayouts: container.New[string, *style.PageLayoutStyle](),
		composites:  make(map[compositeKey]*style.TableCellStyle),
	}
}

func checkPlacement(s style.ObjectStyle, dest Dest) error {
	switch {
	case dest.Automatic() && !s.Hidden():
		return fmt.Errorf("%s to %s: %w", s.Key(), dest, ErrVisibleInAutomatic)
	case !dest.Automatic() && s.Hidden():
		return fmt.Errorf("%s to %s: %w", s.Key(), dest, ErrHiddenInCommon)
	}
	return nil
}

// Register adds object style to destination. Hidden styles may only go to
// automatic destinations and visible styles to common styles.
func (r *Registry) Register(s style.ObjectStyle, dest Dest, mode container.Mode) error {
	if err := checkPlacement(s, dest); err != nil {
		return err
	}
	return r.objects.Add(s.Key(), s, dest, mode)
}

func (r *Registry) AddContentStyle(s style.ObjectStyle) error {
	return r.Register(s, DestContentAutomatic, container.ModeCreate)
}

func (r *Registry) AddStylesAutomaticStyle(s style.ObjectStyle) error {
	return r.Register(s, DestStylesAutomatic, container.ModeCreate)
}

func (r *Registry) AddCommonStyle(s style.ObjectStyle) error {
	return r.Register(s, DestStylesCommon, container.ModeCreate)
}

// EnsureRegistered registers style where its visibility puts it: hidden
// styles to content automatic styles, visible to common styles. Style
// already present under the same key is accepted even after Freeze.
func (r *Registry) EnsureRegistered(s style.ObjectStyle) error {
	dest := DestContentAutomatic
	if !s.Hidden() {
		dest = DestStylesCommon
	}
	if _, ok := r.objects.Get(s.Key(), dest); ok {
		return nil
	}
	return r.Register(s, dest, container.ModeCreate)
}

func (r *Registry) RegisterDataStyle(ds style.DataStyle, mode container.Mode) error {
	if !ds.Hidden() {
		return fmt.Errorf("data style %s: %w", ds.Name(), ErrVisibleDataStyle)
	}
	return r.dataStyles.Add(ds.Name(), ds, mode)
}

func (r *Registry) RegisterPageLayoutStyle(pl *style.PageLayoutStyle, mode container.Mode) error {
	return r.pageLayouts.Add(pl.Name(), pl, mode)
}

// RegisterMasterPageStyle also registers text styles used by header and footer
// as automatic styles of styles part.
func (r *Registry) RegisterMasterPageStyle(mp *style.MasterPageStyle, mode container.Mode) error {
	texts := mp.TextStyles()
	for _, ts := range texts {
		if err := checkPlacement(ts, DestStylesAutomatic); err != nil {
			return err
		}
	}
	if err := r.masterPages.Add(mp.Name(), mp, mode); err != nil {
		return err
	}
	for _, ts := range texts {
		if err := r.objects.Add(ts.Key(), ts, DestStylesAutomatic, container.ModeCreateOrUpdate); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPageStyle registers page layout and master page.
func (r *Registry) RegisterPageStyle(ps *style.PageStyle, mode container.Mode) error {
	if err := r.RegisterPageLayoutStyle(ps.Layout(), mode); err != nil {
		return err
	}
	return r.RegisterMasterPageStyle(ps.Master(), mode)
}

// InternCompositeCellStyle returns hidden cell style combining base with data
// style. Composite is created once per (base, data style) pair, its parent
// and data style are registered as needed. After Freeze only previously
// interned composites are available.
func (r *Registry) InternCompositeCellStyle(base *style.TableCellStyle, ds style.DataStyle) (*style.TableCellStyle, error) {
	key := compositeKey{base: base.Key(), data: ds.Name()}
	if cs, ok := r.composites[key]; ok {
		return cs, nil
	}
	if r.objects.Frozen() {
		return nil, fmt.Errorf("composite %s with %s: %w", base.Name(), ds.Name(), container.ErrFrozen)
	}
	if base.Hidden() && !base.HasParent() {
		// parent-less base would have to be common style
		return nil, fmt.Errorf("composite base %s: %w", base.Name(), ErrHiddenInCommon)
	}

	if err := tolerateDuplicate(r.RegisterDataStyle(ds, container.ModeCreate)); err != nil {
		return nil, err
	}
	if !base.HasParent() {
		if err := tolerateDuplicate(r.AddCommonStyle(base)); err != nil {
			return nil, err
		}
	}
	cs := base.Derive(base.RealName()+style.Separator+ds.Name(), ds)
	if err := tolerateDuplicate(r.AddContentStyle(cs)); err != nil {
		return nil, err
	}
	r.composites[key] = cs
	return cs, nil
}

func tolerateDuplicate(err error) error {
	if errors.Is(err, container.ErrDuplicateKey) {
		return nil
	}
	return err
}

// Freeze makes every container read only. It is called once styles are
// about to be rendered.
func (r *Registry) Freeze() {
	r.objects.Freeze()
	r.dataStyles.Freeze()
	r.masterPages.Freeze()
	r.pageLayouts.Freeze()
}

func (r *Registry) Frozen() bool {
	return r.objects.Frozen()
}

func (r *Registry) Get(key style.Key, dest Dest) (style.ObjectStyle, bool) {
	return r.objects.Get(key, dest)
}

func (r *Registry) Values(dest Dest) []style.ObjectStyle {
	return r.objects.Values(dest)
}

func (r *Registry) DataStyles() []style.DataStyle {
	return r.dataStyles.Values()
}

func (r *Registry) MasterPageStyles() []*style.MasterPageStyle {
	return r.masterPages.Values()
}

func (r *Registry) PageLayoutStyles() []*style.PageLayoutStyle {
	return r.pageLayouts.Values()
}

// Check verifies hidden/visible placement of every registered style.
func (r *Registry) Check() error {
	var errs []error
	for _, dest := range r.objects.Destinations() {
		for _, s := range r.objects.Values(dest) {
			if err := checkPlacement(s, dest); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, ds := range r.dataStyles.Values() {
		if !ds.Hidden() {
			errs = append(errs, fmt.Errorf("data style %s: %w", ds.Name(), ErrVisibleDataStyle))
		}
	}
	return errors.Join(errs...)
}

// HasFooterHeader reports whether any master page shows header or footer.
func (r *Registry) HasFooterHeader() bool {
	for _, mp := range r.masterPages.Values() {
		if mp.HasHeaderFooter() {
			return true
		}
	}
	return false
}

func (r *Registry) writeObjects(u *xmlutil.Util, b xmlutil.Appender, dest Dest) {
	for _, s := range r.objects.Values(dest) {
		s.AppendXML(u, b)
	}
}

func (r *Registry) WriteContentAutomaticStyles(u *xmlutil.Util, b xmlutil.Appender) {
	r.writeObjects(u, b, DestContentAutomatic)
}

func (r *Registry) WriteStylesAutomaticStyles(u *xmlutil.Util, b xmlutil.Appender) {
	r.writeObjects(u, b, DestStylesAutomatic)
}

func (r *Registry) WriteCommonStyles(u *xmlutil.Util, b xmlutil.Appender) {
	r.writeObjects(u, b, DestStylesCommon)
}

func (r *Registry) WriteDataStyles(u *xmlutil.Util, b xmlutil.Appender) {
	for _, ds := range r.dataStyles.Values() {
		ds.AppendXML(u, b)
	}
}

func (r *Registry) WritePageLayouts(u *xmlutil.Util, b xmlutil.Appender) {
	for _, pl := range r.pageLayouts.Values() {
		pl.AppendXML(u, b)
	}
}

func (r *Registry) WriteMasterStyles(u *xmlutil.Util, b xmlutil.Appender) {
	for _, mp := range r.masterPages.Values() {
		mp.AppendXML(u, b)
	}
}
