package registry

import (
	"odsw/utils/debug"
)

// Dump renders registry content as indented tree for debug logging.
func (r *Registry) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Registry (frozen: %t)", r.Frozen())
	for _, dest := range r.objects.Destinations() {
		values := r.objects.Values(dest)
		d := tw.Section(1, dest.String(), len(values))
		for _, s := range values {
			tw.Line(d, "%s hidden=%t", s.Key(), s.Hidden())
		}
	}
	tw.Names(tw.Section(1, "data styles", r.dataStyles.Len()), r.dataStyles.Keys()...)
	d := tw.Section(1, "master pages", r.masterPages.Len())
	for _, mp := range r.masterPages.Values() {
		tw.Line(d, "%s layout=%s header/footer=%t", mp.Name(), mp.LayoutName(), mp.HasHeaderFooter())
	}
	tw.Names(tw.Section(1, "page layouts", r.pageLayouts.Len()), r.pageLayouts.Keys()...)
	tw.Line(1, "composites: %d", len(r.composites))
	return tw.String()
}
