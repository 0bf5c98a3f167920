// Package timezones provides the "timezone" control: a select element whose
// options come from an embedded list of IANA zone names. The list is served
// through an elements.OptionSource, so the preview server can search it at
// /options/timezone.
//
// Register adds the element to an element registry:
//
//	registry := elements.NewDefaultRegistry()
//	if err := timezones.Register(registry); err != nil {
//		return err
//	}
package timezones
