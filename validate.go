package rssfixer

// RequireEntries passes entries through unchanged unless the list is empty,
// in which case it returns ENOLINKS. Every strategy finishes with it.
func RequireEntries(entries []Entry) ([]Entry, error) {
	if len(entries) == 0 {
		return nil, Errorf(ENOLINKS, "no links found")
	}
	return entries, nil
}
