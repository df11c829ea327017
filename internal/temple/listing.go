package temple

// Entry is one row of the scraped listing.
type Entry struct {
	Name string
	Text string // dedication date ("1 January 2001") or status tag
}

// Listing is the scraped listing in source order.
type Listing []Entry

// Names returns the temple names in listing order.
func (l Listing) Names() []string {
	names := make([]string, len(l))
	for i, e := range l {
		names[i] = e.Name
	}
	return names
}
