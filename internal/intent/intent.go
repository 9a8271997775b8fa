package intent

// Intent is a recognized player action: a Kind plus whatever free-form
// arguments followed the matched verb (spec §4.5). Handlers parse Args
// further as needed (e.g. Give splits "sword to guard" into item + target).
type Intent struct {
	Kind Kind
	Raw  string
	Args []string
}

// ArgString rejoins Args with single spaces, for handlers that want the
// whole remainder rather than individual tokens.
func (i Intent) ArgString() string {
	s := ""
	for idx, a := range i.Args {
		if idx > 0 {
			s += " "
		}
		s += a
	}
	return s
}
