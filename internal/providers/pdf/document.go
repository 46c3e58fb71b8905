package pdf

// Document is a printable trade document: a title block, labelled detail
// sections, a product table and closing notes.
type Document struct {
	Title    string
	Number   string
	Date     string
	Sections []Section
	Lines    []Line
	Total    string
	Notes    []Field
}

type Section struct {
	Title  string
	Fields []Field
}

type Field struct {
	Label string
	Value string
}

type Line struct {
	Description string
	Quantity    string
	Unit        string
	Price       string
	Amount      string
}

// Visible drops fields with an empty value.
func (s Section) Visible() []Field {
	out := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}
