package page

import "bookcatalog/internal/dom"

// Form holds the raw values of the four inputs.
type Form struct {
	Title           string
	Author          string
	PublicationYear string
	Genre           string
}

func (f *Form) Reset() {
	*f = Form{}
}

// ErrorSlot is the error region under the form.
type ErrorSlot struct {
	text string
}

func (e *ErrorSlot) Set(msg string) { e.text = msg }
func (e *ErrorSlot) Clear()         { e.text = "" }
func (e *ErrorSlot) Text() string   { return e.text }

type SearchBox struct {
	Value string
}

// Placeholder is the message shown instead of rows.
type Placeholder struct {
	visible bool
	text    string
}

func (p *Placeholder) Show(text string) {
	p.visible = true
	p.text = text
}

func (p *Placeholder) Hide()         { p.visible = false }
func (p *Placeholder) Visible() bool { return p.visible }
func (p *Placeholder) Text() string  { return p.text }

// Regions are the parts of the page the handlers read and write.
type Regions struct {
	Form      *Form
	FormError *ErrorSlot
	Search    *SearchBox
	Table     *dom.Table
	NoBooks   *Placeholder
}

func NewRegions() Regions {
	return Regions{
		Form:      &Form{},
		FormError: &ErrorSlot{},
		Search:    &SearchBox{},
		Table:     dom.NewTable(),
		NoBooks:   &Placeholder{},
	}
}
