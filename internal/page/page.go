package page

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"bookcatalog/internal/models"
	"bookcatalog/internal/render"
	"bookcatalog/internal/service"
)

// CatalogAPI is the remote book store as the page sees it.
type CatalogAPI interface {
	List(ctx context.Context) ([]models.Book, error)
	Create(ctx context.Context, draft models.Draft) error
	Delete(ctx context.Context, id string) error
}

type deleteHandler func(ctx context.Context) error

// Page is the book catalog page: the form, the search box and the table.
// Handlers run one at a time.
type Page struct {
	mu       sync.Mutex
	api      CatalogAPI
	regions  Regions
	logger   *log.Logger
	bindings map[string]deleteHandler
}

func New(api CatalogAPI, regions Regions, logger *log.Logger) *Page {
	if logger == nil {
		logger = log.Default()
	}
	return &Page{
		api:      api,
		regions:  regions,
		logger:   logger,
		bindings: map[string]deleteHandler{},
	}
}

// Load fetches every book and re-renders the table. On failure the page keeps what it showed before.
func (p *Page) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load(ctx)
}

func (p *Page) load(ctx context.Context) error {
	books, err := p.api.List(ctx)
	if err != nil {
		p.logger.Printf("load books: %v", err)
		return err
	}
	p.renderBooks(books)
	return nil
}

// renderBooks rebuilds the whole table and binds one delete handler per
// delete control found in it. Handlers of the previous cycle are dropped with their rows.
func (p *Page) renderBooks(books []models.Book) {
	res := render.Books(books)
	if err := p.regions.Table.Replace(res.Body); err != nil {
		p.logger.Printf("render books: %v", err)
		return
	}

	ids := p.regions.Table.DeleteIDs()
	bindings := make(map[string]deleteHandler, len(ids))
	for _, id := range ids {
		bindings[id] = func(ctx context.Context) error {
			return p.deleteBook(ctx, id)
		}
	}
	p.bindings = bindings

	if res.Empty {
		p.regions.NoBooks.Show(MsgNoBooks)
		return
	}
	p.regions.NoBooks.Hide()
}

// Submit handles the add-book form.
func (p *Page) Submit(ctx context.Context, in Form) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	*p.regions.Form = in

	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	year := ParseYear(in.PublicationYear)
	genre := in.Genre

	if err := p.validate(title, author, year, genre); err != nil {
		return err
	}

	draft := models.Draft{
		Title:           title,
		Author:          author,
		PublicationYear: year.Value(),
		Genre:           genre,
	}

	if err := p.api.Create(ctx, draft); err != nil {
		if !errors.Is(err, service.ErrCreateFailed) {
			err = fmt.Errorf("%w: %v", service.ErrCreateFailed, err)
		}
		p.logger.Printf("add book: %v", err)
		p.regions.FormError.Set(MsgCreateFailed)
		return err
	}

	p.regions.Form.Reset()
	p.regions.FormError.Clear()
	_ = p.load(ctx)
	return nil
}

func (p *Page) validate(title, author string, year Year, genre string) error {
	p.regions.FormError.Clear()
	if err := Validate(title, author, year, genre); err != nil {
		p.regions.FormError.Set(Message(err))
		return err
	}
	return nil
}

// Delete activates the delete control bound to id in the current table.
// The table is reloaded whether or not the delete went through.
func (p *Page) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	handler, ok := p.bindings[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnboundControl, id)
	}
	return handler(ctx)
}

func (p *Page) deleteBook(ctx context.Context, id string) error {
	err := p.api.Delete(ctx, id)
	if err != nil {
		p.logger.Printf("delete book %s: %v", id, err)
	}
	_ = p.load(ctx)
	return err
}

// Filter hides the rows whose title and author text do not contain query.
// It works on the rendered rows only and returns how many stay visible.
func (p *Page) Filter(query string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.regions.Search.Value = query
	q := strings.ToLower(query)

	visible := 0
	for i, row := range p.regions.Table.Rows() {
		show := strings.Contains(strings.ToLower(row.Title), q) ||
			strings.Contains(strings.ToLower(row.Author), q)
		p.regions.Table.SetVisible(i, show)
		if show {
			visible++
		}
	}

	if visible == 0 {
		p.regions.NoBooks.Show(MsgNoMatches)
	} else {
		p.regions.NoBooks.Hide()
	}
	return visible
}

// View is a copy of the page state, taken for rendering the shell.
type View struct {
	Form           Form
	FormError      string
	Search         string
	TableBody      string
	Rows           int
	NoBooksVisible bool
	NoBooksText    string
}

func (p *Page) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	return View{
		Form:           *p.regions.Form,
		FormError:      p.regions.FormError.Text(),
		Search:         p.regions.Search.Value,
		TableBody:      p.regions.Table.HTML(),
		Rows:           p.regions.Table.Len(),
		NoBooksVisible: p.regions.NoBooks.Visible(),
		NoBooksText:    p.regions.NoBooks.Text(),
	}
}
