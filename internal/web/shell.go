package web

import "html/template"

var shell = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Book Catalog</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: .4rem .6rem; text-align: left; }
#formError { color: #b00020; min-height: 1.2em; }
</style>
</head>
<body>
<h1>Book Catalog</h1>

<form id="bookForm" method="post" action="/books">
  <label>Title <input id="title" name="title" value="{{.View.Form.Title}}"></label>
  <label>Author <input id="author" name="author" value="{{.View.Form.Author}}"></label>
  <label>Year <input id="publicationYear" name="publicationYear" value="{{.View.Form.PublicationYear}}"></label>
  <label>Genre
    <select id="genre" name="genre">
      <option value="">Choose a genre</option>
      {{- range .Genres}}
      <option value="{{.}}"{{if eq . $.View.Form.Genre}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
  </label>
  <button type="submit">Add book</button>
  <p id="formError">{{.View.FormError}}</p>
</form>

<form id="searchForm" method="get" action="/search">
  <input id="searchInput" name="q" placeholder="Search by title or author" value="{{.View.Search}}">
</form>

<form id="deleteForm" method="post"></form>
<table>
  <thead><tr><th>Title</th><th>Author</th><th>Year</th><th>Genre</th><th></th></tr></thead>
  <tbody id="booksTableBody">{{.TableBody}}</tbody>
</table>
<p id="noBooks"{{if not .View.NoBooksVisible}} style="display: none"{{end}}>{{.View.NoBooksText}}</p>

<script>
document.getElementById('booksTableBody').addEventListener('click', function (e) {
  if (!e.target.classList.contains('delete-btn')) return;
  var f = document.getElementById('deleteForm');
  f.action = '/books/' + encodeURIComponent(e.target.getAttribute('data-id')) + '/delete';
  f.submit();
});
</script>
</body>
</html>
`))
