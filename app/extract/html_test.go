package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/proxectonos/galnews/app/article"
)

const articleBodyHTML = `
	<div class="article-body">
		<p>O Consello da Cultura Galega presentou este venres un informe sobre
		o estado da lingua nas redes sociais, un traballo que analiza máis de
		dous millóns de mensaxes publicadas ao longo do último ano.</p>
		<p>O estudo conclúe que a presenza do galego medrou nos espazos
		dixitais máis novos, aínda que segue lonxe da súa demografía real, e
		apunta ás comunidades de creadores como motor principal dese avance.</p>
		<aside>Publicidade que non debe aparecer no corpus</aside>
		<p>As persoas responsables do informe reclaman máis apoio institucional
		para consolidar a tendencia e evitar que se perda o impulso acadado
		durante os últimos meses.</p>
		<ul class="at-archive-refs-list">
			<li><h1 class="ref-title"><a href="/outra">Outra nova relacionada</a></h1></li>
		</ul>
	</div>`

func fullArticleHTML(head string) string {
	return `<html><head>` + head + `</head><body>
		<article id="article">
			<ul>
				<li><a class="area" href="/cultura">Cultura</a></li>
				<li><a class="topic" href="/t/lingua">Lingua</a></li>
				<li><a class="topic" href="/t/redes">Redes sociais</a></li>
			</ul>
		</article>` + articleBodyHTML + `</body></html>`
}

const fullArticleHead = `
	<meta property="og:url" content="https://praza.gal/cultura/informe-lingua"/>
	<meta property="og:title" content="O galego medra nas redes - Praza Pública"/>
	<meta property="og:description" content="Un informe analiza a presenza da lingua nos espazos dixitais."/>
	<meta property="article:published_time" content="2023-05-12T10:00:00+02:00"/>
	<meta name="author" content="Ana Pérez"/>`

func TestExtractHTMLRoundTrip(t *testing.T) {
	e := NewHTMLExtractor()

	record, err := e.Extract(article.RawDocument{
		Key:         "2023/05/praza_20230512_informe-lingua.html",
		Content:     []byte(fullArticleHTML(fullArticleHead)),
		ContentType: article.ContentTypeHTML,
	}, "", "Acontece")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if record.Title != "O galego medra nas redes" {
		t.Errorf("Unexpected title: %q", record.Title)
	}
	if record.URL != "https://praza.gal/cultura/informe-lingua" {
		t.Errorf("Unexpected URL: %s", record.URL)
	}
	if record.Source != article.SourcePraza {
		t.Errorf("Unexpected source: %s", record.Source)
	}
	if record.BodyText == "" {
		t.Fatal("Expected non-empty body text")
	}
	if !strings.Contains(record.BodyText, "Consello da Cultura Galega") {
		t.Errorf("Expected body to contain article text, got: %q", record.BodyText)
	}
	if strings.Contains(record.BodyText, "<") {
		t.Errorf("Expected no HTML tags in body text, got: %q", record.BodyText)
	}
	if record.Category != "Cultura" {
		t.Errorf("Expected on-page category 'Cultura', got: %q", record.Category)
	}
	if len(record.Topics) != 2 || record.Topics[0] != "Lingua" {
		t.Errorf("Unexpected topics: %v", record.Topics)
	}
	if record.Author != "Ana Pérez" {
		t.Errorf("Unexpected author: %q", record.Author)
	}

	if record.PublishedAt == nil {
		t.Fatal("Expected published date")
	}
	want := time.Date(2023, 5, 12, 10, 0, 0, 0, time.FixedZone("", 2*3600))
	if !record.PublishedAt.Equal(want) {
		t.Errorf("Expected published at %v, got: %v", want, record.PublishedAt)
	}
	if record.Abstract == "" {
		t.Error("Expected abstract from og:description")
	}
}

func TestExtractHTMLMissingBodyContainer(t *testing.T) {
	e := NewHTMLExtractor()

	html := `<html><head>` + fullArticleHead + `</head><body>
		<p>Texto solto fóra do contedor do artigo.</p></body></html>`

	_, err := e.Extract(article.RawDocument{Content: []byte(html)}, "", "")
	if !IsMissingField(err, "body") {
		t.Fatalf("Expected MissingField(body), got: %v", err)
	}
}

func TestExtractHTMLMissingDate(t *testing.T) {
	e := NewHTMLExtractor()

	head := `
		<meta property="og:url" content="https://praza.gal/cultura/sen-data"/>
		<meta property="og:title" content="Nova sen data"/>`

	record, err := e.Extract(article.RawDocument{
		Content: []byte(fullArticleHTML(head)),
	}, "", "")
	if err != nil {
		t.Fatalf("Expected success with nil date, got: %v", err)
	}
	if record.PublishedAt != nil {
		t.Errorf("Expected nil published date, got: %v", record.PublishedAt)
	}
	if record.Title != "Nova sen data" {
		t.Errorf("Unexpected title: %q", record.Title)
	}
}

func TestExtractHTMLUnparsableDate(t *testing.T) {
	e := NewHTMLExtractor()

	head := `
		<meta property="og:url" content="https://praza.gal/cultura/data-rota"/>
		<meta property="og:title" content="Nova con data rota"/>
		<meta property="article:published_time" content="onte pola tarde"/>`

	record, err := e.Extract(article.RawDocument{
		Content: []byte(fullArticleHTML(head)),
	}, "", "")
	if err != nil {
		t.Fatalf("Expected success with nil date, got: %v", err)
	}
	if record.PublishedAt != nil {
		t.Errorf("Expected nil published date for unparsable value, got: %v", record.PublishedAt)
	}
}

func TestExtractHTMLMissingTitle(t *testing.T) {
	e := NewHTMLExtractor()

	head := `<meta property="og:url" content="https://praza.gal/cultura/sen-titulo"/>`

	_, err := e.Extract(article.RawDocument{
		Content: []byte(fullArticleHTML(head)),
	}, "", "")
	if !IsMissingField(err, "title") {
		t.Fatalf("Expected MissingField(title), got: %v", err)
	}
}

func TestExtractHTMLCategoryFallback(t *testing.T) {
	e := NewHTMLExtractor()

	html := `<html><head>
		<meta property="og:url" content="https://praza.gal/deportes/sen-etiqueta"/>
		<meta property="og:title" content="Nova sen etiqueta de categoría"/>
		</head><body>` + articleBodyHTML + `</body></html>`

	record, err := e.Extract(article.RawDocument{Content: []byte(html)}, "", "Deportes")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if record.Category != "Deportes" {
		t.Errorf("Expected fallback category 'Deportes', got: %q", record.Category)
	}
}

func TestExtractHTMLKnownURLFallback(t *testing.T) {
	e := NewHTMLExtractor()

	html := `<html><head>
		<meta property="og:title" content="Nova sen og:url"/>
		</head><body>` + articleBodyHTML + `</body></html>`

	record, err := e.Extract(article.RawDocument{Content: []byte(html)},
		"https://praza.gal/cultura/descuberta", "Cultura")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if record.URL != "https://praza.gal/cultura/descuberta" {
		t.Errorf("Expected crawl URL fallback, got: %s", record.URL)
	}

	_, err = e.Extract(article.RawDocument{Content: []byte(html)}, "", "Cultura")
	if !IsMissingField(err, "url") {
		t.Fatalf("Expected MissingField(url) without any known URL, got: %v", err)
	}
}

func TestExtractHTMLEmptyContent(t *testing.T) {
	e := NewHTMLExtractor()

	_, err := e.Extract(article.RawDocument{Content: []byte("  \x00\x01  ")}, "", "")
	if !IsMissingField(err, "body") {
		t.Fatalf("Expected MissingField(body) for empty content, got: %v", err)
	}
}
