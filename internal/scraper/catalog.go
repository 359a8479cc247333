package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"generosml/internal/recommender"

	"github.com/PuerkitoBio/goquery"
)

// Client scrapea el dataset HTML (tablas paginadas de películas y ratings).
type Client struct {
	base string
	http *http.Client
}

func New(base string) *Client {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchCatalog recorre page_1.html, page_2.html, ... siguiendo el link de
// navegación de cada página y devuelve movieId -> (título, géneros).
func (c *Client) FetchCatalog(ctx context.Context) (recommender.Catalog, error) {
	catalog := make(recommender.Catalog)
	page := "page_1.html"

	for page != "" {
		body, err := c.get(ctx, c.base+page)
		if err != nil {
			return nil, fmt.Errorf("scraping %s: %w", page, err)
		}

		next, err := parseCatalogPage(body, catalog)
		body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		page = next
	}
	return catalog, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d en %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// parseCatalogPage procesa una página de catálogo: agrega las filas de la
// tabla a `into` y devuelve el href de la página siguiente ("" si no hay).
// Filas incompletas o con id inválido se saltan con un warning.
func parseCatalogPage(r io.Reader, into recommender.Catalog) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	skipped := 0
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // encabezado
		}
		cells := row.Find("td")
		if cells.Length() < 4 {
			skipped++
			return
		}

		movieID, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil {
			skipped++
			return
		}

		into[movieID] = recommender.MovieInfo{
			Title:  CleanTitle(cells.Eq(1).Text()),
			Genres: SplitGenres(cells.Eq(3).Text()),
		}
	})
	if skipped > 0 {
		log.Printf("[scraper] %d filas de catálogo inválidas ignoradas", skipped)
	}

	// el segundo <a> de la página apunta a la siguiente; vacío = última
	next, _ := doc.Find("a").Eq(1).Attr("href")
	return next, nil
}

// CleanTitle quita el sufijo " (AÑO)" del final del título.
func CleanTitle(raw string) string {
	if i := strings.LastIndex(raw, " ("); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}

// SplitGenres separa la celda de géneros por comas.
func SplitGenres(raw string) []string {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
