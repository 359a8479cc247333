package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"generosml/internal/recommender"

	"github.com/PuerkitoBio/goquery"
)

// FetchRatings scrapea ratings_<movieId>.html para cada película y devuelve
// userId -> (movieId -> rating), la misma forma que consume Engine.Ingest.
func (c *Client) FetchRatings(ctx context.Context, movieIDs []int) (recommender.Ratings, error) {
	ratings := make(recommender.Ratings)

	for _, movieID := range movieIDs {
		url := fmt.Sprintf("%sratings_%d.html", c.base, movieID)

		body, err := c.get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("scraping ratings de movie %d: %w", movieID, err)
		}

		err = parseRatingsPage(body, movieID, ratings)
		body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing ratings de movie %d: %w", movieID, err)
		}
	}
	return ratings, nil
}

// parseRatingsPage agrega a `into` las filas (userId, rating) de la tabla de
// una película. Filas inválidas se saltan con un warning.
func parseRatingsPage(r io.Reader, movieID int, into recommender.Ratings) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return err
	}

	skipped := 0
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // encabezado
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			skipped++
			return
		}

		userID, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil {
			skipped++
			return
		}
		rating, err := strconv.ParseFloat(strings.TrimSpace(cells.Eq(1).Text()), 64)
		if err != nil {
			skipped++
			return
		}

		if _, ok := into[userID]; !ok {
			into[userID] = make(map[int]float64)
		}
		into[userID][movieID] = rating
	})
	if skipped > 0 {
		log.Printf("[scraper] %d filas de ratings inválidas ignoradas (movie %d)", skipped, movieID)
	}
	return nil
}
