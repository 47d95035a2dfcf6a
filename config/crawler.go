package config

import (
	"fmt"
	"strconv"
	"strings"
)

// BaseURLCrawler is the listing search URL template. {pagination} is
// replaced by a 1-based page number.
const BaseURLCrawler = "http://www.immobilienscout24.de/Suche/S-T/P-{pagination}/Wohnung-Miete/Berlin/Berlin"

const paginationPlaceholder = "{pagination}"

// CrawlerConfig holds the crawler URL template
type CrawlerConfig struct {
	BaseURL string `json:"base_url" validate:"required,contains={pagination}"`
}

// PageURL returns the listing URL for page.
func (c CrawlerConfig) PageURL(page int) (string, error) {
	if page < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	return strings.ReplaceAll(c.BaseURL, paginationPlaceholder, strconv.Itoa(page)), nil
}
