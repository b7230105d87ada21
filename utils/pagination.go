package utils

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page is a page-number pagination request.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PaginatedResponse mirrors the count/next/previous/results envelope.
type PaginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// GetPage reads ?page=N. ok is false when the value is not a positive integer.
func GetPage(c *gin.Context, size int) (Page, bool) {
	raw := c.DefaultQuery("page", "1")
	if raw == "last" {
		return Page{Number: -1, Size: size}, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return Page{}, false
	}
	return Page{Number: n, Size: size}, true
}

// LastPage returns the page number of the final page for count items (at least 1).
func LastPage(count int64, size int) int {
	if count == 0 || size <= 0 {
		return 1
	}
	return int((count + int64(size) - 1) / int64(size))
}

// Paginate builds the envelope with absolute next/previous links.
func Paginate(c *gin.Context, page Page, count int64, results interface{}) PaginatedResponse {
	resp := PaginatedResponse{Count: count, Results: results}
	last := LastPage(count, page.Size)

	if page.Number < last {
		link := pageURL(c, page.Number+1)
		resp.Next = &link
	}
	if page.Number > 1 {
		link := pageURL(c, page.Number-1)
		resp.Previous = &link
	}
	return resp
}

func pageURL(c *gin.Context, number int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path}
	q := c.Request.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Resolve pins "last" to a concrete page and reports whether the page exists.
// Page 1 always exists, even when there are no results.
func (p Page) Resolve(count int64) (Page, bool) {
	last := LastPage(count, p.Size)
	if p.Number == -1 {
		p.Number = last
	}
	return p, p.Number >= 1 && p.Number <= last
}
