package transcript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/ledongthuc/pdf"

	"debate-archive/pkg/domain"
	"debate-archive/pkg/httpclient"
)

// Source locates and fetches a publisher-provided transcript reachable
// from an episode page. Publishers link transcripts inconsistently, as
// inline pages, PDFs, or plain text files, so the fetch ranks candidate
// links and extracts text per document kind.
type Source struct {
	client *httpclient.HTTPClient
}

// NewSource creates a transcript source with browser-like request headers
func NewSource() *Source {
	return NewSourceWithClient(httpclient.NewClient(httpclient.BrowserClient))
}

// NewSourceWithClient creates a transcript source using the given client
func NewSourceWithClient(client *httpclient.HTTPClient) *Source {
	return &Source{
		client: client,
	}
}

// ForEpisode looks for a publisher transcript linked from the episode's
// description, which syndication feeds usually carry as HTML show notes.
// A description that links no transcript is a clean miss and returns
// (nil, nil); fetch and extraction failures are errors. Relative links are
// resolved against the episode's audio URL, since both live on the
// publisher's host. An extracted document that is all whitespace counts as
// a miss too.
func (s *Source) ForEpisode(ctx context.Context, episode domain.Episode) (*string, error) {
	href, err := FindTranscriptURL(episode.Description)
	if err != nil {
		if errors.Is(err, ErrNoProvidedTranscript) {
			return nil, nil
		}
		return nil, err
	}

	text, err := s.fetchDocument(ctx, resolveRef(episode.AudioURL, href))
	if err != nil {
		return nil, fmt.Errorf("provided transcript for episode %s: %w", episode.Id, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return &text, nil
}

// Fetch loads the episode page at pageURL, picks the most transcript-like
// link on it, downloads that document, and returns its plain text. Returns
// ErrNoProvidedTranscript when the page links to nothing usable.
func (s *Source) Fetch(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.client.GetWithContext(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetching episode page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching episode page %s: %s", pageURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading episode page %s: %w", pageURL, err)
	}

	href, err := FindTranscriptURL(string(body))
	if err != nil {
		return "", err
	}

	return s.fetchDocument(ctx, resolveRef(pageURL, href))
}

// fetchDocument downloads a transcript document and extracts its plain text
func (s *Source) fetchDocument(ctx context.Context, docURL string) (string, error) {
	resp, err := s.client.GetWithContext(ctx, docURL)
	if err != nil {
		return "", fmt.Errorf("fetching transcript %s: %w", docURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching transcript %s: %s", docURL, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	switch {
	case isPDF(docURL, contentType):
		return pdfText(resp.Body)
	case isPlainText(docURL, contentType):
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	default:
		return htmlText(resp.Body)
	}
}

// FindTranscriptURL locates a transcript link in the HTML of an episode
// page. Candidate <a> elements are ranked by how much they look like one:
//  1. Anchor text mentions "transcript" and href looks like a document (.pdf/.txt)
//  2. href looks like a document (.pdf/.txt)
//  3. Anchor text mentions "transcript"
//
// The best-matching href is returned as written in the page; callers
// resolve relative references against the page URL.
func FindTranscriptURL(html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", ErrNoProvidedTranscript
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing episode page: %w", err)
	}

	var (
		highPriority   []string // text mentions transcript AND href is document-like
		mediumPriority []string // href is document-like
		lowPriority    []string // text mentions transcript
	)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		docLike := isDocumentLikeHref(href)
		mentionsTranscript := strings.Contains(strings.ToLower(sel.Text()), "transcript")

		switch {
		case docLike && mentionsTranscript:
			highPriority = append(highPriority, href)
		case docLike:
			mediumPriority = append(mediumPriority, href)
		case mentionsTranscript:
			lowPriority = append(lowPriority, href)
		}
	})

	if len(highPriority) > 0 {
		return highPriority[0], nil
	}
	if len(mediumPriority) > 0 {
		return mediumPriority[0], nil
	}
	if len(lowPriority) > 0 {
		return lowPriority[0], nil
	}

	return "", ErrNoProvidedTranscript
}

// isDocumentLikeHref returns true if the href looks like a transcript
// document worth fetching directly (e.g., .pdf or .txt)
func isDocumentLikeHref(href string) bool {
	parsed, err := url.Parse(href)
	if err != nil {
		// If the URL can't be parsed, fall back to a simple suffix check
		return hasDocumentExtension(href)
	}
	return hasDocumentExtension(parsed.Path)
}

func hasDocumentExtension(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".pdf", ".txt":
		return true
	default:
		return false
	}
}

// resolveRef resolves href against the page it appeared on. If either side
// fails to parse, the href is returned as-is and the fetch fails later with
// a clearer error.
func resolveRef(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// isPDF checks the content type first and falls back to the URL extension
func isPDF(docURL, contentType string) bool {
	if strings.Contains(contentType, "application/pdf") {
		return true
	}
	parsed, err := url.Parse(docURL)
	if err != nil {
		return false
	}
	return strings.ToLower(path.Ext(parsed.Path)) == ".pdf"
}

func isPlainText(docURL, contentType string) bool {
	if strings.Contains(contentType, "text/plain") {
		return true
	}
	parsed, err := url.Parse(docURL)
	if err != nil {
		return false
	}
	return strings.ToLower(path.Ext(parsed.Path)) == ".txt"
}

// pdfText extracts plain text from a PDF stream. The whole document is
// buffered first because the PDF reader needs random access.
func pdfText(r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}

	data := buf.Bytes()
	if len(data) == 0 {
		return "", fmt.Errorf("empty transcript document")
	}

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading transcript pdf: %w", err)
	}

	textReader, err := doc.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting transcript pdf text: %w", err)
	}

	var text bytes.Buffer
	if _, err := io.Copy(&text, textReader); err != nil {
		return "", err
	}
	return strings.TrimSpace(text.String()), nil
}

// htmlText extracts the readable text from an HTML transcript page
func htmlText(r io.Reader) (string, error) {
	article, err := readability.FromReader(r, nil)
	if err != nil {
		return "", fmt.Errorf("extracting transcript text: %w", err)
	}
	return strings.TrimSpace(article.TextContent), nil
}
